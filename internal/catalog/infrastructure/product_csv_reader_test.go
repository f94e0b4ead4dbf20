package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProductRecord(t *testing.T) {
	v, err := ParseProductRecord([]string{"12", "1,204", "Camisa Ñandú", "active", "1,500.50", "Ilimitado", "--", "0.3"})
	if err != nil {
		t.Fatal(err)
	}
	if v.ProductID() != 12 || v.VariantID() != 1204 {
		t.Errorf("ids = %d/%d", v.ProductID(), v.VariantID())
	}
	if v.Title() != "Camisa and" {
		t.Errorf("title = %q", v.Title())
	}
	if v.Price().String() != "1500.5" {
		t.Errorf("price = %s", v.Price())
	}
	if v.SKU() != 0 || v.Stock() != "Ilimitado" {
		t.Errorf("sku = %d stock = %q", v.SKU(), v.Stock())
	}
}

func TestParseProductRecordRejectsGarbage(t *testing.T) {
	if _, err := ParseProductRecord([]string{"abc", "1", "t", "s", "1", "1", "1", "1"}); err == nil {
		t.Fatal("expected error for non numeric product_id")
	}
	if _, err := ParseProductRecord([]string{"1", "1", "t"}); err == nil {
		t.Fatal("expected error for short record")
	}
	if _, err := ParseProductRecord([]string{"1", "1", "t", "s", "-5", "1", "1", "1"}); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestProductCSVReaderKeepsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	content := "id,variant,title,status,price,stock,sku,weight\n" +
		"1,10,Remera,active,100,5,777,0.2\n" +
		"x,11,Gorra,active,50,5,778,0.1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := NewProductCSVReader(',').ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Err != nil || records[1].Err == nil || records[1].Index != 1 {
		t.Fatalf("unexpected records %+v", records)
	}
}
