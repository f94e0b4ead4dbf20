package infrastructure

import (
	"strings"
	"testing"
	"time"

	"salesboard/internal/stands/domain"
)

const standsHeader = "Fecha;Origen - Base de datos;Comprobante;Item - Cantidad;Artículo - Código;Artículo;" +
	"Item - Monto sin impuestos;Item - Monto con impuestos;Item - Descuento sin impuestos;" +
	"Item - Descuento con impuestos;Item - Monto Neto sin impuestos;Item - Monto Neto\n"

func readSales(t *testing.T, body string) []domain.SaleLine {
	t.Helper()
	lines, err := NewSaleCSVReader(';', domain.DefaultCleaningRules()).Read(strings.NewReader(standsHeader + body))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return lines
}

func TestNormalizeSalesTitleAndStores(t *testing.T) {
	lines := readSales(t,
		"01/03/2024;UNICENTER;F-1;2;1234;A Camisa Azul;800;1000;0;0;800;1000\n"+
			"01/03/2024;PACÍFICO;F-2;1;99;Remera Lisa;500;600;0;0;500;600\n"+
			"02/03/24;JUNCAL;F-3;1;77;B Gorra;300;400;0;0;300;400\n")

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if got := lines[0].Title(); got != "Camisa Azul" {
		t.Errorf("title = %q, want %q", got, "Camisa Azul")
	}
	if got := lines[1].Title(); got != "Remera Lisa" {
		t.Errorf("excepted store title = %q, want unchanged", got)
	}
	if got := lines[2].Store(); got != "ALTOPALERMO" {
		t.Errorf("store = %q, want ALTOPALERMO", got)
	}
	if got := lines[2].Title(); got != "Gorra" {
		t.Errorf("title = %q", got)
	}
	if lines[0].Quantity() != 2 || lines[0].NetRevenue() != 1000 || lines[0].SKU() != "1234" {
		t.Errorf("unexpected values: qty=%d net=%d sku=%q", lines[0].Quantity(), lines[0].NetRevenue(), lines[0].SKU())
	}
}

func TestNormalizeSalesDropsRowsWithMissingCells(t *testing.T) {
	lines := readSales(t,
		"01/03/2024;UNICENTER;F-1;2;1234;A Camisa;800;1000;0;0;800;1000\n"+
			"01/03/2024;UNICENTER;;2;1234;A Camisa;800;1000;0;0;800;1000\n"+
			"01/03/2024;UNICENTER;F-3;2;1234;A Camisa;800;1000;0\n")

	if len(lines) != 1 {
		t.Fatalf("expected 1 line after dropping incomplete rows, got %d", len(lines))
	}
}

func TestNormalizeSalesCoercesNumbers(t *testing.T) {
	lines := readSales(t, "01/03/2024;UNICENTER;F-1;n/a;1234;A Camisa;800;1.234,50;x;-;800;999,99\n")
	l := lines[0]
	if l.Quantity() != 0 || l.GrossRevenue() != 1234 || l.Discount() != 0 || l.NetRevenue() != 999 {
		t.Fatalf("got qty=%d gross=%d discount=%d net=%d", l.Quantity(), l.GrossRevenue(), l.Discount(), l.NetRevenue())
	}
}

func TestParseSaleDate(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"01/03/24", "1/3/2024", "01-03-24", "01-03-2024", "01/03/2024 09:30"} {
		if got := ParseSaleDate(raw); !got.Equal(want) {
			t.Errorf("ParseSaleDate(%q) = %v, want %v", raw, got, want)
		}
	}
	if got := ParseSaleDate("2024-03-01"); !got.IsZero() {
		t.Errorf("unsupported format must give a null date, got %v", got)
	}
}

func TestNormalizeSalesUnparseableDateIsNull(t *testing.T) {
	lines := readSales(t, "hier;UNICENTER;F-1;1;1;A B;1;1;0;0;1;1\n")
	if len(lines) != 1 || !lines[0].Date().IsZero() {
		t.Fatalf("expected one line with a null date, got %+v", lines)
	}
}

func TestNormalizeSalesLocaleAmounts(t *testing.T) {
	lines := readSales(t,
		"01/03/2024;UNICENTER;F-1;2.0;10;A Camisa;800;abc;0;12,9;1.000;1.234,50\n")

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	l := lines[0]
	// notation locale tronquée, non numérique → 0
	if l.NetRevenue() != 1234 {
		t.Errorf("net = %d, want 1234", l.NetRevenue())
	}
	if l.GrossRevenue() != 0 {
		t.Errorf("gross = %d, want 0 for a non numeric cell", l.GrossRevenue())
	}
	if l.Discount() != 12 || l.Quantity() != 2 {
		t.Errorf("discount = %d, qty = %d", l.Discount(), l.Quantity())
	}
}
