package domain

import (
	"strconv"
)

// ExportRow est une ligne de rapport exportable dans tous les formats
type ExportRow interface {
	ToCSVRow() []string
	Values() []interface{}
}

// Report est un rapport tabulaire prêt à être encodé.
// Schema est une valeur du type de ligne (utilisée pour le schéma Parquet).
type Report struct {
	Name    string
	Headers []string
	Schema  interface{}
	Rows    []ExportRow
}

// DailyExportRow représente une ligne du rapport journalier
type DailyExportRow struct {
	Date       string `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Revenue    int64  `parquet:"name=revenue, type=INT64"`
	ItemCount  int64  `parquet:"name=item_count, type=INT64"`
	OrderCount int64  `parquet:"name=order_count, type=INT64"`
}

// DailyHeaders retourne les en-têtes du rapport journalier
func DailyHeaders() []string {
	return []string{"date", "revenue", "item_count", "order_count"}
}

// ToCSVRow convertit en tableau pour CSV
func (r DailyExportRow) ToCSVRow() []string {
	return []string{
		r.Date,
		strconv.FormatInt(r.Revenue, 10),
		strconv.FormatInt(r.ItemCount, 10),
		strconv.FormatInt(r.OrderCount, 10),
	}
}

// Values retourne les valeurs typées (cellules numériques dans un tableur)
func (r DailyExportRow) Values() []interface{} {
	return []interface{}{r.Date, r.Revenue, r.ItemCount, r.OrderCount}
}

// ProductExportRow représente une ligne du classement des produits
type ProductExportRow struct {
	Rank     int64  `parquet:"name=rank, type=INT64"`
	Store    string `parquet:"name=store, type=BYTE_ARRAY, convertedtype=UTF8"`
	SKU      string `parquet:"name=sku, type=BYTE_ARRAY, convertedtype=UTF8"`
	Title    string `parquet:"name=title, type=BYTE_ARRAY, convertedtype=UTF8"`
	Quantity int64  `parquet:"name=quantity, type=INT64"`
	Revenue  int64  `parquet:"name=revenue, type=INT64"`
}

// ProductHeaders retourne les en-têtes du classement des produits
func ProductHeaders() []string {
	return []string{"rank", "store", "sku", "title", "quantity", "revenue"}
}

// ToCSVRow convertit en tableau pour CSV
func (r ProductExportRow) ToCSVRow() []string {
	return []string{
		strconv.FormatInt(r.Rank, 10),
		r.Store,
		r.SKU,
		r.Title,
		strconv.FormatInt(r.Quantity, 10),
		strconv.FormatInt(r.Revenue, 10),
	}
}

// Values retourne les valeurs typées
func (r ProductExportRow) Values() []interface{} {
	return []interface{}{r.Rank, r.Store, r.SKU, r.Title, r.Quantity, r.Revenue}
}

// StoreExportRow représente une ligne du cumul par tienda
type StoreExportRow struct {
	Store     string `parquet:"name=store, type=BYTE_ARRAY, convertedtype=UTF8"`
	Revenue   int64  `parquet:"name=revenue_total, type=INT64"`
	ItemCount int64  `parquet:"name=item_count, type=INT64"`
}

// StoreHeaders retourne les en-têtes du cumul par tienda
func StoreHeaders() []string {
	return []string{"store", "revenue_total", "item_count"}
}

// ToCSVRow convertit en tableau pour CSV
func (r StoreExportRow) ToCSVRow() []string {
	return []string{
		r.Store,
		strconv.FormatInt(r.Revenue, 10),
		strconv.FormatInt(r.ItemCount, 10),
	}
}

// Values retourne les valeurs typées
func (r StoreExportRow) Values() []interface{} {
	return []interface{}{r.Store, r.Revenue, r.ItemCount}
}
