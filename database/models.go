package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	catalogdomain "salesboard/internal/catalog/domain"
	shareddomain "salesboard/internal/shared/domain"
)

// ============================================================================
// TABLES DE PERSISTANCE - copie légèrement transformée des exports
// ============================================================================

// Column décrit une colonne SQL
type Column struct {
	Name string
	Type string
}

// TableSchema décrit une table cible du chargement
type TableSchema struct {
	Name    string
	Columns []Column
}

// CreateSQL retourne l'instruction de création de la table
func (s TableSchema) CreateSQL() string {
	defs := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		defs[i] = c.Name + " " + c.Type
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", s.Name, strings.Join(defs, ",\n\t"))
}

// InsertSQL retourne l'insertion d'une ligne (placeholders "?", à passer par Rebind)
func (s TableSchema) InsertSQL() string {
	names := make([]string, len(s.Columns))
	marks := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.Name, strings.Join(names, ", "), strings.Join(marks, ", "))
}

// ProductsTable est la table du catalogue (8 colonnes)
var ProductsTable = TableSchema{
	Name: "products",
	Columns: []Column{
		{"product_id", "BIGINT"},
		{"variant_id", "BIGINT"},
		{"product_title", "VARCHAR(255)"},
		{"product_status", "VARCHAR(50)"},
		{"variant_price", "DOUBLE PRECISION"},
		{"variant_stock", "VARCHAR(50)"},
		{"variant_sku", "BIGINT"},
		{"variant_weight", "DOUBLE PRECISION"},
	},
}

// StandsTable est la table des ventes des stands (12 colonnes)
var StandsTable = TableSchema{
	Name: "stands",
	Columns: []Column{
		{"fecha", "DATE"},
		{"origen_base_datos", "VARCHAR(50)"},
		{"comprobante", "VARCHAR(50)"},
		{"item_cantidad", "INTEGER"},
		{"articulo_codigo", "BIGINT"},
		{"articulo_descripcion", "VARCHAR(255)"},
		{"item_monto_sin_impuestos", "BIGINT"},
		{"item_monto_con_impuestos", "BIGINT"},
		{"item_descuento_sin_impuestos", "BIGINT"},
		{"item_descuento_con_impuestos", "BIGINT"},
		{"item_monto_neto_sin_impuestos", "BIGINT"},
		{"item_monto_neto", "BIGINT"},
	},
}

// Row est une ligne prête à l'insertion, dans l'ordre des colonnes de sa table
type Row interface {
	Values() []interface{}
}

// ProductRow - Variante de produit
type ProductRow struct {
	ProductID     int64   `db:"product_id" json:"product_id"`
	VariantID     int64   `db:"variant_id" json:"variant_id"`
	ProductTitle  string  `db:"product_title" json:"product_title"`
	ProductStatus string  `db:"product_status" json:"product_status"`
	VariantPrice  float64 `db:"variant_price" json:"variant_price"`
	VariantStock  string  `db:"variant_stock" json:"variant_stock"`
	VariantSKU    int64   `db:"variant_sku" json:"variant_sku"`
	VariantWeight float64 `db:"variant_weight" json:"variant_weight"`
}

// NewProductRow convertit une variante du catalogue
func NewProductRow(v catalogdomain.ProductVariant) ProductRow {
	return ProductRow{
		ProductID:     int64(v.ProductID()),
		VariantID:     int64(v.VariantID()),
		ProductTitle:  v.Title(),
		ProductStatus: v.Status(),
		VariantPrice:  v.Price().InexactFloat64(),
		VariantStock:  v.Stock(),
		VariantSKU:    v.SKU(),
		VariantWeight: v.Weight().InexactFloat64(),
	}
}

// Values retourne les valeurs dans l'ordre de ProductsTable
func (r ProductRow) Values() []interface{} {
	return []interface{}{
		r.ProductID, r.VariantID, r.ProductTitle, r.ProductStatus,
		r.VariantPrice, r.VariantStock, r.VariantSKU, r.VariantWeight,
	}
}

// StandDateLayout est le format de date de la colonne fecha (JJ/MM/AAAA)
const StandDateLayout = "2/1/2006"

// StandRow - Ligne de vente d'un stand, colonnes brutes renommées
type StandRow struct {
	Fecha                     sql.NullTime `db:"fecha" json:"fecha"`
	OrigenBaseDatos           string       `db:"origen_base_datos" json:"origen_base_datos"`
	Comprobante               string       `db:"comprobante" json:"comprobante"`
	ItemCantidad              int64        `db:"item_cantidad" json:"item_cantidad"`
	ArticuloCodigo            int64        `db:"articulo_codigo" json:"articulo_codigo"`
	ArticuloDescripcion       string       `db:"articulo_descripcion" json:"articulo_descripcion"`
	ItemMontoSinImpuestos     int64        `db:"item_monto_sin_impuestos" json:"item_monto_sin_impuestos"`
	ItemMontoConImpuestos     int64        `db:"item_monto_con_impuestos" json:"item_monto_con_impuestos"`
	ItemDescuentoSinImpuestos int64        `db:"item_descuento_sin_impuestos" json:"item_descuento_sin_impuestos"`
	ItemDescuentoConImpuestos int64        `db:"item_descuento_con_impuestos" json:"item_descuento_con_impuestos"`
	ItemMontoNetoSinImpuestos int64        `db:"item_monto_neto_sin_impuestos" json:"item_monto_neto_sin_impuestos"`
	ItemMontoNeto             int64        `db:"item_monto_neto" json:"item_monto_neto"`
}

// ParseStandRecord applique les transformations légères d'une ligne de stands.csv:
// fecha JJ/MM/AAAA (illisible → NULL), montants réduits à leurs chiffres,
// quantité et code article entiers (illisibles → erreur, la ligne est écartée)
func ParseStandRecord(record []string) (StandRow, error) {
	if len(record) < len(StandsTable.Columns) {
		return StandRow{}, fmt.Errorf("expected %d fields, got %d", len(StandsTable.Columns), len(record))
	}
	field := func(i int) string {
		return strings.TrimSpace(record[i])
	}

	row := StandRow{
		OrigenBaseDatos:           field(1),
		Comprobante:               field(2),
		ArticuloDescripcion:       field(5),
		ItemMontoSinImpuestos:     shareddomain.DigitsToInt(field(6)),
		ItemMontoConImpuestos:     shareddomain.DigitsToInt(field(7)),
		ItemDescuentoSinImpuestos: shareddomain.DigitsToInt(field(8)),
		ItemDescuentoConImpuestos: shareddomain.DigitsToInt(field(9)),
		ItemMontoNetoSinImpuestos: shareddomain.DigitsToInt(field(10)),
		ItemMontoNeto:             shareddomain.DigitsToInt(field(11)),
	}
	if t, ok := shareddomain.ParseDateFirst(field(0), StandDateLayout); ok {
		row.Fecha = sql.NullTime{Time: t, Valid: true}
	}

	qty, ok := shareddomain.ParseDecimal(field(3))
	if !ok {
		return StandRow{}, fmt.Errorf("item_cantidad: invalid number %q", field(3))
	}
	row.ItemCantidad = qty.IntPart()

	code, ok := shareddomain.ParseDecimal(field(4))
	if !ok {
		return StandRow{}, fmt.Errorf("articulo_codigo: invalid number %q", field(4))
	}
	row.ArticuloCodigo = code.IntPart()

	return row, nil
}

// Values retourne les valeurs dans l'ordre de StandsTable
func (r StandRow) Values() []interface{} {
	var fecha interface{}
	if r.Fecha.Valid {
		fecha = r.Fecha.Time.Format(time.DateOnly)
	}
	return []interface{}{
		fecha, r.OrigenBaseDatos, r.Comprobante, r.ItemCantidad, r.ArticuloCodigo,
		r.ArticuloDescripcion, r.ItemMontoSinImpuestos, r.ItemMontoConImpuestos,
		r.ItemDescuentoSinImpuestos, r.ItemDescuentoConImpuestos,
		r.ItemMontoNetoSinImpuestos, r.ItemMontoNeto,
	}
}
