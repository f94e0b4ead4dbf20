package infrastructure

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"salesboard/internal/catalog/domain"
	"salesboard/internal/shared/infrastructure"
)

// ProductColumns sont les noms SQL des 8 colonnes de products.csv, dans l'ordre du fichier
var ProductColumns = []string{
	"product_id",
	"variant_id",
	"product_title",
	"product_status",
	"variant_price",
	"variant_stock",
	"variant_sku",
	"variant_weight",
}

// ProductRecord est le résultat de la lecture d'une ligne: une variante ou une erreur
type ProductRecord struct {
	Index   int
	Variant domain.ProductVariant
	Err     error
}

// ProductCSVReader lit l'export du catalogue (colonnes positionnelles)
type ProductCSVReader struct {
	delimiter rune
}

// NewProductCSVReader crée un lecteur pour le séparateur donné
func NewProductCSVReader(delimiter rune) *ProductCSVReader {
	return &ProductCSVReader{delimiter: delimiter}
}

// ReadFile lit toutes les lignes; une ligne illisible est retournée avec son erreur
// plutôt que d'interrompre la lecture
func (r *ProductCSVReader) ReadFile(path string) ([]ProductRecord, error) {
	table, err := infrastructure.ReadDelimitedFile(path, r.delimiter)
	if err != nil {
		return nil, err
	}
	if len(table.Header) < len(ProductColumns) {
		return nil, fmt.Errorf("%w: products file has %d columns, expected %d",
			infrastructure.ErrMissingColumn, len(table.Header), len(ProductColumns))
	}

	records := make([]ProductRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		variant, err := ParseProductRecord(row)
		records = append(records, ProductRecord{Index: i, Variant: variant, Err: err})
	}
	return records, nil
}

// ParseProductRecord applique les transformations légères d'une ligne:
// titre réduit à l'ASCII, virgules retirées des nombres, "--" lu comme 0
func ParseProductRecord(record []string) (domain.ProductVariant, error) {
	if len(record) < len(ProductColumns) {
		return domain.ProductVariant{}, fmt.Errorf("expected %d fields, got %d", len(ProductColumns), len(record))
	}

	productID, err := parseCatalogInt(record[0])
	if err != nil {
		return domain.ProductVariant{}, fmt.Errorf("product_id: %w", err)
	}
	variantID, err := parseCatalogInt(record[1])
	if err != nil {
		return domain.ProductVariant{}, fmt.Errorf("variant_id: %w", err)
	}
	price, err := parseCatalogDecimal(record[4])
	if err != nil {
		return domain.ProductVariant{}, fmt.Errorf("variant_price: %w", err)
	}
	sku, err := parseCatalogInt(record[6])
	if err != nil {
		return domain.ProductVariant{}, fmt.Errorf("variant_sku: %w", err)
	}
	weight, err := parseCatalogDecimal(record[7])
	if err != nil {
		return domain.ProductVariant{}, fmt.Errorf("variant_weight: %w", err)
	}

	return domain.NewProductVariant(
		domain.ProductID(productID),
		domain.VariantID(variantID),
		StripNonASCII(strings.TrimSpace(record[2])),
		strings.TrimSpace(record[3]),
		price,
		strings.TrimSpace(record[5]),
		sku,
		weight,
	)
}

// StripNonASCII supprime les caractères hors ASCII
func StripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func cleanCatalogNumber(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" || s == "--" {
		return "0"
	}
	return s
}

func parseCatalogInt(raw string) (int64, error) {
	s := cleanCatalogNumber(raw)
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, nil
	}
	// ids exportés comme flottants ("123.0")
	d, derr := decimal.NewFromString(s)
	if derr != nil || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return d.IntPart(), nil
}

func parseCatalogDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(cleanCatalogNumber(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", raw)
	}
	return d, nil
}
