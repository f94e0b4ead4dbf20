package infrastructure

import (
	"io"
	"time"

	shareddomain "salesboard/internal/shared/domain"
	"salesboard/internal/shared/infrastructure"
	"salesboard/internal/stands/domain"
)

// Colonnes brutes de l'export des stands (12 colonnes)
const (
	ColFecha             = "Fecha"
	ColOrigen            = "Origen - Base de datos"
	ColComprobante       = "Comprobante"
	ColCantidad          = "Item - Cantidad"
	ColCodigo            = "Artículo - Código"
	ColArticulo          = "Artículo"
	ColMontoSinImpuestos = "Item - Monto sin impuestos"
	ColMontoConImpuestos = "Item - Monto con impuestos"
	ColDescSinImpuestos  = "Item - Descuento sin impuestos"
	ColDescConImpuestos  = "Item - Descuento con impuestos"
	ColNetoSinImpuestos  = "Item - Monto Neto sin impuestos"
	ColMontoNeto         = "Item - Monto Neto"
)

// SaleDateLayouts sont essayés dans l'ordre; le premier qui réussit l'emporte
var SaleDateLayouts = []string{"2/1/06", "2/1/2006", "2-1-06", "2-1-2006"}

// CanonicalSaleDateLayout est le format unique (JJ/MM/AA) vers lequel les dates sont ramenées
const CanonicalSaleDateLayout = "02/01/06"

var requiredSaleColumns = []string{
	ColFecha, ColOrigen, ColCantidad, ColCodigo, ColArticulo,
	ColMontoConImpuestos, ColDescConImpuestos, ColMontoNeto,
}

// SaleCSVReader lit et nettoie l'export des stands
type SaleCSVReader struct {
	delimiter rune
	rules     domain.CleaningRules
}

// NewSaleCSVReader crée un lecteur avec les règles de nettoyage données
func NewSaleCSVReader(delimiter rune, rules domain.CleaningRules) *SaleCSVReader {
	return &SaleCSVReader{delimiter: delimiter, rules: rules}
}

// ReadFile lit un fichier d'export; un fichier absent retourne ErrSourceNotFound
func (r *SaleCSVReader) ReadFile(path string) ([]domain.SaleLine, error) {
	table, err := infrastructure.ReadDelimitedFile(path, r.delimiter)
	if err != nil {
		return nil, err
	}
	return NormalizeSales(table, r.rules)
}

// Read lit un export depuis un flux
func (r *SaleCSVReader) Read(src io.Reader) ([]domain.SaleLine, error) {
	table, err := infrastructure.ReadDelimited(src, r.delimiter)
	if err != nil {
		return nil, err
	}
	return NormalizeSales(table, r.rules)
}

// NormalizeSales transforme la table brute en lignes de vente typées.
//
// Une ligne avec une cellule vide (dans n'importe quelle colonne de l'en-tête)
// est écartée. Les montants et quantités illisibles valent 0; une date
// illisible donne une date nulle (la ligne est conservée mais ne passera
// aucun filtre de période).
func NormalizeSales(table *infrastructure.DelimitedTable, rules domain.CleaningRules) ([]domain.SaleLine, error) {
	if err := table.Require(requiredSaleColumns...); err != nil {
		return nil, err
	}

	col := func(name string) int {
		i, _ := table.Column(name)
		return i
	}
	cFecha := col(ColFecha)
	cStore := col(ColOrigen)
	cQty := col(ColCantidad)
	cSKU := col(ColCodigo)
	cTitle := col(ColArticulo)
	cGross := col(ColMontoConImpuestos)
	cDiscount := col(ColDescConImpuestos)
	cNet := col(ColMontoNeto)

	lines := make([]domain.SaleLine, 0, len(table.Rows))
	for _, row := range table.Rows {
		if hasMissingCell(row, len(table.Header)) {
			continue
		}

		fecha, _ := infrastructure.Cell(row, cFecha)
		rawStore, _ := infrastructure.Cell(row, cStore)
		sku, _ := infrastructure.Cell(row, cSKU)
		title, _ := infrastructure.Cell(row, cTitle)
		qty, _ := infrastructure.Cell(row, cQty)
		gross, _ := infrastructure.Cell(row, cGross)
		discount, _ := infrastructure.Cell(row, cDiscount)
		net, _ := infrastructure.Cell(row, cNet)

		lines = append(lines, domain.NewSaleLine(
			rules.CanonicalStore(rawStore),
			ParseSaleDate(fecha),
			shareddomain.IntegralString(sku),
			rules.CleanTitle(rawStore, title),
			shareddomain.CoerceInt(qty),
			shareddomain.CoerceInt(gross),
			shareddomain.CoerceInt(discount),
			shareddomain.CoerceInt(net),
		))
	}
	return lines, nil
}

// ParseSaleDate essaie les formats connus, ramène la date au format canonique
// JJ/MM/AA puis la relit. Échec total → date nulle.
// Le passage par une année sur deux chiffres fait rebasculer les années
// hors 1969-2068 dans cet intervalle.
func ParseSaleDate(raw string) time.Time {
	t, ok := shareddomain.ParseDateFirst(raw, SaleDateLayouts...)
	if !ok {
		return time.Time{}
	}
	canonical, err := time.Parse(CanonicalSaleDateLayout, t.Format(CanonicalSaleDateLayout))
	if err != nil {
		return time.Time{}
	}
	return canonical
}

func hasMissingCell(row []string, width int) bool {
	for i := 0; i < width; i++ {
		if _, ok := infrastructure.Cell(row, i); !ok {
			return true
		}
	}
	return false
}
