package infrastructure

import (
	"io"
	"strings"
	"time"

	"salesboard/internal/orders/domain"
	shareddomain "salesboard/internal/shared/domain"
	"salesboard/internal/shared/infrastructure"
)

// Colonnes de l'export e-commerce utilisées par l'analyse.
// Les autres colonnes (données personnelles, taxes, factures) sont ignorées.
const (
	ColOrderID         = "order_id"
	ColOrderNum        = "order_num"
	ColDate            = "date"
	ColTotal           = "total"
	ColArticleTitle    = "article_title"
	ColArticleQuantity = "article_quantity"
	ColShippingMethod  = "shipping_method"
	ColOrigin          = "origin"
	ColPromoCode       = "promo_code"
)

// OrderDateLayout est le format des dates de l'export (JJ/MM/AA)
const OrderDateLayout = "2/1/06"

// requiredOrderColumns doivent figurer dans l'en-tête; les autres sont optionnelles
var requiredOrderColumns = []string{ColOrderNum, ColDate, ColTotal, ColArticleTitle, ColArticleQuantity}

// OrderCSVReader lit et nettoie l'export e-commerce
type OrderCSVReader struct {
	delimiter rune
}

// NewOrderCSVReader crée un lecteur pour le séparateur donné
func NewOrderCSVReader(delimiter rune) *OrderCSVReader {
	return &OrderCSVReader{delimiter: delimiter}
}

// ReadFile lit un fichier d'export; un fichier absent retourne ErrSourceNotFound
func (r *OrderCSVReader) ReadFile(path string) ([]domain.OrderLine, error) {
	table, err := infrastructure.ReadDelimitedFile(path, r.delimiter)
	if err != nil {
		return nil, err
	}
	return NormalizeOrders(table)
}

// Read lit un export depuis un flux
func (r *OrderCSVReader) Read(src io.Reader) ([]domain.OrderLine, error) {
	table, err := infrastructure.ReadDelimited(src, r.delimiter)
	if err != nil {
		return nil, err
	}
	return NormalizeOrders(table)
}

// NormalizeOrders transforme la table brute en lignes de commande typées.
//
// Règles (aucune erreur au niveau des valeurs):
//   - total: propagé s'il manque, puis chiffres seuls, puis division entière par TotalScale
//   - date: JJ/MM/AA sur le premier mot; illisible → date précédente (ou nulle en tête de fichier)
//   - promo_code absent → "None"; shipping_method et origin propagés
//   - order_id / order_num: "1001.0" → "1001", "0" ou vide = manquant, propagé
//   - article_quantity: entier tronqué, illisible → 0
//
// Seule une colonne obligatoire absente de l'en-tête est une erreur.
func NormalizeOrders(table *infrastructure.DelimitedTable) ([]domain.OrderLine, error) {
	if err := table.Require(requiredOrderColumns...); err != nil {
		return nil, err
	}

	col := func(name string) int {
		if i, ok := table.Column(name); ok {
			return i
		}
		return -1
	}
	cOrderID := col(ColOrderID)
	cOrderNum := col(ColOrderNum)
	cDate := col(ColDate)
	cTotal := col(ColTotal)
	cTitle := col(ColArticleTitle)
	cQty := col(ColArticleQuantity)
	cShipping := col(ColShippingMethod)
	cOrigin := col(ColOrigin)
	cPromo := col(ColPromoCode)

	var (
		dateFill     shareddomain.ForwardFill[time.Time]
		totalFill    shareddomain.ForwardFill[string]
		orderNumFill shareddomain.ForwardFill[string]
		orderIDFill  shareddomain.ForwardFill[string]
		shippingFill shareddomain.ForwardFill[string]
		originFill   shareddomain.ForwardFill[string]
	)

	lines := make([]domain.OrderLine, 0, len(table.Rows))
	for _, row := range table.Rows {
		var flags domain.FillFlag
		mark := func(filled bool, flag domain.FillFlag) {
			if filled {
				flags |= flag
			}
		}

		raw, _ := infrastructure.Cell(row, cDate)
		parsed, ok := shareddomain.ParseDateFirst(raw, OrderDateLayout)
		date, filled := dateFill.Next(parsed, ok)
		mark(filled, domain.FilledDate)

		rawTotal, ok := infrastructure.Cell(row, cTotal)
		rawTotal, filled = totalFill.Next(rawTotal, ok)
		mark(filled, domain.FilledTotal)

		orderNum, filled := orderNumFill.Next(orderIdentifier(row, cOrderNum))
		mark(filled, domain.FilledOrderNum)

		orderID, filled := orderIDFill.Next(orderIdentifier(row, cOrderID))
		mark(filled, domain.FilledOrderID)

		shipping, ok := infrastructure.Cell(row, cShipping)
		shipping, filled = shippingFill.Next(shipping, ok)
		mark(filled, domain.FilledShipping)

		origin, ok := infrastructure.Cell(row, cOrigin)
		origin, filled = originFill.Next(origin, ok)
		mark(filled, domain.FilledOrigin)

		title, _ := infrastructure.Cell(row, cTitle)
		qty, _ := infrastructure.Cell(row, cQty)
		promo, _ := infrastructure.Cell(row, cPromo)

		lines = append(lines, domain.NewOrderLine(domain.OrderLineFields{
			OrderID:         orderID,
			OrderNum:        orderNum,
			Date:            date,
			Total:           shareddomain.DigitsToInt(rawTotal) / domain.TotalScale,
			ArticleTitle:    title,
			ArticleQuantity: shareddomain.CoerceInt(qty),
			ShippingMethod:  shipping,
			Origin:          origin,
			PromoCode:       promo,
			Filled:          flags,
		}))
	}
	return lines, nil
}

// orderIdentifier lit un identifiant de commande; "" et "0" sont considérés manquants
func orderIdentifier(row []string, col int) (string, bool) {
	raw, ok := infrastructure.Cell(row, col)
	if !ok {
		return "", false
	}
	id := shareddomain.IntegralString(raw)
	if id == "0" || strings.EqualFold(id, "nan") {
		return "", false
	}
	return id, true
}
