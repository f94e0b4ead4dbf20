package domain

import (
	"time"
)

// FillFlag indique quels champs d'une ligne ont été complétés par propagation
// depuis la ligne précédente (forward-fill) plutôt que lus dans l'export
type FillFlag uint8

const (
	FilledDate FillFlag = 1 << iota
	FilledTotal
	FilledOrderNum
	FilledOrderID
	FilledShipping
	FilledOrigin
)

// NoPromoCode est la valeur d'un code promo absent
const NoPromoCode = "None"

// TotalScale corrige l'échelle des totaux de l'export e-commerce (valeurs stockées ×100 000)
const TotalScale = 100_000

// OrderLine représente une ligne d'article d'une commande e-commerce nettoyée.
// Les lignes partageant un même orderNum forment une seule commande: date et
// total sont des valeurs de niveau commande, répétées sur chaque ligne.
type OrderLine struct {
	orderID         string
	orderNum        string
	date            time.Time
	total           int64
	articleTitle    string
	articleQuantity int64
	shippingMethod  string
	origin          string
	promoCode       string
	filled          FillFlag
}

// OrderLineFields regroupe les valeurs d'une ligne déjà normalisées
type OrderLineFields struct {
	OrderID         string
	OrderNum        string
	Date            time.Time
	Total           int64
	ArticleTitle    string
	ArticleQuantity int64
	ShippingMethod  string
	Origin          string
	PromoCode       string
	Filled          FillFlag
}

// NewOrderLine crée une ligne de commande.
// Aucune validation: le normaliseur est best-effort, une valeur illisible vaut déjà 0 ou nul.
func NewOrderLine(f OrderLineFields) OrderLine {
	promo := f.PromoCode
	if promo == "" {
		promo = NoPromoCode
	}
	return OrderLine{
		orderID:         f.OrderID,
		orderNum:        f.OrderNum,
		date:            f.Date,
		total:           f.Total,
		articleTitle:    f.ArticleTitle,
		articleQuantity: f.ArticleQuantity,
		shippingMethod:  f.ShippingMethod,
		origin:          f.Origin,
		promoCode:       promo,
		filled:          f.Filled,
	}
}

// OrderID retourne l'identifiant technique de la commande
func (l OrderLine) OrderID() string {
	return l.orderID
}

// OrderNum retourne le numéro de commande (clé de regroupement des lignes)
func (l OrderLine) OrderNum() string {
	return l.orderNum
}

// Date retourne la date de la commande (zéro si inconnue)
func (l OrderLine) Date() time.Time {
	return l.date
}

// Total retourne le total de la commande, déjà corrigé de l'échelle
func (l OrderLine) Total() int64 {
	return l.total
}

// ArticleTitle retourne le nom du produit
func (l OrderLine) ArticleTitle() string {
	return l.articleTitle
}

// ArticleQuantity retourne la quantité commandée
func (l OrderLine) ArticleQuantity() int64 {
	return l.articleQuantity
}

// ShippingMethod retourne le mode de livraison
func (l OrderLine) ShippingMethod() string {
	return l.shippingMethod
}

// Origin retourne le canal d'origine de la commande
func (l OrderLine) Origin() string {
	return l.origin
}

// PromoCode retourne le code promo ou NoPromoCode
func (l OrderLine) PromoCode() string {
	return l.promoCode
}

// WasFilled indique si le champ a été complété par propagation
func (l OrderLine) WasFilled(flag FillFlag) bool {
	return l.filled&flag != 0
}
