package domain

import (
	"encoding/json"
	"time"

	"salesboard/internal/shared/domain"
)

// ============================================================================
// VUES D'AGRÉGATION
//
// Résultats en lecture seule des agrégateurs; aucune ne référence les lignes
// d'origine.
// ============================================================================

// KPIs représente les indicateurs principaux d'une période
type KPIs struct {
	OrderCount   int          `json:"order_count"`
	ItemCount    int64        `json:"item_count"`
	RevenueTotal domain.Money `json:"revenue_total"`
	RevenueAvg   float64      `json:"revenue_avg"`
}

// NewKPIs calcule la moyenne; 0 commande donne une moyenne nulle
func NewKPIs(orderCount int, itemCount int64, revenue domain.Money) KPIs {
	return KPIs{
		OrderCount:   orderCount,
		ItemCount:    itemCount,
		RevenueTotal: revenue,
		RevenueAvg:   revenue.Average(orderCount),
	}
}

// DailySummary représente l'activité d'une journée
type DailySummary struct {
	Date       time.Time    `json:"date"`
	Revenue    domain.Money `json:"revenue"`
	ItemCount  int64        `json:"item_count"`
	OrderCount int          `json:"order_count"`
}

// MarshalJSON expose la date au format YYYY-MM-DD
func (d DailySummary) MarshalJSON() ([]byte, error) {
	type alias DailySummary
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(d), Date: d.Date.Format(domain.DateLayout)})
}

// ProductStats représente les ventes d'un produit
type ProductStats struct {
	SKU      string       `json:"sku"`
	Title    string       `json:"title"`
	Quantity int64        `json:"quantity"`
	Revenue  domain.Money `json:"revenue"`
}

// StoreStats représente les ventes cumulées d'une tienda
type StoreStats struct {
	Store     string       `json:"store"`
	Revenue   domain.Money `json:"revenue_total"`
	ItemCount int64        `json:"item_count"`
}

// StoreSeriesPoint est un point de la série chronologique par tienda
type StoreSeriesPoint struct {
	Date    time.Time    `json:"date"`
	Store   string       `json:"store"`
	Revenue domain.Money `json:"revenue"`
}

// MarshalJSON expose la date au format YYYY-MM-DD
func (p StoreSeriesPoint) MarshalJSON() ([]byte, error) {
	type alias StoreSeriesPoint
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(p), Date: p.Date.Format(domain.DateLayout)})
}

// StoreTopProducts regroupe les meilleurs produits d'une tienda
type StoreTopProducts struct {
	Store    string         `json:"store"`
	Products []ProductStats `json:"products"`
}

// ShippingStats représente la répartition des commandes par mode de livraison
type ShippingStats struct {
	Method     string  `json:"method"`
	OrderCount int     `json:"order_count"`
	Percentage float64 `json:"percentage"`
}
