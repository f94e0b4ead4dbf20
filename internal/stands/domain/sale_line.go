package domain

import (
	"time"
)

// SaleLine représente une ligne de vente d'un stand (une ligne = un article vendu).
// Aucun regroupement en transaction: la seule clé naturelle est (store, date, SKU).
type SaleLine struct {
	store        string
	date         time.Time
	sku          string
	title        string
	quantity     int64
	grossRevenue int64
	discount     int64
	netRevenue   int64
}

// NewSaleLine crée une ligne de vente; une date nulle signifie "date illisible"
func NewSaleLine(
	store string,
	date time.Time,
	sku string,
	title string,
	quantity int64,
	grossRevenue int64,
	discount int64,
	netRevenue int64,
) SaleLine {
	return SaleLine{
		store:        store,
		date:         date,
		sku:          sku,
		title:        title,
		quantity:     quantity,
		grossRevenue: grossRevenue,
		discount:     discount,
		netRevenue:   netRevenue,
	}
}

// Store retourne la tienda (après regroupement des alias)
func (s SaleLine) Store() string {
	return s.store
}

// Date retourne la date de vente
func (s SaleLine) Date() time.Time {
	return s.date
}

// SKU retourne le code article
func (s SaleLine) SKU() string {
	return s.sku
}

// Title retourne le nom du produit
func (s SaleLine) Title() string {
	return s.title
}

// Quantity retourne la quantité vendue
func (s SaleLine) Quantity() int64 {
	return s.quantity
}

// GrossRevenue retourne le montant avec impuestos (Ingreso_total)
func (s SaleLine) GrossRevenue() int64 {
	return s.grossRevenue
}

// Discount retourne la remise (Descuento)
func (s SaleLine) Discount() int64 {
	return s.discount
}

// NetRevenue retourne le montant net (Ingreso_neto)
func (s SaleLine) NetRevenue() int64 {
	return s.netRevenue
}
