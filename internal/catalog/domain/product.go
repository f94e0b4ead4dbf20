package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ProductID représente l'identifiant d'un produit de la boutique
type ProductID int64

// VariantID représente l'identifiant d'une variante (taille, couleur...)
type VariantID int64

// ProductVariant représente une variante de produit du catalogue exporté
type ProductVariant struct {
	productID ProductID
	variantID VariantID
	title     string
	status    string
	price     decimal.Decimal
	stock     string
	sku       int64
	weight    decimal.Decimal
}

// NewProductVariant crée une variante avec validation
func NewProductVariant(
	productID ProductID,
	variantID VariantID,
	title string,
	status string,
	price decimal.Decimal,
	stock string,
	sku int64,
	weight decimal.Decimal,
) (ProductVariant, error) {
	if productID < 0 || variantID < 0 {
		return ProductVariant{}, errors.New("product and variant IDs cannot be negative")
	}
	if price.IsNegative() {
		return ProductVariant{}, errors.New("variant price cannot be negative")
	}

	return ProductVariant{
		productID: productID,
		variantID: variantID,
		title:     title,
		status:    status,
		price:     price,
		stock:     stock,
		sku:       sku,
		weight:    weight,
	}, nil
}

// ProductID retourne l'identifiant du produit
func (p ProductVariant) ProductID() ProductID {
	return p.productID
}

// VariantID retourne l'identifiant de la variante
func (p ProductVariant) VariantID() VariantID {
	return p.variantID
}

// Title retourne le titre (ASCII uniquement)
func (p ProductVariant) Title() string {
	return p.title
}

// Status retourne le statut de publication
func (p ProductVariant) Status() string {
	return p.status
}

// Price retourne le prix de la variante
func (p ProductVariant) Price() decimal.Decimal {
	return p.price
}

// Stock retourne le stock tel qu'exporté ("10", "Ilimitado"...)
func (p ProductVariant) Stock() string {
	return p.stock
}

// SKU retourne le code article
func (p ProductVariant) SKU() int64 {
	return p.sku
}

// Weight retourne le poids
func (p ProductVariant) Weight() decimal.Decimal {
	return p.weight
}
