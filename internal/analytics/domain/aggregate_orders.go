package domain

import (
	"slices"
	"time"

	ordersdomain "salesboard/internal/orders/domain"
	"salesboard/internal/shared/domain"
)

// ============================================================================
// AGRÉGATS E-COMMERCE
//
// Date et total sont des valeurs de niveau commande répétées sur chaque ligne:
// le chiffre d'affaires se calcule sur une ligne par commande (la première),
// jamais sur toutes les lignes. Une ligne sans numéro de commande ne compte
// ni comme commande ni dans le chiffre d'affaires (ses articles comptent).
// ============================================================================

// FirstLinePerOrder retourne la première ligne de chaque commande, dans l'ordre d'apparition
func FirstLinePerOrder(lines []ordersdomain.OrderLine) []ordersdomain.OrderLine {
	seen := make(map[string]struct{}, len(lines))
	out := make([]ordersdomain.OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.OrderNum() == "" {
			continue
		}
		if _, dup := seen[l.OrderNum()]; dup {
			continue
		}
		seen[l.OrderNum()] = struct{}{}
		out = append(out, l)
	}
	return out
}

// OrderKPIs calcule commandes distinctes, articles, chiffre d'affaires dédoublonné et panier moyen
func OrderKPIs(lines []ordersdomain.OrderLine) KPIs {
	var items int64
	for _, l := range lines {
		items += l.ArticleQuantity()
	}

	orders := FirstLinePerOrder(lines)
	revenue := zeroMoney()
	for _, o := range orders {
		revenue = revenue.AddAmount(o.Total())
	}
	return NewKPIs(len(orders), items, revenue)
}

// OrderDailySummary regroupe par jour: chiffre d'affaires des commandes,
// articles de toutes les lignes, commandes distinctes. Tri par date croissante.
// Les lignes sans date sont ignorées.
func OrderDailySummary(lines []ordersdomain.OrderLine) []DailySummary {
	type acc struct {
		summary DailySummary
		orders  map[string]struct{}
	}
	days := newGroups[time.Time, acc]()
	seenOrders := make(map[string]struct{})

	for _, l := range lines {
		if l.Date().IsZero() {
			continue
		}
		day := domain.TruncateDay(l.Date())
		a, created := days.at(day)
		if created {
			a.summary = DailySummary{Date: day, Revenue: zeroMoney()}
			a.orders = make(map[string]struct{})
		}
		a.summary.ItemCount += l.ArticleQuantity()

		if l.OrderNum() == "" {
			continue
		}
		a.orders[l.OrderNum()] = struct{}{}
		if _, counted := seenOrders[l.OrderNum()]; !counted {
			seenOrders[l.OrderNum()] = struct{}{}
			a.summary.Revenue = a.summary.Revenue.AddAmount(l.Total())
		}
	}

	out := make([]DailySummary, 0, len(days.values))
	for _, a := range days.values {
		a.summary.OrderCount = len(a.orders)
		out = append(out, a.summary)
	}
	slices.SortStableFunc(out, func(a, b DailySummary) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// OrderTopProducts regroupe les lignes par produit et retourne les n plus vendus.
// L'export e-commerce ne porte ni SKU ni montant par ligne: SKU vide, revenu nul.
func OrderTopProducts(lines []ordersdomain.OrderLine, n int) []ProductStats {
	products := newGroups[string, ProductStats]()
	for _, l := range lines {
		p, created := products.at(l.ArticleTitle())
		if created {
			*p = ProductStats{Title: l.ArticleTitle(), Revenue: zeroMoney()}
		}
		p.Quantity += l.ArticleQuantity()
	}
	return topByQuantity(products.values, n)
}

// ShippingDistribution compte les commandes distinctes par mode de livraison,
// par nombre décroissant (égalités dans l'ordre d'apparition).
// Une commande de plusieurs lignes compte une seule fois: seule sa première
// ligne est retenue, et non chaque ligne de l'export.
func ShippingDistribution(lines []ordersdomain.OrderLine) []ShippingStats {
	orders := FirstLinePerOrder(lines)
	methods := newGroups[string, ShippingStats]()
	for _, o := range orders {
		s, _ := methods.at(o.ShippingMethod())
		s.Method = o.ShippingMethod()
		s.OrderCount++
	}

	out := methods.values
	for i := range out {
		out[i].Percentage = float64(out[i].OrderCount) * 100 / float64(len(orders))
	}
	slices.SortStableFunc(out, func(a, b ShippingStats) int {
		return b.OrderCount - a.OrderCount
	})
	return out
}
