package domain

import (
	"cmp"
	"slices"
	"time"

	"salesboard/internal/shared/domain"
	standsdomain "salesboard/internal/stands/domain"
)

// storeDay identifie une "commande" de stand: une tienda un jour donné
type storeDay struct {
	store string
	day   time.Time
}

func zeroMoney() domain.Money {
	return domain.MustNewMoney(0, domain.DefaultCurrency)
}

// SaleKPIs calcule les indicateurs des stands: une commande = un couple (tienda, jour),
// chiffre d'affaires = somme des Ingreso_neto
func SaleKPIs(lines []standsdomain.SaleLine) KPIs {
	pairs := make(map[storeDay]struct{})
	var items int64
	revenue := zeroMoney()
	for _, l := range lines {
		pairs[storeDay{store: l.Store(), day: domain.TruncateDay(l.Date())}] = struct{}{}
		items += l.Quantity()
		revenue = revenue.AddAmount(l.NetRevenue())
	}
	return NewKPIs(len(pairs), items, revenue)
}

// SaleDailySummary regroupe les ventes par jour, tri par date croissante.
// order_count = nombre de tiendas ayant vendu ce jour-là. Les lignes sans date sont ignorées.
func SaleDailySummary(lines []standsdomain.SaleLine) []DailySummary {
	type acc struct {
		summary DailySummary
		stores  map[string]struct{}
	}
	days := newGroups[time.Time, acc]()
	for _, l := range lines {
		if l.Date().IsZero() {
			continue
		}
		day := domain.TruncateDay(l.Date())
		a, created := days.at(day)
		if created {
			a.summary = DailySummary{Date: day, Revenue: zeroMoney()}
			a.stores = make(map[string]struct{})
		}
		a.summary.Revenue = a.summary.Revenue.AddAmount(l.NetRevenue())
		a.summary.ItemCount += l.Quantity()
		a.stores[l.Store()] = struct{}{}
	}

	out := make([]DailySummary, 0, len(days.values))
	for _, a := range days.values {
		a.summary.OrderCount = len(a.stores)
		out = append(out, a.summary)
	}
	slices.SortStableFunc(out, func(a, b DailySummary) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

type productKey struct {
	sku   string
	title string
}

// SaleTopProducts regroupe par (SKU, titre) et retourne les n plus vendus en quantité
func SaleTopProducts(lines []standsdomain.SaleLine, n int) []ProductStats {
	products := newGroups[productKey, ProductStats]()
	for _, l := range lines {
		p, created := products.at(productKey{sku: l.SKU(), title: l.Title()})
		if created {
			*p = ProductStats{SKU: l.SKU(), Title: l.Title(), Revenue: zeroMoney()}
		}
		p.Quantity += l.Quantity()
		p.Revenue = p.Revenue.AddAmount(l.NetRevenue())
	}
	return topByQuantity(products.values, n)
}

// TopProductsByStore retourne les n meilleurs produits de chaque tienda,
// tiendas dans l'ordre d'apparition
func TopProductsByStore(lines []standsdomain.SaleLine, n int) []StoreTopProducts {
	byStore := newGroups[string, []standsdomain.SaleLine]()
	for _, l := range lines {
		storeLines, _ := byStore.at(l.Store())
		*storeLines = append(*storeLines, l)
	}

	out := make([]StoreTopProducts, 0, len(byStore.keys))
	for i, store := range byStore.keys {
		out = append(out, StoreTopProducts{
			Store:    store,
			Products: SaleTopProducts(byStore.values[i], n),
		})
	}
	return out
}

// StoreTotals retourne le cumul par tienda
func StoreTotals(lines []standsdomain.SaleLine) map[string]StoreStats {
	totals := make(map[string]StoreStats)
	for _, s := range StoreSummary(lines) {
		totals[s.Store] = s
	}
	return totals
}

// StoreSummary retourne le cumul par tienda, classé par chiffre d'affaires décroissant
// (égalités dans l'ordre d'apparition)
func StoreSummary(lines []standsdomain.SaleLine) []StoreStats {
	stores := newGroups[string, StoreStats]()
	for _, l := range lines {
		s, created := stores.at(l.Store())
		if created {
			*s = StoreStats{Store: l.Store(), Revenue: zeroMoney()}
		}
		s.Revenue = s.Revenue.AddAmount(l.NetRevenue())
		s.ItemCount += l.Quantity()
	}

	out := stores.values
	slices.SortStableFunc(out, func(a, b StoreStats) int {
		return cmp.Compare(b.Revenue.Amount(), a.Revenue.Amount())
	})
	return out
}

// StoreSeries retourne le chiffre d'affaires net par (jour, tienda),
// trié par date puis par nom de tienda. Les lignes sans date sont ignorées.
func StoreSeries(lines []standsdomain.SaleLine) []StoreSeriesPoint {
	points := newGroups[storeDay, StoreSeriesPoint]()
	for _, l := range lines {
		if l.Date().IsZero() {
			continue
		}
		key := storeDay{store: l.Store(), day: domain.TruncateDay(l.Date())}
		p, created := points.at(key)
		if created {
			*p = StoreSeriesPoint{Date: key.day, Store: key.store, Revenue: zeroMoney()}
		}
		p.Revenue = p.Revenue.AddAmount(l.NetRevenue())
	}

	out := points.values
	slices.SortStableFunc(out, func(a, b StoreSeriesPoint) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Store, b.Store)
	})
	return out
}
