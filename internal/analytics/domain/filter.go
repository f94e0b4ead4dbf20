package domain

import (
	"slices"
	"time"

	"salesboard/internal/shared/domain"
)

// Dated est implémenté par toute ligne portant une date calendaire
type Dated interface {
	Date() time.Time
}

// FilterByDate retourne les lignes dont la date appartient à la période
// (bornes incluses), dans leur ordre d'origine. La tranche d'entrée n'est pas modifiée.
func FilterByDate[T Dated](rows []T, dr domain.DateRange) []T {
	out := make([]T, 0, len(rows))
	if dr.IsEmpty() {
		return out
	}
	for _, row := range rows {
		if dr.Contains(row.Date()) {
			out = append(out, row)
		}
	}
	return out
}

// SortByDate retourne une copie triée par jour croissant (tri stable: l'heure
// est ignorée et les lignes d'un même jour gardent leur ordre)
func SortByDate[T Dated](rows []T) []T {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b T) int {
		return domain.TruncateDay(a.Date()).Compare(domain.TruncateDay(b.Date()))
	})
	return out
}

// groups accumule des valeurs par clé en conservant l'ordre de première apparition
type groups[K comparable, V any] struct {
	index  map[K]int
	keys   []K
	values []V
}

func newGroups[K comparable, V any]() *groups[K, V] {
	return &groups[K, V]{
		index:  make(map[K]int),
		keys:   make([]K, 0),
		values: make([]V, 0),
	}
}

// at retourne l'accumulateur de la clé et indique s'il vient d'être créé.
// Le pointeur n'est valide que jusqu'au prochain appel.
func (g *groups[K, V]) at(key K) (*V, bool) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.values)
		g.index[key] = i
		g.keys = append(g.keys, key)
		var zero V
		g.values = append(g.values, zero)
	}
	return &g.values[i], !ok
}

// topByQuantity trie par quantité décroissante (égalités dans l'ordre d'apparition) et tronque à n
func topByQuantity(products []ProductStats, n int) []ProductStats {
	slices.SortStableFunc(products, func(a, b ProductStats) int {
		switch {
		case a.Quantity > b.Quantity:
			return -1
		case a.Quantity < b.Quantity:
			return 1
		}
		return 0
	})
	if n < 0 {
		n = 0
	}
	if len(products) > n {
		products = products[:n]
	}
	return products
}
