package application

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"salesboard/internal/analytics/domain"
	ordersdomain "salesboard/internal/orders/domain"
	shareddomain "salesboard/internal/shared/domain"
	sharedinfra "salesboard/internal/shared/infrastructure"
	standsdomain "salesboard/internal/stands/domain"
)

// Espaces de noms des clés de cache
const (
	EcommerceNamespace = "ecommerce"
	StandsNamespace    = "stands"
)

// DefaultTopN est le nombre de produits affichés dans les classements
const DefaultTopN = 10

// OrderSource lit et nettoie un export e-commerce
type OrderSource interface {
	ReadFile(path string) ([]ordersdomain.OrderLine, error)
}

// SaleSource lit et nettoie un export des stands
type SaleSource interface {
	ReadFile(path string) ([]standsdomain.SaleLine, error)
}

// EcommerceView regroupe tout ce qu'affiche la vue "Ecommerce" pour une période
type EcommerceView struct {
	Start       string                 `json:"start"`
	End         string                 `json:"end"`
	KPIs        domain.KPIs            `json:"kpis"`
	Daily       []domain.DailySummary  `json:"daily"`
	TopProducts []domain.ProductStats  `json:"top_products"`
	Shipping    []domain.ShippingStats `json:"shipping"`
}

// StandsView regroupe tout ce qu'affiche la vue "Stands" pour une période
type StandsView struct {
	Start       string                    `json:"start"`
	End         string                    `json:"end"`
	KPIs        domain.KPIs               `json:"kpis"`
	Daily       []domain.DailySummary     `json:"daily"`
	TopProducts []domain.ProductStats     `json:"top_products"`
	Stores      []domain.StoreStats       `json:"stores"`
	Series      []domain.StoreSeriesPoint `json:"series"`
	TopByStore  []domain.StoreTopProducts `json:"top_by_store"`
}

// DashboardConfig regroupe les chemins des exports et la taille des classements
type DashboardConfig struct {
	EcommercePath string
	StandsPath    string
	TopN          int
}

// DashboardService charge les exports nettoyés (via le cache), filtre par
// période et agrège les vues du tableau de bord
type DashboardService struct {
	cfg    DashboardConfig
	orders OrderSource
	sales  SaleSource
	cache  *sharedinfra.InMemoryCache
	logger *log.Logger
}

// NewDashboardService crée une nouvelle instance de DashboardService
func NewDashboardService(
	cfg DashboardConfig,
	orders OrderSource,
	sales SaleSource,
	cache *sharedinfra.InMemoryCache,
	logger *log.Logger,
) *DashboardService {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	return &DashboardService{
		cfg:    cfg,
		orders: orders,
		sales:  sales,
		cache:  cache,
		logger: logger.WithPrefix("dashboard"),
	}
}

// ============================================================================
// CACHE DES TABLES NETTOYÉES
//
// Clé: espace de noms + chemin + date de modification + taille du fichier.
// Un fichier modifié produit une nouvelle clé; l'ancienne version est alors
// retirée. Pas d'expiration: seules Invalidate et ClearCache vident le cache.
// ============================================================================

// OrderLines retourne les lignes e-commerce nettoyées, triées par date
func (s *DashboardService) OrderLines() ([]ordersdomain.OrderLine, error) {
	return loadCached(s, EcommerceNamespace, s.cfg.EcommercePath, func(path string) ([]ordersdomain.OrderLine, error) {
		lines, err := s.orders.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return domain.SortByDate(lines), nil
	})
}

// SaleLines retourne les lignes des stands nettoyées, triées par date
func (s *DashboardService) SaleLines() ([]standsdomain.SaleLine, error) {
	return loadCached(s, StandsNamespace, s.cfg.StandsPath, func(path string) ([]standsdomain.SaleLine, error) {
		lines, err := s.sales.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return domain.SortByDate(lines), nil
	})
}

func loadCached[T any](s *DashboardService, namespace, path string, load func(string) ([]T, error)) ([]T, error) {
	sig, err := sharedinfra.StatFile(path)
	if err != nil {
		return nil, err
	}

	key := sig.CacheKey(namespace)
	if cached, found := s.cache.Get(key); found {
		return cached.([]T), nil
	}

	start := time.Now()
	lines, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", namespace, err)
	}

	s.cache.DeletePrefix(sharedinfra.CachePrefix(namespace, path))
	s.cache.Set(key, lines)
	s.logger.Info("source loaded", "source", namespace, "path", path, "rows", len(lines), "took", time.Since(start))
	return lines, nil
}

// FilteredOrders retourne les lignes e-commerce de la période
func (s *DashboardService) FilteredOrders(dr shareddomain.DateRange) ([]ordersdomain.OrderLine, error) {
	lines, err := s.OrderLines()
	if err != nil {
		return nil, err
	}
	return domain.FilterByDate(lines, dr), nil
}

// FilteredSales retourne les lignes des stands de la période
func (s *DashboardService) FilteredSales(dr shareddomain.DateRange) ([]standsdomain.SaleLine, error) {
	lines, err := s.SaleLines()
	if err != nil {
		return nil, err
	}
	return domain.FilterByDate(lines, dr), nil
}

// Ecommerce calcule la vue e-commerce pour la période
func (s *DashboardService) Ecommerce(dr shareddomain.DateRange) (*EcommerceView, error) {
	lines, err := s.FilteredOrders(dr)
	if err != nil {
		return nil, err
	}
	return &EcommerceView{
		Start:       dr.Start().Format(shareddomain.DateLayout),
		End:         dr.End().Format(shareddomain.DateLayout),
		KPIs:        domain.OrderKPIs(lines),
		Daily:       domain.OrderDailySummary(lines),
		TopProducts: domain.OrderTopProducts(lines, s.cfg.TopN),
		Shipping:    domain.ShippingDistribution(lines),
	}, nil
}

// Stands calcule la vue des stands pour la période
func (s *DashboardService) Stands(dr shareddomain.DateRange) (*StandsView, error) {
	lines, err := s.FilteredSales(dr)
	if err != nil {
		return nil, err
	}
	return &StandsView{
		Start:       dr.Start().Format(shareddomain.DateLayout),
		End:         dr.End().Format(shareddomain.DateLayout),
		KPIs:        domain.SaleKPIs(lines),
		Daily:       domain.SaleDailySummary(lines),
		TopProducts: domain.SaleTopProducts(lines, s.cfg.TopN),
		Stores:      domain.StoreSummary(lines),
		Series:      domain.StoreSeries(lines),
		TopByStore:  domain.TopProductsByStore(lines, s.cfg.TopN),
	}, nil
}

// TopN retourne la taille des classements
func (s *DashboardService) TopN() int {
	return s.cfg.TopN
}

// Invalidate retire du cache toutes les versions d'un fichier source
func (s *DashboardService) Invalidate(path string) int {
	removed := s.cache.DeletePrefix(sharedinfra.CachePrefix(EcommerceNamespace, path)) +
		s.cache.DeletePrefix(sharedinfra.CachePrefix(StandsNamespace, path))
	s.logger.Info("cache invalidated", "path", path, "entries", removed)
	return removed
}

// CachedEntries retourne le nombre de versions de sources en cache
func (s *DashboardService) CachedEntries() int {
	return s.cache.Len()
}

// ClearCache vide entièrement le cache
func (s *DashboardService) ClearCache() {
	s.cache.Clear()
	s.logger.Info("cache cleared")
}

// Warm charge les deux sources en parallèle (pool de 2 workers).
// Une source absente est journalisée et retournée dans l'erreur jointe.
func (s *DashboardService) Warm(ctx context.Context) error {
	err := sharedinfra.RunAll(ctx, 2,
		func(ctx context.Context) error {
			_, err := s.OrderLines()
			return err
		},
		func(ctx context.Context) error {
			_, err := s.SaleLines()
			return err
		},
	)
	if err != nil {
		s.logger.Warn("cache warm-up incomplete", "err", err)
	}
	return err
}
