package application

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	analyticsapp "salesboard/internal/analytics/application"
	analyticsdomain "salesboard/internal/analytics/domain"
	"salesboard/internal/export/domain"
	"salesboard/internal/export/infrastructure"
	shareddomain "salesboard/internal/shared/domain"
)

// ExportService construit les rapports à partir du tableau de bord et les encode
type ExportService struct {
	dashboard *analyticsapp.DashboardService
	logger    *log.Logger
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(dashboard *analyticsapp.DashboardService, logger *log.Logger) *ExportService {
	return &ExportService{
		dashboard: dashboard,
		logger:    logger.WithPrefix("export"),
	}
}

// Export écrit le rapport du job dans w
func (s *ExportService) Export(job *domain.ExportJob, w io.Writer) error {
	report, err := s.BuildReport(job)
	if err != nil {
		return err
	}
	rw, err := infrastructure.NewReportWriter(job.Format())
	if err != nil {
		return err
	}
	if err := rw.Write(w, report); err != nil {
		return fmt.Errorf("encode %s report: %w", job.Format(), err)
	}
	s.logger.Info("report exported", "file", job.Filename(), "rows", len(report.Rows))
	return nil
}

// BuildReport calcule les lignes du rapport demandé sur la période du job
func (s *ExportService) BuildReport(job *domain.ExportJob) (*domain.Report, error) {
	dr := job.DateRange()

	switch job.View() {
	case domain.ExportViewEcommerce:
		lines, err := s.dashboard.FilteredOrders(dr)
		if err != nil {
			return nil, err
		}
		switch job.Report() {
		case domain.ReportDaily:
			return dailyReport(analyticsdomain.OrderDailySummary(lines)), nil
		case domain.ReportProducts:
			return productReport("", analyticsdomain.OrderTopProducts(lines, s.dashboard.TopN())), nil
		}

	case domain.ExportViewStands:
		lines, err := s.dashboard.FilteredSales(dr)
		if err != nil {
			return nil, err
		}
		switch job.Report() {
		case domain.ReportDaily:
			return dailyReport(analyticsdomain.SaleDailySummary(lines)), nil
		case domain.ReportProducts:
			report := productReport("", nil)
			for _, store := range analyticsdomain.TopProductsByStore(lines, s.dashboard.TopN()) {
				report.Rows = append(report.Rows, productReport(store.Store, store.Products).Rows...)
			}
			return report, nil
		case domain.ReportStores:
			return storeReport(analyticsdomain.StoreSummary(lines)), nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", domain.ErrUnsupportedReport, job.View(), job.Report())
}

func dailyReport(days []analyticsdomain.DailySummary) *domain.Report {
	report := &domain.Report{
		Name:    string(domain.ReportDaily),
		Headers: domain.DailyHeaders(),
		Schema:  new(domain.DailyExportRow),
		Rows:    make([]domain.ExportRow, 0, len(days)),
	}
	for _, d := range days {
		report.Rows = append(report.Rows, domain.DailyExportRow{
			Date:       d.Date.Format(shareddomain.DateLayout),
			Revenue:    d.Revenue.Amount(),
			ItemCount:  d.ItemCount,
			OrderCount: int64(d.OrderCount),
		})
	}
	return report
}

func productReport(store string, products []analyticsdomain.ProductStats) *domain.Report {
	report := &domain.Report{
		Name:    string(domain.ReportProducts),
		Headers: domain.ProductHeaders(),
		Schema:  new(domain.ProductExportRow),
		Rows:    make([]domain.ExportRow, 0, len(products)),
	}
	for i, p := range products {
		report.Rows = append(report.Rows, domain.ProductExportRow{
			Rank:     int64(i + 1),
			Store:    store,
			SKU:      p.SKU,
			Title:    p.Title,
			Quantity: p.Quantity,
			Revenue:  p.Revenue.Amount(),
		})
	}
	return report
}

func storeReport(stores []analyticsdomain.StoreStats) *domain.Report {
	report := &domain.Report{
		Name:    string(domain.ReportStores),
		Headers: domain.StoreHeaders(),
		Schema:  new(domain.StoreExportRow),
		Rows:    make([]domain.ExportRow, 0, len(stores)),
	}
	for _, s := range stores {
		report.Rows = append(report.Rows, domain.StoreExportRow{
			Store:     s.Store,
			Revenue:   s.Revenue.Amount(),
			ItemCount: s.ItemCount,
		})
	}
	return report
}
