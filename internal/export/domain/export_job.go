package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"salesboard/internal/shared/domain"
)

var (
	ErrInvalidFormat     = errors.New("invalid export format")
	ErrInvalidReport     = errors.New("invalid export report")
	ErrInvalidView       = errors.New("invalid export view")
	ErrUnsupportedReport = errors.New("report not available for this view")
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatParquet ExportFormat = "parquet"
	ExportFormatXLSX    ExportFormat = "xlsx"
)

// Extension retourne l'extension de fichier du format
func (f ExportFormat) Extension() string {
	return string(f)
}

// ContentType retourne le type MIME du format
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatCSV:
		return "text/csv"
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// ExportView représente la source exportée
type ExportView string

const (
	ExportViewEcommerce ExportView = "ecommerce"
	ExportViewStands    ExportView = "stands"
)

// ReportKind représente le rapport exporté
type ReportKind string

const (
	ReportDaily    ReportKind = "daily"
	ReportProducts ReportKind = "products"
	ReportStores   ReportKind = "stores"
)

// ExportJob représente une demande d'export d'un rapport sur une période
type ExportJob struct {
	view      ExportView
	report    ReportKind
	format    ExportFormat
	dateRange domain.DateRange
	createdAt time.Time
}

// NewExportJob crée un nouveau job d'export avec validation.
// Les valeurs sont insensibles à la casse; le rapport "stores" n'existe que pour les stands.
func NewExportJob(
	view string,
	report string,
	format string,
	dateRange domain.DateRange,
	now time.Time,
) (*ExportJob, error) {
	v := ExportView(strings.ToLower(strings.TrimSpace(view)))
	r := ReportKind(strings.ToLower(strings.TrimSpace(report)))
	f := ExportFormat(strings.ToLower(strings.TrimSpace(format)))

	switch v {
	case ExportViewEcommerce, ExportViewStands:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
	switch r {
	case ReportDaily, ReportProducts, ReportStores:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidReport, report)
	}
	switch f {
	case ExportFormatCSV, ExportFormatParquet, ExportFormatXLSX:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	if r == ReportStores && v != ExportViewStands {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedReport, v, r)
	}

	return &ExportJob{
		view:      v,
		report:    r,
		format:    f,
		dateRange: dateRange,
		createdAt: now,
	}, nil
}

// View retourne la source exportée
func (ej *ExportJob) View() ExportView {
	return ej.view
}

// Report retourne le rapport exporté
func (ej *ExportJob) Report() ReportKind {
	return ej.report
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// DateRange retourne la période d'export
func (ej *ExportJob) DateRange() domain.DateRange {
	return ej.dateRange
}

// CreatedAt retourne la date de création
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// Filename retourne le nom du fichier téléchargé
// ex: salesboard_stands_daily_2024-03-01_2024-03-31.xlsx
func (ej *ExportJob) Filename() string {
	return fmt.Sprintf("salesboard_%s_%s_%s_%s.%s",
		ej.view, ej.report,
		ej.dateRange.Start().Format(domain.DateLayout),
		ej.dateRange.End().Format(domain.DateLayout),
		ej.format.Extension(),
	)
}
