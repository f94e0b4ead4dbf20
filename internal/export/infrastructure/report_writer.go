package infrastructure

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"github.com/xuri/excelize/v2"

	"salesboard/internal/export/domain"
)

// ReportWriter encode un rapport dans un format donné
type ReportWriter interface {
	Write(w io.Writer, report *domain.Report) error
}

// NewReportWriter retourne l'encodeur du format
func NewReportWriter(format domain.ExportFormat) (ReportWriter, error) {
	switch format {
	case domain.ExportFormatCSV:
		return CSVReportWriter{}, nil
	case domain.ExportFormatParquet:
		return ParquetReportWriter{}, nil
	case domain.ExportFormatXLSX:
		return XLSXReportWriter{}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
}

// CSVReportWriter encode en CSV (séparateur virgule, en-tête en première ligne)
type CSVReportWriter struct{}

// Write écrit le rapport en CSV
func (CSVReportWriter) Write(w io.Writer, report *domain.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range report.Rows {
		if err := cw.Write(row.ToCSVRow()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParquetReportWriter encode en Parquet (compression Snappy), schéma déduit du type de ligne
type ParquetReportWriter struct{}

// Write écrit le rapport en Parquet
func (ParquetReportWriter) Write(w io.Writer, report *domain.Report) error {
	pw, err := writer.NewParquetWriterFromWriter(w, report.Schema, 1)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range report.Rows {
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalize parquet file: %w", err)
	}
	return nil
}

// XLSXReportWriter encode en classeur Excel (une feuille nommée d'après le rapport)
type XLSXReportWriter struct{}

// Write écrit le rapport en XLSX
func (XLSXReportWriter) Write(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if report.Name != "" {
		if err := f.SetSheetName(sheet, report.Name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		sheet = report.Name
	}

	head := make([]interface{}, len(report.Headers))
	for i, h := range report.Headers {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, row := range report.Rows {
		values := row.Values()
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}
