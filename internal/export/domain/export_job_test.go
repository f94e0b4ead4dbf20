package domain

import (
	"errors"
	"testing"
	"time"

	"salesboard/internal/shared/domain"
)

func march() domain.DateRange {
	return domain.NewDateRange(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)
}

func TestNewExportJobValidation(t *testing.T) {
	now := time.Now()
	cases := []struct {
		view, report, format string
		want                 error
	}{
		{"stands", "stores", "xlsx", nil},
		{"Ecommerce", "DAILY", "CSV", nil},
		{"ecommerce", "products", "parquet", nil},
		{"ecommerce", "stores", "csv", ErrUnsupportedReport},
		{"pos", "daily", "csv", ErrInvalidView},
		{"stands", "weekly", "csv", ErrInvalidReport},
		{"stands", "daily", "pdf", ErrInvalidFormat},
	}
	for _, c := range cases {
		_, err := NewExportJob(c.view, c.report, c.format, march(), now)
		if c.want == nil && err != nil {
			t.Errorf("%s/%s/%s: unexpected error %v", c.view, c.report, c.format, err)
		}
		if c.want != nil && !errors.Is(err, c.want) {
			t.Errorf("%s/%s/%s: got %v, want %v", c.view, c.report, c.format, err, c.want)
		}
	}
}

func TestExportJobFilename(t *testing.T) {
	job, err := NewExportJob("stands", "daily", "xlsx", march(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if got := job.Filename(); got != "salesboard_stands_daily_2024-03-01_2024-03-31.xlsx" {
		t.Fatalf("filename = %q", got)
	}
	if job.Format().ContentType() != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type = %q", job.Format().ContentType())
	}
}

func TestExportRowsMatchHeaders(t *testing.T) {
	rows := map[string]struct {
		headers []string
		row     ExportRow
	}{
		"daily":    {DailyHeaders(), DailyExportRow{Date: "2024-03-01", Revenue: 15, ItemCount: 3, OrderCount: 1}},
		"products": {ProductHeaders(), ProductExportRow{Rank: 1, SKU: "10", Title: "Camisa", Quantity: 2}},
		"stores":   {StoreHeaders(), StoreExportRow{Store: "UNICENTER", Revenue: 1000, ItemCount: 2}},
	}
	for name, r := range rows {
		if len(r.row.ToCSVRow()) != len(r.headers) || len(r.row.Values()) != len(r.headers) {
			t.Errorf("%s: row width does not match headers", name)
		}
	}
}

// BenchmarkDailyExportRow_ToCSVRow mesure la conversion d'une ligne en CSV
func BenchmarkDailyExportRow_ToCSVRow(b *testing.B) {
	row := DailyExportRow{Date: "2024-03-01", Revenue: 1500000, ItemCount: 42, OrderCount: 12}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = row.ToCSVRow()
	}
}
