package domain

import (
	"slices"
	"testing"
	"time"

	ordersdomain "salesboard/internal/orders/domain"
	"salesboard/internal/shared/domain"
	standsdomain "salesboard/internal/stands/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func orderLine(num string, date time.Time, total int64, title string, qty int64, shipping string) ordersdomain.OrderLine {
	return ordersdomain.NewOrderLine(ordersdomain.OrderLineFields{
		OrderNum:        num,
		Date:            date,
		Total:           total,
		ArticleTitle:    title,
		ArticleQuantity: qty,
		ShippingMethod:  shipping,
	})
}

func saleLine(store string, date time.Time, sku, title string, qty, net int64) standsdomain.SaleLine {
	return standsdomain.NewSaleLine(store, date, sku, title, qty, net, 0, net)
}

func TestOrderKPIsDedupBeforeSum(t *testing.T) {
	// trois lignes d'une même commande, total "15.000,00" → 15 répété sur chaque ligne
	lines := []ordersdomain.OrderLine{
		orderLine("1001", day(1), 15, "Camisa", 1, "Correo"),
		orderLine("1001", day(1), 15, "Pantalon", 2, "Correo"),
		orderLine("1001", day(1), 15, "Medias", 3, "Correo"),
	}
	k := OrderKPIs(lines)
	if k.OrderCount != 1 || k.ItemCount != 6 {
		t.Fatalf("got orders=%d items=%d", k.OrderCount, k.ItemCount)
	}
	if k.RevenueTotal.Amount() != 15 {
		t.Fatalf("revenue must count the order total once, got %d", k.RevenueTotal.Amount())
	}
	if k.RevenueAvg != 15 {
		t.Fatalf("avg = %v", k.RevenueAvg)
	}
}

func TestKPIsAverageIsZeroWithoutOrders(t *testing.T) {
	if k := OrderKPIs(nil); k.OrderCount != 0 || k.RevenueAvg != 0 {
		t.Fatalf("got %+v", k)
	}
	if k := SaleKPIs(nil); k.OrderCount != 0 || k.RevenueAvg != 0 {
		t.Fatalf("got %+v", k)
	}
	lines := []ordersdomain.OrderLine{orderLine("", day(1), 50, "Camisa", 2, "")}
	if k := OrderKPIs(lines); k.OrderCount != 0 || k.RevenueAvg != 0 || k.ItemCount != 2 {
		t.Fatalf("line without order number: got %+v", k)
	}
}

func TestOrderDailySummary(t *testing.T) {
	lines := []ordersdomain.OrderLine{
		orderLine("2", day(3), 40, "B", 1, "Moto"),
		orderLine("1", day(1), 10, "A", 2, "Correo"),
		orderLine("1", day(1), 10, "C", 1, "Correo"),
		orderLine("3", day(3), 5, "A", 4, "Correo"),
	}
	got := OrderDailySummary(lines)
	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}
	if !got[0].Date.Equal(day(1)) || got[0].Revenue.Amount() != 10 || got[0].ItemCount != 3 || got[0].OrderCount != 1 {
		t.Errorf("day 1: %+v", got[0])
	}
	if !got[1].Date.Equal(day(3)) || got[1].Revenue.Amount() != 45 || got[1].ItemCount != 5 || got[1].OrderCount != 2 {
		t.Errorf("day 3: %+v", got[1])
	}
}

func TestDailySummaryCoversDistinctDatesInOrder(t *testing.T) {
	lines := []standsdomain.SaleLine{
		saleLine("A", day(5), "1", "x", 1, 10),
		saleLine("B", day(2), "1", "x", 1, 10),
		saleLine("A", day(5), "2", "y", 1, 10),
		saleLine("A", day(9), "2", "y", 1, 10),
	}
	got := SaleDailySummary(lines)
	dates := make([]time.Time, 0, len(got))
	for i, d := range got {
		if i > 0 && d.Date.Before(got[i-1].Date) {
			t.Fatalf("dates not sorted: %v", got)
		}
		dates = append(dates, d.Date)
	}
	want := []time.Time{day(2), day(5), day(9)}
	if !slices.EqualFunc(dates, want, time.Time.Equal) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
}

func TestSaleTopProductsIsStableAndTruncated(t *testing.T) {
	lines := []standsdomain.SaleLine{
		saleLine("A", day(1), "1", "Camisa", 2, 100),
		saleLine("A", day(1), "2", "Gorra", 5, 50),
		saleLine("B", day(2), "3", "Medias", 2, 30),
		saleLine("B", day(2), "1", "Camisa", 1, 50),
		saleLine("B", day(2), "4", "Buzo", 3, 70),
	}
	top3 := SaleTopProducts(lines, 3)
	titles := func(ps []ProductStats) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Title
		}
		return out
	}
	if got := titles(top3); !slices.Equal(got, []string{"Gorra", "Camisa", "Buzo"}) {
		t.Fatalf("top 3 = %v", got)
	}
	if top3[1].Quantity != 3 || top3[1].Revenue.Amount() != 150 {
		t.Errorf("Camisa aggregate = %+v", top3[1])
	}

	for n := 0; n < 6; n++ {
		a, b := SaleTopProducts(lines, n), SaleTopProducts(lines, n+1)
		if len(a) > n {
			t.Fatalf("top(%d) returned %d rows", n, len(a))
		}
		if !slices.Equal(titles(a), titles(b)[:len(a)]) {
			t.Fatalf("top(%d) is not a prefix of top(%d)", n, n+1)
		}
	}

	// égalité Medias/Camisa à 2 dans l'ordre de première apparition
	tied := SaleTopProducts(lines[:3], 3)
	if got := titles(tied); !slices.Equal(got, []string{"Gorra", "Camisa", "Medias"}) {
		t.Fatalf("ties must keep first-seen order, got %v", got)
	}
}

func TestSaleKPIsCountsStoreDays(t *testing.T) {
	lines := []standsdomain.SaleLine{
		saleLine("A", day(1), "1", "x", 1, 100),
		saleLine("A", day(1), "2", "y", 2, 100),
		saleLine("B", day(1), "1", "x", 1, 100),
		saleLine("A", day(2), "1", "x", 1, 100),
	}
	k := SaleKPIs(lines)
	if k.OrderCount != 3 || k.ItemCount != 5 || k.RevenueTotal.Amount() != 400 {
		t.Fatalf("got %+v", k)
	}
}

func TestStoreSummaryAndSeries(t *testing.T) {
	lines := []standsdomain.SaleLine{
		saleLine("UNICENTER", day(2), "1", "x", 1, 100),
		saleLine("ALTOPALERMO", day(1), "1", "x", 2, 300),
		saleLine("UNICENTER", day(1), "2", "y", 1, 50),
	}
	summary := StoreSummary(lines)
	if len(summary) != 2 || summary[0].Store != "ALTOPALERMO" || summary[1].Revenue.Amount() != 150 {
		t.Fatalf("summary = %+v", summary)
	}
	totals := StoreTotals(lines)
	if totals["UNICENTER"].ItemCount != 2 {
		t.Fatalf("totals = %+v", totals)
	}

	series := StoreSeries(lines)
	if len(series) != 3 {
		t.Fatalf("series = %+v", series)
	}
	if series[0].Store != "ALTOPALERMO" || !series[0].Date.Equal(day(1)) || !series[2].Date.Equal(day(2)) {
		t.Fatalf("series order = %+v", series)
	}

	byStore := TopProductsByStore(lines, 1)
	if len(byStore) != 2 || byStore[0].Store != "UNICENTER" || len(byStore[0].Products) != 1 {
		t.Fatalf("by store = %+v", byStore)
	}
}

func TestShippingDistributionCountsOrders(t *testing.T) {
	lines := []ordersdomain.OrderLine{
		orderLine("1", day(1), 10, "A", 1, "Correo"),
		orderLine("1", day(1), 10, "B", 1, "Correo"),
		orderLine("2", day(1), 10, "A", 1, "Moto"),
		orderLine("3", day(1), 10, "A", 1, "Moto"),
	}
	got := ShippingDistribution(lines)
	if len(got) != 2 || got[0].Method != "Moto" || got[0].OrderCount != 2 || got[1].OrderCount != 1 {
		t.Fatalf("got %+v", got)
	}
	if got[1].Percentage < 33.3 || got[1].Percentage > 33.4 {
		t.Fatalf("percentage = %v", got[1].Percentage)
	}
}

func TestFilterByDate(t *testing.T) {
	lines := []standsdomain.SaleLine{
		saleLine("A", day(1), "1", "x", 1, 1),
		saleLine("A", time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC), "2", "x", 1, 1),
		saleLine("A", time.Time{}, "3", "x", 1, 1),
		saleLine("A", day(3), "4", "x", 1, 1),
		saleLine("A", day(2), "5", "x", 1, 1),
	}

	single := FilterByDate(lines, domain.NewDateRange(day(2), day(2)))
	if len(single) != 2 || single[0].SKU() != "2" || single[1].SKU() != "5" {
		t.Fatalf("start == end must keep exactly that day in original order, got %d rows", len(single))
	}
	if got := FilterByDate(lines, domain.NewDateRange(day(3), day(1))); len(got) != 0 {
		t.Fatalf("start > end must give an empty result, got %d rows", len(got))
	}
	all := FilterByDate(lines, domain.NewDateRange(day(1), day(3)))
	if len(all) != 4 {
		t.Fatalf("null dates must be excluded, got %d rows", len(all))
	}
	if lines[2].SKU() != "3" {
		t.Fatal("input must not be modified")
	}

	sorted := SortByDate(all)
	if sorted[0].SKU() != "1" || sorted[1].SKU() != "2" || sorted[2].SKU() != "5" || sorted[3].SKU() != "4" {
		t.Fatalf("unexpected sort order")
	}
}
