package service

import (
	"context"

	"water-dashboard/internal/catalog"
	"water-dashboard/internal/models"
	"water-dashboard/internal/util"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DashboardSummary is the top of the home page
type DashboardSummary struct {
	Stats               []models.StatCard   `json:"stats"`
	Chart               []models.ChartPoint `json:"chart"`
	UnreadNotifications int                 `json:"unread_notifications"`
}

// Summary builds the stat cards and the chart. Order count and income are
// the sample baselines plus what the ledger holds.
func (s *OrderService) Summary(ctx context.Context) DashboardSummary {
	_, span := util.StartSpan(ctx, "OrderService.Summary")
	defer span.End()

	s.mu.Lock()
	orders := s.ledger.Orders()
	s.mu.Unlock()

	income := catalog.SampleIncomeTotal
	for _, o := range orders {
		income = income.Add(o.TotalPrice)
	}

	return DashboardSummary{
		Stats: []models.StatCard{
			{Title: "Clientes nuevos", Value: formatAmount(decimal.NewFromInt(catalog.SampleNewClients)), Trend: catalog.SampleTrend},
			{Title: "Préstamos activos", Value: formatAmount(decimal.NewFromInt(catalog.SampleActiveLoans)), Trend: catalog.SampleTrend},
			{Title: "Pedidos totales", Value: formatAmount(decimal.NewFromInt(int64(catalog.SampleOrdersTotal + len(orders)))), Trend: catalog.SampleTrend},
			{Title: "Ingresos totales", Value: formatAmount(income), Unit: "Bs", Trend: catalog.SampleTrend},
		},
		Chart:               catalog.SampleChart(),
		UnreadNotifications: s.inbox.UnreadCount(),
	}
}

// Clients lists the catalog clients with their most recent order
func (s *OrderService) Clients(ctx context.Context) []models.ClientSummary {
	_, span := util.StartSpan(ctx, "OrderService.Clients")
	defer span.End()

	s.mu.Lock()
	orders := s.ledger.Orders()
	s.mu.Unlock()

	latest := make(map[string]models.OrderRecord)
	counts := make(map[string]int)
	for _, o := range orders {
		if _, ok := latest[o.ClientName]; !ok {
			latest[o.ClientName] = o
		}
		counts[o.ClientName]++
	}

	clients := s.catalog.ListClients()
	summaries := make([]models.ClientSummary, 0, len(clients))
	for _, c := range clients {
		activity := catalog.SampleActivity()
		if o, ok := latest[c.Name]; ok {
			activity = models.ClientActivity{Date: o.PlacedAt, Amount: o.TotalPrice}
		}
		summaries = append(summaries, models.ClientSummary{
			Name:         c.Name,
			FirstName:    c.FirstName(),
			LastName:     c.LastName(),
			ImageURL:     c.ImageURL,
			LastActivity: activity,
			OrderCount:   counts[c.Name],
		})
	}
	return summaries
}

// formatAmount renders d with comma thousand separators, two decimals when
// it is not whole: 1236 -> "1,236", 1828.5 -> "1,828.50".
func formatAmount(d decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	if d.IsInteger() {
		return p.Sprint(number.Decimal(d.IntPart()))
	}
	return p.Sprint(number.Decimal(d.Round(2).InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
