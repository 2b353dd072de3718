package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// Profit & loss periods. Unknown input falls back to monthly.
const (
	ProfitLossDaily   = "daily"
	ProfitLossMonthly = "monthly"
	ProfitLossYearly  = "yearly"
)

// NormalizeProfitLossPeriod maps raw input onto daily, monthly or yearly.
func NormalizeProfitLossPeriod(raw string) string {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case ProfitLossDaily, ProfitLossMonthly, ProfitLossYearly:
		return p
	default:
		return ProfitLossMonthly
	}
}

func profitLossRange(period string, now time.Time) Range {
	switch period {
	case ProfitLossDaily:
		return DayRange(now)
	case ProfitLossYearly:
		start := time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Range{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Millisecond)}
	default:
		return ResolveMonth(0, 0, now).Range
	}
}

// ProfitLoss totals revenue (milk and animal sales) against expenses (milk,
// animal and chara purchases) for the current day, month or year.
func (s *Service) ProfitLoss(ctx context.Context, rawPeriod string) (report *models.ProfitLossReport, err error) {
	defer func(begin time.Time) { s.observe("profit_loss", begin, err) }(time.Now())

	period := NormalizeProfitLossPeriod(rawPeriod)
	r := profitLossRange(period, s.now())

	milk, err := s.store.FindMilkTransactions(ctx, Query{Range: r}.Filter())
	if err != nil {
		return nil, fmt.Errorf("load milk transactions: %w", err)
	}
	animals, err := s.store.FindAnimalTransactions(ctx, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("load animal transactions: %w", err)
	}
	chara, err := s.store.FindCharaPurchases(ctx, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("load chara purchases: %w", err)
	}

	details := models.ProfitLossDetails{
		MilkSales:     Query{Type: models.TransactionSale, Range: r}.Total(milk).TotalAmount,
		MilkPurchases: Query{Type: models.TransactionPurchase, Range: r}.Total(milk).TotalAmount,
		OtherExpenses: decimal.Zero,
	}
	for _, a := range animals {
		if !r.Contains(a.Date) {
			continue
		}
		switch a.Type {
		case models.TransactionSale:
			details.AnimalSales = details.AnimalSales.Add(a.Price)
		case models.TransactionPurchase:
			details.AnimalPurchases = details.AnimalPurchases.Add(a.Price)
		}
	}
	for _, c := range chara {
		if r.Contains(c.Date) {
			details.CharaPurchases = details.CharaPurchases.Add(c.TotalAmount)
		}
	}

	revenue := details.MilkSales.Add(details.AnimalSales)
	expenses := decimal.Sum(details.MilkPurchases, details.AnimalPurchases, details.CharaPurchases, details.OtherExpenses)
	net := revenue.Sub(expenses)

	return &models.ProfitLossReport{
		Period:        period,
		StartDate:     r.Start.Format(dateLayout),
		EndDate:       r.End.Format(dateLayout),
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		Profit:        decimal.Max(net, decimal.Zero),
		Loss:          decimal.Max(net.Neg(), decimal.Zero),
		Details:       details,
	}, nil
}
