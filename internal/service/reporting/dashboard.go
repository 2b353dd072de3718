package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// DashboardRequest holds the raw dashboard parameters. Both are optional.
type DashboardRequest struct {
	TrendPeriod string
	BuyerMobile string
}

// DashboardSummary composes today's expenses and sales, month-to-date sales,
// the buyer ranking, the sales trend and, when requested, one buyer's
// drill-down. Empty results yield zeros and empty lists; read errors abort.
func (s *Service) DashboardSummary(ctx context.Context, req DashboardRequest) (summary *models.DashboardSummary, err error) {
	defer func(begin time.Time) { s.observe("dashboard", begin, err) }(time.Now())

	reference := s.now()
	today := DayRange(reference)
	month := MonthToDate(today)
	window := NewTrendWindow(NormalizePeriod(req.TrendPeriod), today)
	buyerMobile := models.NormalizeMobile(req.BuyerMobile)

	chara, err := s.store.FindCharaPurchases(ctx, today.Start, today.End)
	if err != nil {
		return nil, fmt.Errorf("load chara purchases: %w", err)
	}
	charaTotal := decimal.Zero
	for _, p := range chara {
		charaTotal = charaTotal.Add(p.TotalAmount)
	}

	purchaseQuery := Query{Type: models.TransactionPurchase, Range: today}
	purchases, err := s.store.FindMilkTransactions(ctx, purchaseQuery.Filter())
	if err != nil {
		return nil, fmt.Errorf("load milk purchases: %w", err)
	}
	milkPurchaseTotal := purchaseQuery.Total(purchases).TotalAmount

	// One read covers today, the month so far and the whole trend window.
	salesRange := Range{Start: month.Start, End: today.End}
	if window.Start.Before(salesRange.Start) {
		salesRange.Start = window.Start
	}
	sales, err := s.store.FindMilkTransactions(ctx, Query{Type: models.TransactionSale, Range: salesRange}.Filter())
	if err != nil {
		return nil, fmt.Errorf("load milk sales: %w", err)
	}

	daily := Query{Type: models.TransactionSale, Range: today}.Total(sales)
	monthly := Query{Type: models.TransactionSale, Range: month}.Total(sales)

	ranking, err := s.buyerRanking(ctx, sales, month)
	if err != nil {
		return nil, err
	}

	summary = &models.DashboardSummary{
		GeneratedAt:   reference.UTC(),
		DailyExpenses: charaTotal.Add(milkPurchaseTotal),
		DailyExpenseBreakdown: models.ExpenseBreakdown{
			CharaPurchases: charaTotal,
			MilkPurchases:  milkPurchaseTotal,
		},
		DailySales:       daily.Stat(),
		MonthlySales:     monthly.Stat(),
		UserConsumptions: ranking,
		SalesTrend:       trendFor(sales, window, ""),
		TrendMetadata:    window.Metadata(),
	}

	if buyerMobile != "" {
		selected, err := s.selectedBuyer(ctx, sales, buyerMobile, today, month, window)
		if err != nil {
			return nil, err
		}
		summary.SelectedBuyer = selected
	}

	s.logger.Debug("dashboard summary composed",
		zap.String("period", string(window.Period)),
		zap.Int("buyers", len(ranking)),
		zap.Bool("drill_down", buyerMobile != ""))

	return summary, nil
}

// buyerRanking groups month-to-date sales by normalized buyer phone, sorted by
// quantity then amount (both descending) then mobile (ascending). Buyers
// without a consumer profile are kept as "Unknown Buyer".
func (s *Service) buyerRanking(ctx context.Context, sales []models.MilkTransaction, month Range) ([]models.BuyerConsumption, error) {
	filter := Query{Type: models.TransactionSale, Range: month}.Filter()
	groups := make(map[string]Aggregate)
	for _, tx := range sales {
		if !filter.Matches(tx) {
			continue
		}
		phone := tx.NormalizedBuyerPhone()
		if phone == "" {
			continue
		}
		groups[phone] = groups[phone].add(tx)
	}

	ranking := make([]models.BuyerConsumption, 0, len(groups))
	if len(groups) == 0 {
		return ranking, nil
	}

	mobiles := make([]string, 0, len(groups))
	for phone := range groups {
		mobiles = append(mobiles, phone)
	}
	sort.Strings(mobiles)

	users, err := s.store.FindUsersByMobiles(ctx, mobiles)
	if err != nil {
		return nil, fmt.Errorf("load buyer profiles: %w", err)
	}
	directory := models.NewBuyerDirectory(consumersOnly(users))

	for _, phone := range mobiles {
		agg := groups[phone]
		buyer := directory.Resolve(phone)
		ranking = append(ranking, models.BuyerConsumption{
			UserID:        buyer.UserID(),
			Name:          buyer.DisplayName(),
			Mobile:        phone,
			TotalQuantity: agg.TotalQuantity,
			TotalAmount:   agg.TotalAmount,
			AverageRate:   agg.AverageRate(),
		})
	}

	SortBuyerConsumptions(ranking)
	return ranking, nil
}

// SortBuyerConsumptions orders by total quantity desc, total amount desc,
// then mobile asc so equal buyers always come out in the same order.
func SortBuyerConsumptions(rows []models.BuyerConsumption) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := a.TotalQuantity.Cmp(b.TotalQuantity); c != 0 {
			return c > 0
		}
		if c := a.TotalAmount.Cmp(b.TotalAmount); c != 0 {
			return c > 0
		}
		return a.Mobile < b.Mobile
	})
}

func (s *Service) selectedBuyer(ctx context.Context, sales []models.MilkTransaction, mobile string, today, month Range, window TrendWindow) (*models.SelectedBuyer, error) {
	user, err := s.store.FindUserByMobile(ctx, mobile)
	if err != nil {
		return nil, fmt.Errorf("load buyer %s: %w", mobile, err)
	}

	var users []models.User
	if user != nil {
		users = consumersOnly([]models.User{*user})
	}
	buyer := models.NewBuyerDirectory(users).Resolve(mobile)

	daily := Query{Type: models.TransactionSale, Range: today, BuyerMobile: mobile}.Total(sales)
	monthly := Query{Type: models.TransactionSale, Range: month, BuyerMobile: mobile}.Total(sales)

	return &models.SelectedBuyer{
		UserID:       buyer.UserID(),
		Name:         buyer.DisplayName(),
		Mobile:       mobile,
		DailySales:   daily.Stat(),
		MonthlySales: monthly.Stat(),
		Trend:        trendFor(sales, window, mobile),
		AverageRate:  monthly.AverageRate(),
	}, nil
}

func consumersOnly(users []models.User) []models.User {
	out := users[:0:0]
	for _, u := range users {
		if u.Role == models.RoleConsumer {
			out = append(out, u)
		}
	}
	return out
}
