package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// totalKey groups every matching transaction into one bucket.
const totalKey = "_total"

// Aggregate is the sum over one group of transactions.
type Aggregate struct {
	TotalQuantity    decimal.Decimal
	TotalAmount      decimal.Decimal
	TransactionCount int64
}

func (a Aggregate) add(tx models.MilkTransaction) Aggregate {
	return Aggregate{
		TotalQuantity:    a.TotalQuantity.Add(tx.Quantity),
		TotalAmount:      a.TotalAmount.Add(tx.TotalAmount),
		TransactionCount: a.TransactionCount + 1,
	}
}

// Stat converts the aggregate into its response form.
func (a Aggregate) Stat() models.SalesStat {
	return models.SalesStat{
		Quantity:     a.TotalQuantity,
		Amount:       a.TotalAmount,
		Transactions: a.TransactionCount,
	}
}

// AverageRate is amount per liter, or zero when no quantity was sold.
func (a Aggregate) AverageRate() decimal.Decimal {
	return averageRate(a.TotalAmount, a.TotalQuantity)
}

func averageRate(amount, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return amount.DivRound(quantity, 2)
}

// Query describes one aggregation over milk transactions: which type, which
// inclusive date range, an optional buyer, and how to bucket the results.
// An empty Unit sums everything into a single total.
type Query struct {
	Type        models.TransactionType
	Range       Range
	BuyerMobile string
	Unit        Unit
}

// Filter is the storage-facing part of the query.
func (q Query) Filter() models.TransactionFilter {
	return models.TransactionFilter{
		Type:        q.Type,
		From:        q.Range.Start,
		To:          q.Range.End,
		BuyerMobile: models.NormalizeMobile(q.BuyerMobile),
	}
}

// GroupKey is the bucket tx falls into.
func (q Query) GroupKey(tx models.MilkTransaction) string {
	if q.Unit == "" {
		return totalKey
	}
	return q.Unit.Key(tx.Date)
}

// Aggregate groups the matching transactions by GroupKey. Transactions that
// do not satisfy the filter are ignored, so txs may be a superset.
func (q Query) Aggregate(txs []models.MilkTransaction) map[string]Aggregate {
	filter := q.Filter()
	groups := make(map[string]Aggregate)
	for _, tx := range txs {
		if !filter.Matches(tx) {
			continue
		}
		key := q.GroupKey(tx)
		groups[key] = groups[key].add(tx)
	}
	return groups
}

// Total sums every matching transaction regardless of Unit.
func (q Query) Total(txs []models.MilkTransaction) Aggregate {
	q.Unit = ""
	return q.Aggregate(txs)[totalKey]
}
