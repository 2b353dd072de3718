package reporting

import (
	"github.com/mamadbah2/dairy/internal/domain/models"
)

// AssembleTrend turns a sparse bucket map into a dense, chronologically
// ordered series of exactly w.Length entries. Missing buckets are zero-filled.
func AssembleTrend(sparse map[string]Aggregate, w TrendWindow) []models.TrendBucket {
	series := make([]models.TrendBucket, 0, w.Length)
	for i := 0; i < w.Length; i++ {
		current := w.Unit.Step(w.Start, i)
		key := w.Unit.Key(current)
		agg := sparse[key]
		series = append(series, models.TrendBucket{
			Date:          key,
			Label:         w.Unit.Label(current),
			TotalQuantity: agg.TotalQuantity,
			TotalAmount:   agg.TotalAmount,
		})
	}
	return series
}

// trendFor aggregates txs into w's buckets and assembles the dense series.
func trendFor(txs []models.MilkTransaction, w TrendWindow, buyerMobile string) []models.TrendBucket {
	q := Query{
		Type:        models.TransactionSale,
		Range:       w.Range(),
		BuyerMobile: buyerMobile,
		Unit:        w.Unit,
	}
	return AssembleTrend(q.Aggregate(txs), w)
}
