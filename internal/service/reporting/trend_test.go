package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

func TestAssembleTrendFillsGaps(t *testing.T) {
	w := NewTrendWindow(PeriodWeekly, DayRange(day(2024, 3, 7, 12)))
	sparse := map[string]Aggregate{
		"2024-03-04": {TotalQuantity: dec("4"), TotalAmount: dec("200"), TransactionCount: 1},
	}

	series := AssembleTrend(sparse, w)

	require.Len(t, series, 7)
	zeros := 0
	for _, b := range series {
		if b.TotalAmount.IsZero() && b.TotalQuantity.IsZero() {
			zeros++
		}
	}
	assert.Equal(t, 6, zeros)
	assert.Equal(t, "2024-03-04", series[3].Date)
	assert.Equal(t, "4 Mar", series[3].Label)
	assert.Equal(t, "200", series[3].TotalAmount.String())
}

func TestAssembleTrendOrderedAndUnique(t *testing.T) {
	for _, period := range []Period{PeriodWeekly, PeriodMonthly, PeriodYearly} {
		t.Run(string(period), func(t *testing.T) {
			w := NewTrendWindow(period, DayRange(day(2024, 3, 7, 12)))
			series := AssembleTrend(nil, w)

			require.Len(t, series, w.Length)
			seen := make(map[string]bool)
			for i, b := range series {
				assert.False(t, seen[b.Date], "duplicate bucket %s", b.Date)
				seen[b.Date] = true
				if i > 0 {
					assert.Less(t, series[i-1].Date, b.Date)
				}
			}
			assert.Equal(t, w.Metadata().EndDate, series[len(series)-1].Date)
		})
	}
}

func TestTrendForYearlyCrossesYearBoundary(t *testing.T) {
	w := NewTrendWindow(PeriodYearly, DayRange(day(2024, 1, 15, 12)))
	txs := []models.MilkTransaction{
		sale(day(2023, 2, 1, 6), "111", 1, 50),
		sale(day(2023, 12, 31, 23), "111", 2, 50),
		sale(day(2024, 1, 10, 6), "111", 3, 50),
	}

	series := trendFor(txs, w, "")

	require.Len(t, series, 12)
	assert.Equal(t, "2023-02", series[0].Date)
	assert.Equal(t, "Feb", series[0].Label)
	assert.Equal(t, "50", series[0].TotalAmount.String())
	assert.Equal(t, "2023-12", series[10].Date)
	assert.Equal(t, "100", series[10].TotalAmount.String())
	assert.Equal(t, "2024-01", series[11].Date)
	assert.Equal(t, "3", series[11].TotalQuantity.String())
}
