package reporting

import (
	"strings"
	"time"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Range is a closed [Start, End] interval at millisecond precision.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// DayRange returns the UTC calendar day containing reference.
func DayRange(reference time.Time) Range {
	ref := reference.UTC()
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Millisecond)}
}

// MonthToDate returns the range from the first of today's month to the end of today.
func MonthToDate(today Range) Range {
	return Range{Start: monthStart(today.Start), End: today.End}
}

// MonthRange is a whole UTC calendar month.
type MonthRange struct {
	Year  int
	Month time.Month
	Range
}

// ResolveMonth builds the range for year/month. A non-positive year or a month
// outside [1,12] falls back to the corresponding component of now (UTC).
func ResolveMonth(year, month int, now time.Time) MonthRange {
	now = now.UTC()
	if year <= 0 {
		year = now.Year()
	}
	m := time.Month(month)
	if month < 1 || month > 12 {
		m = now.Month()
	}
	start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	return MonthRange{
		Year:  year,
		Month: m,
		Range: Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Millisecond)},
	}
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Period selects the trend window.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// NormalizePeriod maps user input onto a known period. Anything unrecognized,
// including the empty string, becomes PeriodWeekly.
func NormalizePeriod(raw string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return p
	default:
		return PeriodWeekly
	}
}

// Label is the display name of the period.
func (p Period) Label() string {
	switch p {
	case PeriodMonthly:
		return "Monthly"
	case PeriodYearly:
		return "Yearly"
	default:
		return "Weekly"
	}
}

// Unit is the size of one trend bucket.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitMonth Unit = "month"
)

// Key is the bucket key of t: YYYY-MM-DD for days, YYYY-MM for months.
func (u Unit) Key(t time.Time) string {
	if u == UnitMonth {
		return t.UTC().Format(monthLayout)
	}
	return t.UTC().Format(dateLayout)
}

// Label is the chart label of t: "2 Jan" for days, "Jan" for months.
func (u Unit) Label(t time.Time) string {
	if u == UnitMonth {
		return t.UTC().Format("Jan")
	}
	return t.UTC().Format("2 Jan")
}

// Step moves t forward by n units.
func (u Unit) Step(t time.Time, n int) time.Time {
	if u == UnitMonth {
		return t.AddDate(0, n, 0)
	}
	return t.AddDate(0, 0, n)
}

// TrendWindow is a fixed-length run of buckets ending today.
type TrendWindow struct {
	Period Period
	Unit   Unit
	Length int
	Start  time.Time
	End    time.Time
}

// NewTrendWindow derives the window for period ending with today. The period
// is normalized first, so unknown values yield the weekly window.
func NewTrendWindow(period Period, today Range) TrendWindow {
	period = NormalizePeriod(string(period))
	w := TrendWindow{Period: period, Unit: UnitDay, End: today.End}
	switch period {
	case PeriodMonthly:
		w.Length = 30
		w.Start = today.Start.AddDate(0, 0, -29)
	case PeriodYearly:
		w.Unit = UnitMonth
		w.Length = 12
		w.Start = monthStart(today.End).AddDate(0, -11, 0)
	default:
		w.Length = 7
		w.Start = today.Start.AddDate(0, 0, -6)
	}
	return w
}

// Range is the inclusive span the window covers.
func (w TrendWindow) Range() Range {
	return Range{Start: w.Start, End: w.End}
}

// Metadata describes the window for API consumers.
func (w TrendWindow) Metadata() models.TrendMetadata {
	return models.TrendMetadata{
		Period:      string(w.Period),
		PeriodLabel: w.Period.Label(),
		Unit:        string(w.Unit),
		Length:      w.Length,
		StartDate:   w.Unit.Key(w.Start),
		EndDate:     w.Unit.Key(w.End),
	}
}
