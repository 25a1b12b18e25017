package core

import (
	"sort"
	"time"
)

type (
	// ChartPoint is one calendar bucket of a trends series.
	ChartPoint struct {
		Label    string `json:"date"`
		Income   Money  `json:"income"`
		Expenses Money  `json:"expenses"`
	}

	// ChartSeries is a chronologically ordered sequence of buckets. Buckets
	// with no contributing transaction are not synthesized, so consumers must
	// not assume uniform spacing.
	ChartSeries []ChartPoint
)

// bucket accumulates one label's sums together with the real bucket start
// date. Sorting uses that date, not the display label: a truncated label like
// "Jan 5" loses the year, and two years can round-trip to the same string.
type bucket struct {
	start    time.Time
	income   Money
	expenses Money
}

// BuildChartSeries groups transactions into calendar buckets and sums
// income/expenses per bucket. The window selects granularity and label
// format only; callers filter the input to the window's range beforehand
// (the repository range query does this on the read path).
//
// Pure and total: empty input yields an empty series, and input order never
// affects output order.
func BuildChartSeries(txs []Transaction, w Window) ChartSeries {
	buckets := make(map[string]*bucket)
	for _, t := range txs {
		label := w.bucketLabel(t.Date)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{start: w.bucketStart(t.Date)}
			buckets[label] = b
		}
		switch t.Type {
		case Income:
			b.income = b.income.Add(t.Amount)
		case Expense:
			b.expenses = b.expenses.Add(t.Amount)
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	labels := make(map[*bucket]string, len(buckets))
	for label, b := range buckets {
		ordered = append(ordered, b)
		labels[b] = label
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].start.Before(ordered[j].start)
	})

	series := make(ChartSeries, 0, len(ordered))
	for _, b := range ordered {
		series = append(series, ChartPoint{
			Label:    labels[b],
			Income:   b.income,
			Expenses: b.expenses,
		})
	}
	return series
}

// bucketLabel renders the display label for a transaction date: day
// granularity for the month window, month granularity otherwise.
func (w Window) bucketLabel(d Date) string {
	switch w {
	case WindowHalfYear:
		return d.Format("Jan 06")
	case WindowYear:
		return d.Format("Jan 2006")
	default:
		return d.Format("Jan 2")
	}
}

// bucketStart is the sort key: the first day covered by the bucket, at full
// date resolution even when the label truncates the year.
func (w Window) bucketStart(d Date) time.Time {
	switch w {
	case WindowHalfYear, WindowYear:
		return NewDate(d.Year(), int(d.Month()), 1).Time
	default:
		return d.Time
	}
}
