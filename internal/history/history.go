// Package history computes month-over-month views of the ledger: context
// metrics for a reference month, the trailing trend, per-category averages,
// month comparisons and monthly summaries. All functions are read-only over the
// transactions handed to New.
package history

import (
	"sort"

	"fjacquet/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultWindowMonths is the look-back used for means and category averages.
const DefaultWindowMonths = 6

// trailingPreceding is how many months before the reference the trend shows.
const trailingPreceding = 5

// Aggregator precomputes monthly totals for a fixed set of transactions.
type Aggregator struct {
	txs    []models.Transaction
	months []models.MonthKey
	totals map[models.MonthKey]decimal.Decimal
	window int
}

// New indexes txs by month key.
func New(txs []models.Transaction) *Aggregator {
	a := &Aggregator{
		txs:    txs,
		totals: make(map[models.MonthKey]decimal.Decimal),
		window: DefaultWindowMonths,
	}
	for _, tx := range txs {
		if _, seen := a.totals[tx.MonthKey]; !seen {
			a.months = append(a.months, tx.MonthKey)
		}
		a.totals[tx.MonthKey] = a.totals[tx.MonthKey].Add(tx.Amount)
	}
	sort.Slice(a.months, func(i, j int) bool { return a.months[i] < a.months[j] })
	return a
}

// WithWindow sets the default look-back for Context and CategoryAverages.
func (a *Aggregator) WithWindow(months int) *Aggregator {
	if months >= 1 {
		a.window = months
	}
	return a
}

// Months returns the distinct month keys present, oldest first.
func (a *Aggregator) Months() []models.MonthKey {
	return append([]models.MonthKey(nil), a.months...)
}

// Has reports whether any transaction falls in month.
func (a *Aggregator) Has(month models.MonthKey) bool {
	_, ok := a.totals[month]
	return ok
}

// Total is the spend of one month, 0 when the month is absent.
func (a *Aggregator) Total(month models.MonthKey) decimal.Decimal {
	return a.totals[month]
}

// preceding returns up to n present months strictly before ref, oldest first.
func (a *Aggregator) preceding(ref models.MonthKey, n int) []models.MonthKey {
	idx := sort.Search(len(a.months), func(i int) bool { return a.months[i] >= ref })
	start := idx - n
	if start < 0 {
		start = 0
	}
	return a.months[start:idx]
}

func (a *Aggregator) inMonth(month models.MonthKey) []models.Transaction {
	var out []models.Transaction
	for _, tx := range a.txs {
		if tx.MonthKey == month {
			out = append(out, tx)
		}
	}
	return out
}

// ContextMetrics places a month against its history.
type ContextMetrics struct {
	Month    models.MonthKey `json:"month" yaml:"month"`
	Currency string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	Current  decimal.Decimal `json:"current" yaml:"current"`
	// Previous is the latest preceding month's total, 0 when there is none.
	Previous decimal.Decimal `json:"previous" yaml:"previous"`
	// TrailingMean averages up to the window of preceding months, 0 when there are none.
	TrailingMean decimal.Decimal `json:"trailing_mean" yaml:"trailing_mean"`
	// DeltaPrevious is Current - Previous.
	DeltaPrevious decimal.Decimal `json:"delta_previous" yaml:"delta_previous"`
	// DeltaMean is Current - TrailingMean, or 0 when the mean is not positive.
	DeltaMean decimal.Decimal `json:"delta_mean" yaml:"delta_mean"`
}

// Context computes the ContextMetrics of ref.
func (a *Aggregator) Context(ref models.MonthKey) ContextMetrics {
	m := ContextMetrics{
		Month:        ref,
		Current:      a.Total(ref),
		Previous:     decimal.Zero,
		TrailingMean: decimal.Zero,
	}

	window := a.preceding(ref, a.window)
	if len(window) > 0 {
		m.Previous = a.totals[window[len(window)-1]]
		sum := decimal.Zero
		for _, month := range window {
			sum = sum.Add(a.totals[month])
		}
		m.TrailingMean = sum.Div(decimal.NewFromInt(int64(len(window)))).Round(2)
	}

	m.DeltaPrevious = m.Current.Sub(m.Previous)
	m.DeltaMean = decimal.Zero
	if m.TrailingMean.IsPositive() {
		m.DeltaMean = m.Current.Sub(m.TrailingMean)
	}
	return m
}

// Scale converts the metrics to the view currency.
func (m ContextMetrics) Scale(view models.CurrencyView) ContextMetrics {
	return ContextMetrics{
		Month:         m.Month,
		Currency:      view.Code,
		Current:       view.Convert(m.Current),
		Previous:      view.Convert(m.Previous),
		TrailingMean:  view.Convert(m.TrailingMean),
		DeltaPrevious: view.Convert(m.DeltaPrevious),
		DeltaMean:     view.Convert(m.DeltaMean),
	}
}

// MonthTotal is the spend of one month.
type MonthTotal struct {
	Month  models.MonthKey `json:"month" yaml:"month"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// Trend is a chronological series of month totals.
type Trend []MonthTotal

// Scale converts every total to the view currency.
func (t Trend) Scale(view models.CurrencyView) Trend {
	out := make(Trend, len(t))
	for i, mt := range t {
		out[i] = MonthTotal{Month: mt.Month, Amount: view.Convert(mt.Amount)}
	}
	return out
}

// Trailing returns ref and up to five preceding months, oldest first. An unknown
// ref yields an empty trend.
func (a *Aggregator) Trailing(ref models.MonthKey) Trend {
	if !a.Has(ref) {
		return Trend{}
	}
	months := append([]models.MonthKey(nil), a.preceding(ref, trailingPreceding)...)
	months = append(months, ref)
	out := make(Trend, 0, len(months))
	for _, month := range months {
		out = append(out, MonthTotal{Month: month, Amount: a.totals[month]})
	}
	return out
}
