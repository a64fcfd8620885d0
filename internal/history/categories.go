package history

import (
	"sort"

	"fjacquet/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryAverage is the mean monthly spend of a category over a window.
type CategoryAverage struct {
	Category string          `json:"category" yaml:"category"`
	Average  decimal.Decimal `json:"average" yaml:"average"`
	// Months is the number of months the sum was divided by.
	Months int `json:"months" yaml:"months"`
}

// Averages is a list of CategoryAverage sorted by category.
type Averages []CategoryAverage

// Scale converts every average to the view currency.
func (a Averages) Scale(view models.CurrencyView) Averages {
	out := make(Averages, len(a))
	for i, avg := range a {
		avg.Average = view.Convert(avg.Average)
		out[i] = avg
	}
	return out
}

// CategoryAverages sums each category over up to window months strictly before
// ref and divides by the number of months present in that window. A window of
// zero or less uses the aggregator default. The result is empty when ref is
// unknown or has no preceding months.
func (a *Aggregator) CategoryAverages(ref models.MonthKey, window int) Averages {
	if window <= 0 {
		window = a.window
	}
	if !a.Has(ref) {
		return Averages{}
	}
	months := a.preceding(ref, window)
	if len(months) == 0 {
		return Averages{}
	}

	inWindow := make(map[models.MonthKey]struct{}, len(months))
	for _, m := range months {
		inWindow[m] = struct{}{}
	}

	sums := make(map[string]decimal.Decimal)
	for _, tx := range a.txs {
		if _, ok := inWindow[tx.MonthKey]; ok {
			sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
		}
	}

	divisor := decimal.NewFromInt(int64(len(months)))
	out := make(Averages, 0, len(sums))
	for category, sum := range sums {
		out = append(out, CategoryAverage{
			Category: category,
			Average:  sum.Div(divisor).Round(2),
			Months:   len(months),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// CategoryDelta compares one category across two months.
type CategoryDelta struct {
	Category string          `json:"category" yaml:"category"`
	A        decimal.Decimal `json:"a" yaml:"a"`
	B        decimal.Decimal `json:"b" yaml:"b"`
	// Difference is B - A.
	Difference decimal.Decimal `json:"difference" yaml:"difference"`
}

// Deltas is the result of Compare.
type Deltas []CategoryDelta

// Scale converts every figure to the view currency.
func (d Deltas) Scale(view models.CurrencyView) Deltas {
	out := make(Deltas, len(d))
	for i, delta := range d {
		out[i] = CategoryDelta{
			Category:   delta.Category,
			A:          view.Convert(delta.A),
			B:          view.Convert(delta.B),
			Difference: view.Convert(delta.Difference),
		}
	}
	return out
}

// Compare totals each category in months a and b. A category missing from one
// month counts as 0 there. Rows are sorted by Difference, largest increase first.
func (a *Aggregator) Compare(monthA, monthB models.MonthKey) Deltas {
	totalsA := categoryTotals(a.inMonth(monthA))
	totalsB := categoryTotals(a.inMonth(monthB))

	categories := make(map[string]struct{}, len(totalsA)+len(totalsB))
	for c := range totalsA {
		categories[c] = struct{}{}
	}
	for c := range totalsB {
		categories[c] = struct{}{}
	}

	out := make(Deltas, 0, len(categories))
	for c := range categories {
		va, vb := totalsA[c], totalsB[c]
		out = append(out, CategoryDelta{Category: c, A: va, B: vb, Difference: vb.Sub(va)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Difference.Equal(out[j].Difference) {
			return out[i].Difference.GreaterThan(out[j].Difference)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func categoryTotals(txs []models.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}
