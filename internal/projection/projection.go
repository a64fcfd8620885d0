// Package projection builds the future-liability view of installment purchases:
// an itemized table of what is still owed and the amount due in each coming
// month.
package projection

import (
	"sort"

	"fjacquet/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Item is one active installment purchase.
type Item struct {
	ID                string          `json:"id" yaml:"id"`
	Establishment     string          `json:"establishment" yaml:"establishment"`
	Category          string          `json:"category" yaml:"category"`
	InstallmentAmount decimal.Decimal `json:"installment_amount" yaml:"installment_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount" yaml:"total_amount"`
	Current           int             `json:"current" yaml:"current"`
	Total             int             `json:"total" yaml:"total"`
	RemainingMonths   int             `json:"remaining_months" yaml:"remaining_months"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount" yaml:"remaining_amount"`
	FinalMonth        models.MonthKey `json:"final_month" yaml:"final_month"`
}

// Bucket is the total due in one future month.
type Bucket struct {
	Month       models.MonthKey `json:"month" yaml:"month"`
	MonthsAhead int             `json:"months_ahead" yaml:"months_ahead"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
}

// Projection is the result of Project. Currency is empty for base-currency figures.
type Projection struct {
	Anchor   models.MonthKey `json:"anchor" yaml:"anchor"`
	Currency string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	Items    []Item          `json:"items" yaml:"items"`
	Buckets  []Bucket        `json:"buckets" yaml:"buckets"`
}

// Empty reports that there were no active installment purchases.
func (p Projection) Empty() bool {
	return len(p.Items) == 0
}

// TotalCommitted is the sum of all remaining amounts.
func (p Projection) TotalCommitted() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.RemainingAmount)
	}
	return total
}

// Scale returns a copy with every amount converted to the view currency.
func (p Projection) Scale(view models.CurrencyView) Projection {
	out := Projection{
		Anchor:   p.Anchor,
		Currency: view.Code,
		Items:    make([]Item, len(p.Items)),
		Buckets:  make([]Bucket, len(p.Buckets)),
	}
	for i, item := range p.Items {
		item.InstallmentAmount = view.Convert(item.InstallmentAmount)
		item.TotalAmount = view.Convert(item.TotalAmount)
		item.RemainingAmount = view.Convert(item.RemainingAmount)
		out.Items[i] = item
	}
	for i, b := range p.Buckets {
		b.Amount = view.Convert(b.Amount)
		out.Buckets[i] = b
	}
	return out
}

// Active reports whether a transaction still has installments after the current one.
func Active(tx models.Transaction) bool {
	return tx.HasActiveInstallment()
}

// Project selects the active installment purchases in txs and projects them
// forward from anchor. With nothing active the result is Empty, never an error.
func Project(txs []models.Transaction, anchor models.MonthKey) Projection {
	p := Projection{Anchor: anchor, Items: []Item{}, Buckets: []Bucket{}}

	byMonth := make(map[models.MonthKey]decimal.Decimal)
	for _, tx := range txs {
		if !Active(tx) {
			continue
		}
		remaining := tx.RemainingInstallments()
		p.Items = append(p.Items, Item{
			ID:                tx.ID,
			Establishment:     tx.Establishment,
			Category:          tx.Category,
			InstallmentAmount: tx.Amount,
			TotalAmount:       tx.Amount.Mul(decimal.NewFromInt(int64(tx.TotalInstallments))),
			Current:           tx.CurrentInstallment,
			Total:             tx.TotalInstallments,
			RemainingMonths:   remaining,
			RemainingAmount:   tx.Amount.Mul(decimal.NewFromInt(int64(remaining))),
			FinalMonth:        anchor.AddMonths(remaining),
		})
		for offset := 1; offset <= remaining; offset++ {
			month := anchor.AddMonths(offset)
			byMonth[month] = byMonth[month].Add(tx.Amount)
		}
	}

	sort.SliceStable(p.Items, func(i, j int) bool {
		a, b := p.Items[i], p.Items[j]
		if a.FinalMonth != b.FinalMonth {
			return a.FinalMonth > b.FinalMonth
		}
		if !a.InstallmentAmount.Equal(b.InstallmentAmount) {
			return a.InstallmentAmount.GreaterThan(b.InstallmentAmount)
		}
		return a.Establishment < b.Establishment
	})

	for month, amount := range byMonth {
		p.Buckets = append(p.Buckets, Bucket{Month: month, Amount: amount})
	}
	sort.Slice(p.Buckets, func(i, j int) bool {
		return p.Buckets[i].Month < p.Buckets[j].Month
	})
	for i := range p.Buckets {
		p.Buckets[i].MonthsAhead = monthsBetween(anchor, p.Buckets[i].Month)
	}

	return p
}

func monthsBetween(from, to models.MonthKey) int {
	a, b := from.Time(), to.Time()
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
