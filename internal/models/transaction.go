// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one enriched ledger record. Values are never mutated after
// enrichment; views and aggregations build new values.
type Transaction struct {
	ID                 string          `json:"id" yaml:"id"`
	SourceFile         string          `json:"source_file" yaml:"source_file"`
	Date               time.Time       `json:"date" yaml:"date"`
	Establishment      string          `json:"establishment" yaml:"establishment"`
	Category           string          `json:"category" yaml:"category"`
	Subcategory        string          `json:"subcategory" yaml:"subcategory"`
	Amount             decimal.Decimal `json:"amount" yaml:"amount"`
	CurrentInstallment int             `json:"current_installment" yaml:"current_installment"`
	TotalInstallments  int             `json:"total_installments" yaml:"total_installments"`
	IsInstallment      bool            `json:"is_installment" yaml:"is_installment"`
	MonthKey           MonthKey        `json:"month_key" yaml:"month_key"`
	FutureLiability    decimal.Decimal `json:"future_liability" yaml:"future_liability"`
	SpendType          SpendType       `json:"spend_type" yaml:"spend_type"`
}

// RemainingInstallments is the number of installments still to be billed.
func (t Transaction) RemainingInstallments() int {
	if t.TotalInstallments <= t.CurrentInstallment {
		return 0
	}
	return t.TotalInstallments - t.CurrentInstallment
}

// HasActiveInstallment reports whether the purchase still has installments to
// bill after the current one.
func (t Transaction) HasActiveInstallment() bool {
	return t.IsInstallment && t.TotalInstallments > 1 && t.CurrentInstallment < t.TotalInstallments
}

// IsNewPurchase reports whether this row is the first installment (or a cash purchase).
func (t Transaction) IsNewPurchase() bool {
	return t.CurrentInstallment == 1
}

// ComputeFutureLiability applies the liability formula:
// isInstallment ? max(0, (total - current) * amount) : 0.
func ComputeFutureLiability(isInstallment bool, current, total int, amount decimal.Decimal) decimal.Decimal {
	if !isInstallment {
		return decimal.Zero
	}
	liability := decimal.NewFromInt(int64(total - current)).Mul(amount)
	if liability.IsNegative() {
		return decimal.Zero
	}
	return liability
}
