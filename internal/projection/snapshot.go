package projection

import (
	"fjacquet/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
)

// DebtSnapshot summarizes installment exposure for a set of transactions,
// typically one month.
type DebtSnapshot struct {
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
	// FutureLiability is what remains owed after the current installments.
	FutureLiability decimal.Decimal `json:"future_liability" yaml:"future_liability"`
	// PaidInInstallments is the part of this period's spend that belongs to
	// multi-installment purchases.
	PaidInInstallments decimal.Decimal `json:"paid_in_installments" yaml:"paid_in_installments"`
	// NewPurchases is the spend on first installments and cash purchases.
	NewPurchases decimal.Decimal `json:"new_purchases" yaml:"new_purchases"`
	ActiveCount  int             `json:"active_count" yaml:"active_count"`
}

// Snapshot computes the DebtSnapshot of txs.
func Snapshot(txs []models.Transaction) DebtSnapshot {
	s := DebtSnapshot{
		FutureLiability:    decimal.Zero,
		PaidInInstallments: decimal.Zero,
		NewPurchases:       decimal.Zero,
	}
	for _, tx := range txs {
		s.FutureLiability = s.FutureLiability.Add(tx.FutureLiability)
		if tx.TotalInstallments > 1 {
			s.PaidInInstallments = s.PaidInInstallments.Add(tx.Amount)
		}
		if tx.IsNewPurchase() {
			s.NewPurchases = s.NewPurchases.Add(tx.Amount)
		}
		if Active(tx) {
			s.ActiveCount++
		}
	}
	return s
}

// Scale converts the snapshot to the view currency.
func (s DebtSnapshot) Scale(view models.CurrencyView) DebtSnapshot {
	return DebtSnapshot{
		Currency:           view.Code,
		FutureLiability:    view.Convert(s.FutureLiability),
		PaidInInstallments: view.Convert(s.PaidInInstallments),
		NewPurchases:       view.Convert(s.NewPurchases),
		ActiveCount:        s.ActiveCount,
	}
}
