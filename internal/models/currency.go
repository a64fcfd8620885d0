package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyView is a display currency: figures in the ledger base currency are
// multiplied by Factor to obtain figures in Code.
type CurrencyView struct {
	Code   string          `json:"code" yaml:"code"`
	Factor decimal.Decimal `json:"factor" yaml:"factor"`
}

// BaseView returns the identity view for the base currency.
func BaseView(code string) CurrencyView {
	return CurrencyView{Code: strings.ToUpper(code), Factor: decimal.NewFromInt(1)}
}

// NewCurrencyView builds the view for code given how many base units buy one
// unit of code (e.g. 5.80 BRL per USD). The base currency itself gets factor 1.
func NewCurrencyView(base, code string, rate decimal.Decimal) (CurrencyView, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == base {
		return BaseView(base), nil
	}
	if !rate.IsPositive() {
		return CurrencyView{}, fmt.Errorf("exchange rate for %s must be positive, got %s", code, rate)
	}
	return CurrencyView{Code: code, Factor: decimal.NewFromInt(1).Div(rate)}, nil
}

// Convert returns amount expressed in the view currency, rounded to cents.
func (v CurrencyView) Convert(amount decimal.Decimal) decimal.Decimal {
	if v.Factor.IsZero() {
		return amount
	}
	return amount.Mul(v.Factor).Round(2)
}

func (v CurrencyView) String() string {
	return fmt.Sprintf("%s x%s", v.Code, v.Factor.StringFixed(4))
}

// ViewRecord is a transaction paired with its figures in a display currency.
type ViewRecord struct {
	Transaction         `yaml:",inline"`
	Currency            string          `json:"currency" yaml:"currency"`
	AmountView          decimal.Decimal `json:"amount_view" yaml:"amount_view"`
	FutureLiabilityView decimal.Decimal `json:"future_liability_view" yaml:"future_liability_view"`
}

// NewViewRecord projects t into the view currency.
func NewViewRecord(t Transaction, view CurrencyView) ViewRecord {
	return ViewRecord{
		Transaction:         t,
		Currency:            view.Code,
		AmountView:          view.Convert(t.Amount),
		FutureLiabilityView: view.Convert(t.FutureLiability),
	}
}
