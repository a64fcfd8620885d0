package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrencyView(t *testing.T) {
	rate := decimal.RequireFromString("5.80")

	usd, err := NewCurrencyView("BRL", "usd", rate)
	require.NoError(t, err)
	assert.Equal(t, "USD", usd.Code)
	assert.Equal(t, "100", usd.Convert(decimal.NewFromInt(580)).String())

	brl, err := NewCurrencyView("BRL", "BRL", rate)
	require.NoError(t, err)
	assert.Equal(t, "580", brl.Convert(decimal.NewFromInt(580)).String())

	_, err = NewCurrencyView("BRL", "USD", decimal.Zero)
	assert.Error(t, err)
}

func TestNewViewRecord(t *testing.T) {
	view, err := NewCurrencyView("BRL", "USD", decimal.RequireFromString("5.80"))
	require.NoError(t, err)

	tx := Transaction{Amount: decimal.RequireFromString("58"), FutureLiability: decimal.RequireFromString("116")}
	rec := NewViewRecord(tx, view)

	assert.Equal(t, "USD", rec.Currency)
	assert.Equal(t, "10", rec.AmountView.String())
	assert.Equal(t, "20", rec.FutureLiabilityView.String())
	assert.True(t, rec.Amount.Equal(tx.Amount), "base amount is kept")
}

func TestCurrencyView_ZeroFactorIsIdentity(t *testing.T) {
	assert.Equal(t, "12.5", CurrencyView{}.Convert(decimal.RequireFromString("12.5")).String())
}
