package enricher

import (
	"errors"
	"testing"
	"time"

	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate(models.RawRecord{Date: models.Some("15/01/2024")})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate(models.RawRecord{SourceFile: "f.csv", Row: 4, Date: models.Some("amanhã")})
	var extractErr *parsererror.DataExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, 4, extractErr.Row)
	assert.Equal(t, models.ColumnDate, extractErr.FieldName)

	_, err = ParseDate(models.RawRecord{})
	assert.Error(t, err, "absent date drops the row")
}

func TestDeriveMonthKey(t *testing.T) {
	date := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, models.MonthKey("2024-02"), DeriveMonthKey(models.Some("2024-02"), date), "valid source is kept")
	assert.Equal(t, models.MonthKey("2024-03"), DeriveMonthKey(models.Some("100,50"), date))
	// The shape matches YYYY-MM but month 13 does not exist, so the date wins.
	assert.True(t, models.IsMonthKey("2024-13"))
	assert.Equal(t, models.MonthKey("2024-03"), DeriveMonthKey(models.Some("2024-13"), date))
	assert.Equal(t, models.MonthKey("2024-03"), DeriveMonthKey(models.Some("2024-00"), date))
	assert.Equal(t, models.MonthKey("2024-12"), DeriveMonthKey(models.Some(" 2024-12 "), date), "surrounding spaces are trimmed")
	assert.Equal(t, models.MonthKey("2024-03"), DeriveMonthKey(models.None, date))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Mercado Livre", NormalizeText(models.Some("  MERCADO livre ")))
	assert.Equal(t, "", NormalizeText(models.Some("nan")))
	assert.Equal(t, "", NormalizeText(models.None))
}

func TestNormalizeAmount(t *testing.T) {
	amount, err := NormalizeAmount(models.Some("1.234,56"))
	require.NoError(t, err)
	assert.Equal(t, "1234.56", amount.String())

	amount, err = NormalizeAmount(models.None)
	require.NoError(t, err)
	assert.True(t, amount.IsZero())

	amount, err = NormalizeAmount(models.Some("abc"))
	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "abc", parseErr.Value)
	assert.True(t, amount.IsZero())
}

func TestNormalizeFlag(t *testing.T) {
	tests := []struct {
		input    models.Optional
		expected bool
	}{
		{models.Some("1"), true},
		{models.Some("1.0"), true},
		{models.Some("2"), true},
		{models.Some("-1"), true},
		{models.Some("0"), false},
		{models.Some("0.0"), false},
		{models.Some("True"), true},
		{models.Some("Sim"), true},
		{models.Some("s"), true},
		{models.Some("não"), false},
		{models.Some("false"), false},
		{models.Some(""), false},
		{models.Some("nan"), false},
		{models.None, false},
	}

	for _, tt := range tests {
		t.Run(tt.input.Value, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFlag(tt.input))
		})
	}
}

func TestExtractInstallments(t *testing.T) {
	tests := []struct {
		name           string
		rec            models.RawRecord
		current, total int
	}{
		{
			name:    "split columns",
			rec:     models.RawRecord{CurrentInstallment: models.Some("3"), TotalInstallments: models.Some("10")},
			current: 3, total: 10,
		},
		{
			name:    "split slash notation",
			rec:     models.RawRecord{CurrentInstallment: models.Some("01/10"), TotalInstallments: models.Some("01/10")},
			current: 1, total: 10,
		},
		{
			name:    "combined column",
			rec:     models.RawRecord{Installment: models.Some("04/12")},
			current: 4, total: 12,
		},
		{
			name:    "split wins over combined",
			rec:     models.RawRecord{TotalInstallments: models.Some("6"), Installment: models.Some("04/12")},
			current: 1, total: 6,
		},
		{
			name:    "cents in total column",
			rec:     models.RawRecord{CurrentInstallment: models.Some("1"), TotalInstallments: models.Some("12,50")},
			current: 1, total: 1,
		},
		{
			name:    "nothing",
			rec:     models.RawRecord{},
			current: 1, total: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, total := ExtractInstallments(tt.rec)
			assert.Equal(t, tt.current, current)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestClampInstallments(t *testing.T) {
	tests := []struct {
		name                   string
		current, total         int
		wantCurrent, wantTotal int
		clamped                bool
	}{
		{"in range", 3, 10, 3, 10, false},
		{"total too large", 5, 120, 1, 1, true},
		{"total at ceiling", 60, 60, 60, 60, false},
		{"total zero", 1, 0, 1, 1, true},
		{"current above total", 12, 10, 10, 10, true},
		{"current zero", 0, 5, 1, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, total, clamped := ClampInstallments(tt.current, tt.total, 60)
			assert.Equal(t, tt.wantCurrent, current)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.clamped, clamped)
		})
	}

	current, total, _ := ClampInstallments(2, 24, 12)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, total, "custom ceiling applies")
}

func TestSyncInstallmentFlag(t *testing.T) {
	assert.True(t, SyncInstallmentFlag(false, 2))
	assert.True(t, SyncInstallmentFlag(true, 1))
	assert.False(t, SyncInstallmentFlag(false, 1))
}

func TestComputeFutureLiability_Rule(t *testing.T) {
	got := ComputeFutureLiability(true, 4, 10, decimal.NewFromInt(50))
	assert.Equal(t, "300", got.String())
	assert.True(t, ComputeFutureLiability(false, 4, 10, decimal.NewFromInt(50)).IsZero())
}

func TestClassifySpend(t *testing.T) {
	set := models.NewEssentialSet([]string{"Mercado"})
	assert.Equal(t, models.SpendEssential, ClassifySpend("Mercado", set))
	assert.Equal(t, models.SpendLifestyle, ClassifySpend("Viagem", set))
	assert.Equal(t, models.SpendUndefined, ClassifySpend("", set))
}
