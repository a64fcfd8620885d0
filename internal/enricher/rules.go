package enricher

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/ledger-csv/internal/currencyutils"
	"fjacquet/ledger-csv/internal/dateutils"
	"fjacquet/ledger-csv/internal/installments"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/parsererror"
	"fjacquet/ledger-csv/internal/textutils"

	"github.com/shopspring/decimal"
)

// Each rule below is a pure function. Enricher.EnrichRecord applies them in the
// order they are declared.

// ParseDate is rule 1. The date is mandatory: a failure drops the row.
func ParseDate(rec models.RawRecord) (time.Time, error) {
	raw := rec.Date.Or("")
	t, _, err := dateutils.ParseDate(raw)
	if err != nil {
		return time.Time{}, &parsererror.DataExtractionError{
			FilePath:       rec.SourceFile,
			Row:            rec.Row,
			FieldName:      models.ColumnDate,
			RawDataSnippet: parsererror.Snippet(raw, 40),
			Reason:         err.Error(),
		}
	}
	return t, nil
}

// DeriveMonthKey is rule 2: a well-formed source month key is kept, anything
// else is replaced by the month of date.
func DeriveMonthKey(source models.Optional, date time.Time) models.MonthKey {
	if key, err := models.ParseMonthKey(strings.TrimSpace(source.Value)); err == nil {
		return key
	}
	return models.MonthKeyOf(date)
}

// NormalizeText is rule 3: trim and title-case. Null markers become "".
func NormalizeText(value models.Optional) string {
	if textutils.IsBlank(value.Value) {
		return ""
	}
	return textutils.TitleCase(value.Value)
}

// NormalizeAmount is rule 4. Absent or unparsable amounts are 0; the error
// explains the default and is only worth logging.
func NormalizeAmount(value models.Optional) (decimal.Decimal, error) {
	if !value.Present {
		return decimal.Zero, nil
	}
	amount, ok := currencyutils.ParseAmount(value.Value)
	if !ok {
		return decimal.Zero, &parsererror.ParseError{
			Stage: "normalize_amount",
			Field: models.ColumnAmount,
			Value: value.Value,
			Err:   fmt.Errorf("not a monetary value"),
		}
	}
	return amount, nil
}

var truthy = map[string]struct{}{
	"true": {}, "verdadeiro": {}, "sim": {}, "s": {}, "yes": {}, "y": {},
}

// NormalizeFlag is rule 5: numeric coercion where any non-zero number is true.
// The words true/sim/yes (and their initials) are also true. Everything else,
// absent included, is false.
func NormalizeFlag(value models.Optional) bool {
	s := strings.ToLower(strings.TrimSpace(value.Value))
	if s == "" {
		return false
	}
	if _, ok := truthy[s]; ok {
		return true
	}
	n, ok := currencyutils.ParseAmount(s)
	return ok && !n.IsZero()
}

// ExtractInstallments is rule 6. The split current/total columns win when either
// carries a value; the combined "Parcela" column is the fallback.
func ExtractInstallments(rec models.RawRecord) (current, total int) {
	currentRaw := rec.CurrentInstallment.Or("")
	totalRaw := rec.TotalInstallments.Or("")
	if !textutils.IsBlank(currentRaw) || !textutils.IsBlank(totalRaw) {
		return installments.Current(currentRaw), installments.Total(totalRaw)
	}
	if combined := rec.Installment.Or(""); !textutils.IsBlank(combined) {
		return installments.Parse(combined)
	}
	return 1, 1
}

// ClampInstallments is rule 7. A total outside [1, max] resets the pair to
// (1, 1); otherwise current is clamped into [1, total]. The boolean reports
// whether anything changed.
func ClampInstallments(current, total, max int) (int, int, bool) {
	if max < 1 {
		max = models.DefaultMaxInstallments
	}
	if total < 1 || total > max {
		return 1, 1, true
	}
	switch {
	case current < 1:
		return 1, total, true
	case current > total:
		return total, total, true
	}
	return current, total, false
}

// SyncInstallmentFlag is rule 8: more than one installment implies the flag.
func SyncInstallmentFlag(flag bool, total int) bool {
	return flag || total > 1
}

// ComputeFutureLiability is rule 9.
func ComputeFutureLiability(isInstallment bool, current, total int, amount decimal.Decimal) decimal.Decimal {
	return models.ComputeFutureLiability(isInstallment, current, total, amount)
}

// ClassifySpend is rule 10. The match is case-sensitive against the normalized
// category; a missing category is Undefined.
func ClassifySpend(category string, essential models.EssentialSet) models.SpendType {
	return essential.Classify(category)
}
