// Package enricher turns repaired raw rows into ledger transactions by applying
// a fixed sequence of independent rules.
package enricher

import (
	"errors"
	"fmt"

	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/parsererror"

	"github.com/google/uuid"
)

// idNamespace seeds the deterministic transaction IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ledger-csv/transaction"))

// Stats counts what happened during one Enrich call.
type Stats struct {
	Input            int `json:"input" yaml:"input"`
	Enriched         int `json:"enriched" yaml:"enriched"`
	DroppedRows      int `json:"dropped_rows" yaml:"dropped_rows"`
	DefaultedAmounts int `json:"defaulted_amounts" yaml:"defaulted_amounts"`
	ClampedRows      int `json:"clamped_rows" yaml:"clamped_rows"`
}

// Add merges other into s.
func (s *Stats) Add(other Stats) {
	s.Input += other.Input
	s.Enriched += other.Enriched
	s.DroppedRows += other.DroppedRows
	s.DefaultedAmounts += other.DefaultedAmounts
	s.ClampedRows += other.ClampedRows
}

// Enricher holds the caller-supplied settings the rules need.
type Enricher struct {
	essential       models.EssentialSet
	maxInstallments int
	logger          logging.Logger
}

// New creates an Enricher for the given essential categories.
func New(essential []string, logger logging.Logger) *Enricher {
	return &Enricher{
		essential:       models.NewEssentialSet(essential),
		maxInstallments: models.DefaultMaxInstallments,
		logger:          logging.OrDefault(logger),
	}
}

// WithMaxInstallments overrides the installment ceiling.
func (e *Enricher) WithMaxInstallments(n int) *Enricher {
	if n >= 1 {
		e.maxInstallments = n
	}
	return e
}

// Enrich converts records, dropping rows without a usable date.
func (e *Enricher) Enrich(records []models.RawRecord) ([]models.Transaction, Stats) {
	stats := Stats{Input: len(records)}
	out := make([]models.Transaction, 0, len(records))

	for _, rec := range records {
		tx, outcome, err := e.enrich(rec)
		if err != nil {
			stats.DroppedRows++
			e.logger.WithError(err).Debug("Dropping row without a valid date",
				logging.F(logging.FieldFile, rec.SourceFile),
				logging.F(logging.FieldRow, rec.Row))
			continue
		}
		if outcome.amountDefaulted {
			stats.DefaultedAmounts++
		}
		if outcome.clamped {
			stats.ClampedRows++
		}
		out = append(out, tx)
	}

	stats.Enriched = len(out)
	return out, stats
}

// EnrichRecord converts a single record. The error is a
// *parsererror.DataExtractionError when the row must be dropped.
func (e *Enricher) EnrichRecord(rec models.RawRecord) (models.Transaction, error) {
	tx, _, err := e.enrich(rec)
	return tx, err
}

type outcome struct {
	amountDefaulted bool
	clamped         bool
}

func (e *Enricher) enrich(rec models.RawRecord) (models.Transaction, outcome, error) {
	var o outcome

	date, err := ParseDate(rec)
	if err != nil {
		return models.Transaction{}, o, err
	}

	monthKey := DeriveMonthKey(rec.MonthKey, date)

	establishment := NormalizeText(rec.Establishment)
	category := NormalizeText(rec.Category)
	subcategory := NormalizeText(rec.Subcategory)

	amount, err := NormalizeAmount(rec.Amount)
	if err != nil {
		o.amountDefaulted = true
		var parseErr *parsererror.ParseError
		if errors.As(err, &parseErr) {
			e.logger.Debug("Amount defaulted to zero",
				logging.F(logging.FieldFile, rec.SourceFile),
				logging.F(logging.FieldRow, rec.Row),
				logging.F(logging.FieldValue, parseErr.Value))
		}
	}

	flag := NormalizeFlag(rec.InstallmentFlag)

	current, total := ExtractInstallments(rec)
	current, total, o.clamped = ClampInstallments(current, total, e.maxInstallments)
	if o.clamped {
		e.logger.Debug("Installments clamped",
			logging.F(logging.FieldFile, rec.SourceFile),
			logging.F(logging.FieldRow, rec.Row),
			logging.F(logging.FieldValue, fmt.Sprintf("%d/%d", current, total)))
	}

	flag = SyncInstallmentFlag(flag, total)

	return models.Transaction{
		ID:                 TransactionID(rec.SourceFile, rec.Row),
		SourceFile:         rec.SourceFile,
		Date:               date,
		Establishment:      establishment,
		Category:           category,
		Subcategory:        subcategory,
		Amount:             amount,
		CurrentInstallment: current,
		TotalInstallments:  total,
		IsInstallment:      flag,
		MonthKey:           monthKey,
		FutureLiability:    ComputeFutureLiability(flag, current, total, amount),
		SpendType:          ClassifySpend(category, e.essential),
	}, o, nil
}

// TransactionID derives a stable ID from the row's origin so reloading the same
// files yields the same IDs.
func TransactionID(sourceFile string, row int) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s#%d", sourceFile, row))).String()
}
