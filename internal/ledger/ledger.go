// Package ledger runs the ingestion pipeline (load, shift repair, enrichment)
// over a directory and exposes the result as an immutable Ledger.
package ledger

import (
	"sort"

	"fjacquet/ledger-csv/internal/enricher"
	"fjacquet/ledger-csv/internal/models"
)

// Stats describes how a Ledger was built.
type Stats struct {
	Files          int      `json:"files" yaml:"files"`
	SkippedFiles   int      `json:"skipped_files" yaml:"skipped_files"`
	ShiftedFiles   int      `json:"shifted_files" yaml:"shifted_files"`
	AmbiguousFiles int      `json:"ambiguous_files" yaml:"ambiguous_files"`
	Warnings       []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	enricher.Stats `yaml:",inline"`
}

// Ledger is the enriched, merged set of transactions from one load. It is never
// modified after construction; accessors hand out copies.
type Ledger struct {
	transactions []models.Transaction
	stats        Stats
}

// New wraps already enriched transactions.
func New(txs []models.Transaction, stats Stats) *Ledger {
	return &Ledger{
		transactions: append([]models.Transaction(nil), txs...),
		stats:        stats,
	}
}

// Empty reports whether the ledger holds no transactions.
func (l *Ledger) Empty() bool {
	return len(l.transactions) == 0
}

// Len is the number of transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Stats returns the load statistics.
func (l *Ledger) Stats() Stats {
	s := l.stats
	s.Warnings = append([]string(nil), l.stats.Warnings...)
	return s
}

// Transactions returns a copy of every transaction in load order.
func (l *Ledger) Transactions() []models.Transaction {
	return append([]models.Transaction(nil), l.transactions...)
}

// Months returns the distinct month keys, newest first.
func (l *Ledger) Months() []models.MonthKey {
	seen := make(map[models.MonthKey]struct{})
	var months []models.MonthKey
	for _, tx := range l.transactions {
		if _, ok := seen[tx.MonthKey]; ok {
			continue
		}
		seen[tx.MonthKey] = struct{}{}
		months = append(months, tx.MonthKey)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] > months[j] })
	return months
}

// LatestMonth is the newest month key, or "" for an empty ledger.
func (l *Ledger) LatestMonth() models.MonthKey {
	months := l.Months()
	if len(months) == 0 {
		return ""
	}
	return months[0]
}

// ForMonth returns the transactions of one month.
func (l *Ledger) ForMonth(month models.MonthKey) []models.Transaction {
	var out []models.Transaction
	for _, tx := range l.transactions {
		if tx.MonthKey == month {
			out = append(out, tx)
		}
	}
	return out
}

// View projects every transaction into the view currency.
func (l *Ledger) View(view models.CurrencyView) []models.ViewRecord {
	return ViewOf(l.transactions, view)
}

// ViewOf projects a subset of transactions into the view currency.
func ViewOf(txs []models.Transaction, view models.CurrencyView) []models.ViewRecord {
	out := make([]models.ViewRecord, len(txs))
	for i, tx := range txs {
		out[i] = models.NewViewRecord(tx, view)
	}
	return out
}
