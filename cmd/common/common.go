// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"

	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/container"
	"fjacquet/ledger-csv/internal/ledger"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/parsererror"
	"fjacquet/ledger-csv/internal/report"
	"fjacquet/ledger-csv/internal/validation"
)

// Session is what every reporting command starts from.
type Session struct {
	Container *container.Container
	Ledger    *ledger.Ledger
	View      models.CurrencyView
	Flags     root.CommonFlags
}

// Open validates the shared flags, loads the ledger through the cache and
// resolves the display currency.
func Open(c *container.Container, flags root.CommonFlags) (*Session, error) {
	if c == nil {
		return nil, fmt.Errorf("application container is not initialized")
	}
	if err := validation.ValidateQuery(validation.Query{Currency: flags.ViewCurrency, Format: flags.Format}); err != nil {
		return nil, err
	}

	view, err := c.CurrencyView(flags.ViewCurrency)
	if err != nil {
		return nil, err
	}

	if flags.Input != "" {
		if err := validation.IsValidDirectory(flags.Input); err != nil {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
	}
	l, err := c.LoadLedger(flags.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	stats := l.Stats()
	for _, warning := range stats.Warnings {
		c.GetLogger().Warn(warning)
	}
	c.GetLogger().Debug("Ledger ready",
		logging.F(logging.FieldCount, l.Len()),
		logging.F("currency", view.Code))

	return &Session{Container: c, Ledger: l, View: view, Flags: flags}, nil
}

// Month resolves a --month flag value. An empty value selects the latest
// month; any other value must be a month present in the ledger.
func (s *Session) Month(raw string) (models.MonthKey, error) {
	return ResolveMonth(s.Ledger, raw)
}

// ResolveMonth is Session.Month for a bare ledger.
func ResolveMonth(l *ledger.Ledger, raw string) (models.MonthKey, error) {
	if raw == "" {
		latest := l.LatestMonth()
		if latest == "" {
			return "", fmt.Errorf("no transactions found: %w", parsererror.ErrNoData)
		}
		return latest, nil
	}
	if err := validation.IsValidMonth(raw); err != nil {
		return "", err
	}
	month := models.MonthKey(raw)
	if len(l.ForMonth(month)) == 0 {
		return "", fmt.Errorf("month %s not found in ledger: %w", raw, parsererror.ErrNoData)
	}
	return month, nil
}

// Render writes doc in the requested format to the --output file, or to out
// when no file was given.
func (s *Session) Render(doc report.Document, out io.Writer) error {
	format := s.Flags.Format
	if format == "" {
		format = validation.FormatText
	}
	gen := s.Container.GetReportGenerator()
	if s.Flags.Output != "" {
		return gen.WriteFile(s.Flags.Output, doc, format)
	}
	return gen.Write(out, doc, format)
}
