// Package parsererror defines the typed errors raised while turning CSV exports
// into ledger transactions. Each type maps to one level of the failure taxonomy:
// a whole file rejected, a single field defaulted, or a row dropped.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoData signals that an operation had nothing to work on. Callers usually
// translate it into an empty result rather than a failure.
var ErrNoData = errors.New("no data")

// ParseError is a recoverable per-field failure. The enrichment step that
// raised it substitutes a default and keeps the row.
type ParseError struct {
	Stage string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Stage, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Subject, e.Reason)
}

// InvalidFormatError marks a file that could not be read as a delimited export
// at all. The file is skipped and the batch continues.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
	if e.ActualContentSnippet != "" {
		msg += fmt.Sprintf(". Content snippet: '%s'", e.ActualContentSnippet)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError records a row that was dropped because a mandatory field
// (the date) could not be extracted.
type DataExtractionError struct {
	FilePath       string
	Row            int
	FieldName      string
	RawDataSnippet string
	Reason         string
}

func (e *DataExtractionError) Error() string {
	msg := fmt.Sprintf("data extraction failed in file '%s' row %d for field '%s': %s",
		e.FilePath, e.Row, e.FieldName, e.Reason)
	if e.RawDataSnippet != "" {
		msg += fmt.Sprintf(". Raw data snippet: '%s'", e.RawDataSnippet)
	}
	return msg
}

// Snippet shortens s for inclusion in an error message.
func Snippet(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
