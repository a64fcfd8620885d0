package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/ledger-csv/internal/parsererror"
	"fjacquet/ledger-csv/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   validation.Query
		subject string
	}{
		{name: "empty query", query: validation.Query{}},
		{name: "full valid query", query: validation.Query{
			Month: "2024-03", CompareA: "2024-01", CompareB: "2024-02",
			Currency: "USD", Window: 6, Format: "json",
		}},
		{name: "bad month shape", query: validation.Query{Month: "03/2024"}, subject: "month"},
		{name: "month out of range", query: validation.Query{Month: "2024-13"}, subject: "month"},
		{name: "bad compare b", query: validation.Query{CompareA: "2024-01", CompareB: "jan"}, subject: "b"},
		{name: "currency too long", query: validation.Query{Currency: "USDT"}, subject: "currency"},
		{name: "currency with digits", query: validation.Query{Currency: "US1"}, subject: "currency"},
		{name: "negative window", query: validation.Query{Window: -1}, subject: "window"},
		{name: "window too large", query: validation.Query{Window: 61}, subject: "window"},
		{name: "unknown format", query: validation.Query{Format: "xml"}, subject: "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateQuery(tt.query)
			if tt.subject == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *parsererror.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.subject, vErr.Subject)
			assert.NotEmpty(t, vErr.Reason)
		})
	}
}

func TestIsValidMonth(t *testing.T) {
	assert.NoError(t, validation.IsValidMonth("2023-12"))
	assert.Error(t, validation.IsValidMonth(""))
	assert.Error(t, validation.IsValidMonth("2023-00"))
	assert.Error(t, validation.IsValidMonth("202312"))
}

func TestIsValidOutputFormat(t *testing.T) {
	for _, format := range validation.SupportedFormats {
		assert.NoError(t, validation.IsValidOutputFormat(format), format)
	}

	err := validation.IsValidOutputFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: xml")

	assert.Error(t, validation.IsValidOutputFormat(""))
}

func TestIsValidDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "export.csv")
	require.NoError(t, os.WriteFile(file, []byte("data;valor\n"), 0600))

	assert.NoError(t, validation.IsValidDirectory(tmpDir))

	err := validation.IsValidDirectory(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")

	err = validation.IsValidDirectory(filepath.Join(tmpDir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
