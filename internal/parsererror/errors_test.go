package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "amount that is not a number",
			err: &ParseError{
				Stage: "normalize_amount",
				Field: "amount",
				Value: "abc",
				Err:   errors.New("not a number"),
			},
			expected: "normalize_amount: failed to parse amount='abc': not a number",
		},
		{
			name: "empty value",
			err: &ParseError{
				Stage: "normalize_flag",
				Field: "installment_flag",
				Value: "",
				Err:   errors.New("empty"),
			},
			expected: "normalize_flag: failed to parse installment_flag='': empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Stage: "normalize_amount", Field: "amount", Value: "x", Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Subject: "month 2024-13", Reason: "month out of range"}
	assert.Equal(t, "validation failed for month 2024-13: month out of range", err.Error())
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name: "without snippet or cause",
			err: &InvalidFormatError{
				FilePath:       "fatura.csv",
				ExpectedFormat: "delimited text with header",
				Msg:            "file is empty",
			},
			expected: "invalid format in file 'fatura.csv': file is empty. Expected: delimited text with header",
		},
		{
			name: "with snippet and cause",
			err: &InvalidFormatError{
				FilePath:             "broken.csv",
				ExpectedFormat:       "delimited text with header",
				ActualContentSnippet: "\x00\x01",
				Msg:                  "cannot read header",
				Err:                  errors.New("bare quote"),
			},
			expected: "invalid format in file 'broken.csv': cannot read header. Expected: delimited text with header. Content snippet: '\x00\x01': bare quote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestInvalidFormatError_As(t *testing.T) {
	cause := errors.New("permission denied")
	wrapped := fmt.Errorf("loading: %w", &InvalidFormatError{FilePath: "a.csv", Msg: "unreadable", Err: cause})

	var target *InvalidFormatError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "a.csv", target.FilePath)
	assert.True(t, errors.Is(wrapped, cause))
}

func TestDataExtractionError(t *testing.T) {
	err := &DataExtractionError{
		FilePath:       "fatura.csv",
		Row:            3,
		FieldName:      "date",
		RawDataSnippet: "31/02/xx",
		Reason:         "unrecognized date format",
	}
	assert.Equal(t,
		"data extraction failed in file 'fatura.csv' row 3 for field 'date': unrecognized date format. Raw data snippet: '31/02/xx'",
		err.Error())

	err.RawDataSnippet = ""
	assert.Equal(t,
		"data extraction failed in file 'fatura.csv' row 3 for field 'date': unrecognized date format",
		err.Error())
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "abc", Snippet("abc", 10))
	assert.Equal(t, "ab...", Snippet("abcdef", 2))
	assert.Equal(t, "São...", Snippet("São Paulo", 3))
	assert.Equal(t, "abc", Snippet("abc", 0))
}
