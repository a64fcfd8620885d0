package validation

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/parsererror"

	"github.com/go-playground/validator/v10"
)

// Output formats accepted by the CLI and the report generator.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// SupportedFormats lists the output formats in display order.
var SupportedFormats = []string{FormatText, FormatJSON, FormatYAML, FormatCSV}

// Query is the set of user-supplied selectors shared by the CLI commands and
// the HTTP API. Zero values mean "not given".
type Query struct {
	Month    string `json:"month" validate:"omitempty,monthkey"`
	CompareA string `json:"a" validate:"omitempty,monthkey"`
	CompareB string `json:"b" validate:"omitempty,monthkey"`
	Currency string `json:"currency" validate:"omitempty,len=3,alpha"`
	Window   int    `json:"window" validate:"gte=0,lte=60"`
	Format   string `json:"format" validate:"omitempty,oneof=text json yaml csv"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("monthkey", func(fl validator.FieldLevel) bool {
			_, err := models.ParseMonthKey(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidateQuery checks q and reports the first offending field as a
// *parsererror.ValidationError.
func ValidateQuery(q Query) error {
	err := instance().Struct(q)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &parsererror.ValidationError{
			Subject: fe.Field(),
			Reason:  reason(fe),
		}
	}
	return fmt.Errorf("validating query: %w", err)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "monthkey":
		return fmt.Sprintf("%q is not a YYYY-MM month", fe.Value())
	case "len":
		return fmt.Sprintf("%q must be a %s-letter currency code", fe.Value(), fe.Param())
	case "alpha":
		return fmt.Sprintf("%q must contain letters only", fe.Value())
	case "oneof":
		return fmt.Sprintf("unsupported value %q, expected one of: %s", fe.Value(), fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%v is out of range (%s %s)", fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

// IsValidMonth checks a single month key.
func IsValidMonth(month string) error {
	if month == "" {
		return &parsererror.ValidationError{Subject: "month", Reason: "month is required"}
	}
	return ValidateQuery(Query{Month: month})
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	if err := ValidateQuery(Query{Format: format}); err != nil || format == "" {
		return fmt.Errorf("unsupported output format: %s. Supported formats are %s",
			format, strings.Join(SupportedFormats, ", "))
	}
	return nil
}

// IsValidDirectory checks that path exists and is a directory.
func IsValidDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}
