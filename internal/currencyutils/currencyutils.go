// Package currencyutils normalizes monetary tokens written in Brazilian or
// international notation and formats amounts for display.
package currencyutils

import (
	"math"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// currencyMarks are stripped before parsing. Longer prefixes come first so that
// "US$" and "R$" are removed whole.
var currencyMarks = []string{"US$", "R$", "BRL", "USD", "EUR", "$", "€", "£"}

var whitespace = regexp.MustCompile(`[\s\x{00A0}]+`)

// Normalize converts a raw monetary value into a decimal. Numeric inputs pass
// through (NaN and infinities become 0). Strings are cleaned and parsed with
// ParseAmount. The boolean is false when the value could not be understood;
// callers substitute 0 in that case.
func Normalize(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, true
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, true
		}
		return *n, true
	case float64:
		return fromFloat(n), true
	case float32:
		return fromFloat(float64(n)), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		return ParseAmount(n)
	default:
		return decimal.Zero, false
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ParseAmount parses a monetary string such as "R$ 1.234,56", "1,234.56" or
// "100,50". Empty strings and "nan" are 0. The boolean is false for tokens that
// are still not numbers after cleaning.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	s := StandardizeAmount(amountStr)
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// StandardizeAmount strips currency marks and whitespace and rewrites the token
// with "." as the only decimal separator.
//
// Brazilian form is recognized when the token has at least one "." and exactly
// one "," placed after the last "." ("1.234,56"). A comma with no dot is a
// decimal comma ("100,50"). When commas precede the dot they are thousands
// separators ("1,234.56").
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(amountStr)
	for _, mark := range currencyMarks {
		s = strings.ReplaceAll(s, mark, "")
	}
	s = whitespace.ReplaceAllString(s, "")

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots >= 1 && commas == 1 && strings.LastIndex(s, ",") > strings.LastIndex(s, "."):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case commas >= 1 && dots == 0:
		s = strings.ReplaceAll(s, ",", ".")
	case commas >= 1 && strings.LastIndex(s, ",") < strings.LastIndex(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	}

	return s
}

// IsIntegral reports whether d has no fractional part.
func IsIntegral(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

// FormatAmount formats a decimal amount with two decimal places and the
// currency's symbol or code, e.g. "R$ 1234.56" or "$1234.56".
func FormatAmount(amount decimal.Decimal, currency string) string {
	return Symbol(currency) + amount.StringFixed(2)
}

// FormatGrouped is FormatAmount with thousands grouping. Real amounts use the
// Brazilian separators ("R$ 1.234,56"); every other currency uses "1,234.56".
func FormatGrouped(amount decimal.Decimal, currency string) string {
	pattern := "#,###.##"
	if strings.EqualFold(currency, "BRL") {
		pattern = "#.###,##"
	}
	f, _ := amount.Round(2).Float64()
	return Symbol(currency) + humanize.FormatFloat(pattern, f)
}

// Symbol returns the display prefix of a currency, including any separating space.
func Symbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "":
		return ""
	case "BRL":
		return "R$ "
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	default:
		return strings.ToUpper(currency) + " "
	}
}

// Sum adds up amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percent returns part/whole*100 rounded to two places, or 0 when whole is 0.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}
