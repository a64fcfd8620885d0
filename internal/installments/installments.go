// Package installments extracts (current, total) installment counters from the
// free-form tokens found in card statements: "01/10", "1 de 10", "12", "12.0".
package installments

import (
	"regexp"
	"strconv"
	"strings"

	"fjacquet/ledger-csv/internal/currencyutils"

	"github.com/shopspring/decimal"
)

var digitRun = regexp.MustCompile(`\d+`)

// Total returns the total installment count encoded in token.
//
// An integer-valued number >= 1 is returned as is. A non-integer decimal (a cents
// value in the wrong column) means "not an installment" and yields 1. Otherwise
// the last digit run wins, so "01/10" and "1 de 10" both give 10.
func Total(token string) int {
	if n, ok := directInt(token); ok {
		return n
	}
	if d, ok := currencyutils.ParseAmount(token); ok && strings.TrimSpace(token) != "" && !currencyutils.IsIntegral(d) {
		return 1
	}
	runs := digitRun.FindAllString(token, -1)
	if len(runs) == 0 {
		return 1
	}
	return atLeastOne(runs[len(runs)-1])
}

// Current returns the current installment number encoded in token. The first
// digit run wins, so "01/10" gives 1.
func Current(token string) int {
	if n, ok := directInt(token); ok {
		return n
	}
	run := digitRun.FindString(token)
	if run == "" {
		return 1
	}
	return atLeastOne(run)
}

// Parse splits a combined token such as "03/12" into (current, total).
func Parse(token string) (current, total int) {
	return Current(token), Total(token)
}

// directInt parses tokens like "12" or "12.0" that are already a whole number.
func directInt(token string) (int, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !currencyutils.IsIntegral(d) || d.LessThan(decimal.NewFromInt(1)) {
		return 0, false
	}
	if !d.LessThanOrEqual(decimal.NewFromInt(int64(maxInt))) {
		return 0, false
	}
	return int(d.IntPart()), true
}

const maxInt = int(^uint32(0) >> 1)

func atLeastOne(run string) int {
	n, err := strconv.Atoi(run)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
