// Package textutils provides text normalization helpers for free-text columns
// and header names.
package textutils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaces      = regexp.MustCompile(`\s+`)
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
	nanLiterals = map[string]struct{}{"nan": {}, "none": {}, "null": {}, "<na>": {}}
)

// TitleCase trims s, collapses inner whitespace and title-cases it using
// Brazilian Portuguese rules. A Caser is not safe for concurrent use, so one is
// built per call.
func TitleCase(s string) string {
	s = CollapseSpaces(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(s)
}

// CollapseSpaces trims s and replaces runs of whitespace with a single space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// FoldAccents removes combining marks: "Mês" becomes "Mes".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// HeaderKey reduces a column header to a comparison key: accents folded,
// lower-cased, and every non-alphanumeric run removed. "Mês/Ano" and "mes_ano"
// both become "mesano".
func HeaderKey(s string) string {
	s = strings.ToLower(FoldAccents(strings.TrimSpace(s)))
	return nonAlnum.ReplaceAllString(s, "")
}

// IsBlank reports whether s is empty or one of the textual null markers that
// spreadsheet exports write for missing cells ("nan", "None", "null").
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, ok := nanLiterals[strings.ToLower(s)]
	return ok
}
