package models

import (
	"fmt"
	"regexp"
	"time"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// MonthKey is a calendar month in YYYY-MM form. Keys order correctly as strings.
type MonthKey string

// IsMonthKey reports whether s has the YYYY-MM shape. It does not check the
// month range; that is ParseMonthKey's job.
func IsMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}

// ParseMonthKey validates s and returns it as a MonthKey.
func ParseMonthKey(s string) (MonthKey, error) {
	if !IsMonthKey(s) {
		return "", fmt.Errorf("invalid month key %q: expected YYYY-MM", s)
	}
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return MonthKey(s), nil
}

// MonthKeyOf returns the month key containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// Time returns midnight UTC on the first day of the month. Invalid keys yield
// the zero time.
func (m MonthKey) Time() time.Time {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddMonths returns the key n months after m (n may be negative).
func (m MonthKey) AddMonths(n int) MonthKey {
	t := m.Time()
	if t.IsZero() {
		return m
	}
	return MonthKeyOf(t.AddDate(0, n, 0))
}

// Valid reports whether m is a well-formed month key.
func (m MonthKey) Valid() bool {
	_, err := ParseMonthKey(string(m))
	return err == nil
}

func (m MonthKey) String() string {
	return string(m)
}
