// Package dateutils provides the date parsing and calendar helpers used by the
// enrichment and aggregation stages.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted in statement exports.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
	DateLayoutDotted    = "02.01.2006"
	DateLayoutDashed    = "02-01-2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutISOTime   = "2006-01-02T15:04:05"
)

// CommonFormats is tried in order. Day-first layouts come before anything
// month-first because the exports are Brazilian.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutBrazilian,
	DateLayoutDotted,
	DateLayoutDashed,
	DateLayoutFull,
	DateLayoutISOTime,
	time.RFC3339,
	"2/1/2006",
	"2.1.2006",
}

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims whitespace and surrounding quotes.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	dateStr = strings.Trim(dateStr, `"'`)
	return strings.TrimSpace(dateStr)
}

// FormatDate formats a time.Time value according to the specified layout
// If no layout is provided, DateLayoutISO is used
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// MondayFirstIndex maps a weekday to 0 for Monday through 6 for Sunday.
func MondayFirstIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// WeekdayNames lists the weekdays Monday first, as used in reports.
var WeekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}
