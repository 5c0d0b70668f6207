package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	ShortDashDateLayout = "2006-01-02"
	MonthLayout         = "2006-01"
)

// statementDateLayouts covers the date formats seen across institution
// exports. Day-first layouts come before month-first ones so European bank
// statements win on ambiguous input.
var statementDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// ParseStatementDate parses a raw date cell from a statement row, trying each
// known layout in order.
func ParseStatementDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range statementDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", raw)
}

// MonthKey returns the year-month grouping key of a date, e.g. "2024-03".
func MonthKey(date time.Time) string {
	return date.Format(MonthLayout)
}

// ParseMonth parses a "YYYY-MM" month key.
func ParseMonth(raw string) (time.Time, error) {
	return time.Parse(MonthLayout, strings.TrimSpace(raw))
}
