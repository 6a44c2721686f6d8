package statement

import (
	"fmt"
	"time"
)

var monthNames = map[string]time.Month{
	"January": time.January, "February": time.February, "March": time.March,
	"April": time.April, "May": time.May, "June": time.June,
	"July": time.July, "August": time.August, "September": time.September,
	"October": time.October, "November": time.November, "December": time.December,
}

// fiscalStartMonth maps a month name to its number, defaulting to
// January for anything unrecognized.
func fiscalStartMonth(name string) time.Month {
	if m, ok := monthNames[name]; ok {
		return m
	}
	return time.January
}

// parseDate reads an ISO date, falling back to the given default.
func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

// fiscalYearOf returns the fiscal year a date falls in: dates before
// the fiscal start month belong to the prior year's cycle.
func fiscalYearOf(date time.Time, fiscalMonth time.Month) int {
	if date.Month() >= fiscalMonth {
		return date.Year()
	}
	return date.Year() - 1
}

// yearLabels builds the display labels, e.g. "FY2026-April".
func yearLabels(baseYear, count int, fiscalStart string) []string {
	if fiscalStart == "" {
		fiscalStart = "January"
	}
	labels := make([]string, count)
	for i := range labels {
		labels[i] = fmt.Sprintf("FY%d-%s", baseYear+i, fiscalStart)
	}
	return labels
}
