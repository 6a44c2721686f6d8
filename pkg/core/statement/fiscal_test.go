package statement

import (
	"testing"
	"time"
)

func TestFiscalYearOf(t *testing.T) {
	mar := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got := fiscalYearOf(mar, time.January); got != 2026 {
		t.Errorf("March in a January fiscal year: expected 2026, got %d", got)
	}
	if got := fiscalYearOf(mar, time.April); got != 2025 {
		t.Errorf("March in an April fiscal year: expected 2025, got %d", got)
	}
	apr := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	if got := fiscalYearOf(apr, time.April); got != 2026 {
		t.Errorf("April 1 starts the new fiscal year: expected 2026, got %d", got)
	}
}

func TestYearLabels(t *testing.T) {
	labels := yearLabels(2026, 3, "April")
	want := []string{"FY2026-April", "FY2027-April", "FY2028-April"}
	for i, w := range want {
		if labels[i] != w {
			t.Errorf("Label %d: expected %s, got %s", i, w, labels[i])
		}
	}
	// Unknown start month falls back to January.
	labels = yearLabels(2026, 1, "")
	if labels[0] != "FY2026-January" {
		t.Errorf("Expected FY2026-January fallback, got %s", labels[0])
	}
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	d := parseDate("2025-11-30", fallback)
	if d.Year() != 2025 || d.Month() != time.November {
		t.Errorf("Expected 2025-11-30, got %v", d)
	}
	d = parseDate("2025-11-30T00:00:00Z", fallback)
	if d.Year() != 2025 {
		t.Errorf("Expected RFC3339 parse, got %v", d)
	}
	if d := parseDate("not-a-date", fallback); !d.Equal(fallback) {
		t.Errorf("Expected fallback for garbage input, got %v", d)
	}
	if d := parseDate("", fallback); !d.Equal(fallback) {
		t.Errorf("Expected fallback for empty input, got %v", d)
	}
}

func TestFiscalStartMonth(t *testing.T) {
	if m := fiscalStartMonth("July"); m != time.July {
		t.Errorf("Expected July, got %v", m)
	}
	if m := fiscalStartMonth("nonsense"); m != time.January {
		t.Errorf("Expected January default, got %v", m)
	}
}
