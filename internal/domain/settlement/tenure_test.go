package settlement

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysWorkedSameDay(t *testing.T) {
	d := date(2024, time.June, 30)
	if got := DaysWorked(d, d); got != 1 {
		t.Fatalf("expected 1 day, got %v", got)
	}
}

func TestDaysWorkedInclusive(t *testing.T) {
	if got := DaysWorked(date(2024, time.January, 1), date(2024, time.January, 3)); got != 3 {
		t.Fatalf("expected 3 days, got %v", got)
	}
}

func TestDaysWorkedFloorsAtZero(t *testing.T) {
	if got := DaysWorked(date(2024, time.February, 1), date(2024, time.January, 1)); got != 0 {
		t.Fatalf("expected 0 for inverted range, got %v", got)
	}
}

func TestDaysWorkedIgnoresTimeOfDay(t *testing.T) {
	hire := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)
	term := time.Date(2024, time.January, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysWorked(hire, term); got != 2 {
		t.Fatalf("expected 2 days regardless of time-of-day, got %v", got)
	}
}

func TestYearsWorked(t *testing.T) {
	got := YearsWorked(date(2020, time.January, 1), date(2024, time.June, 30))
	want := 1642.0 / 365.25
	if got != want {
		t.Fatalf("expected %v years, got %v", want, got)
	}

	if got := YearsWorked(date(2024, time.June, 30), date(2024, time.June, 30)); got != 0 {
		t.Fatalf("expected 0 years for same-day, got %v", got)
	}
	if got := YearsWorked(date(2024, time.June, 30), date(2020, time.January, 1)); got != 0 {
		t.Fatalf("expected 0 years for inverted range, got %v", got)
	}
}

func TestDaysInAnniversaryYear(t *testing.T) {
	// Hire anniversary resets the labor year; Jan 1 hire puts the reset on Jan 1.
	if got := daysInAnniversaryYear(date(2020, time.January, 1), date(2024, time.June, 30)); got != 182 {
		t.Fatalf("expected 182 days since anniversary, got %v", got)
	}
	// Anniversary later in the year falls back to the prior year's anniversary.
	if got := daysInAnniversaryYear(date(2020, time.August, 15), date(2024, time.June, 30)); got != DaysWorked(date(2023, time.August, 15), date(2024, time.June, 30)) {
		t.Fatalf("unexpected anniversary-year day count: %v", got)
	}
	// First year: counts from hire, not from a nonexistent anniversary.
	if got := daysInAnniversaryYear(date(2024, time.March, 1), date(2024, time.June, 30)); got != DaysWorked(date(2024, time.March, 1), date(2024, time.June, 30)) {
		t.Fatalf("unexpected first-year day count: %v", got)
	}
}

func TestDaysInCalendarYearResetsJanuaryFirst(t *testing.T) {
	// Aguinaldo proration ignores the hire anniversary entirely.
	if got := daysInCalendarYear(date(2020, time.August, 15), date(2024, time.June, 30)); got != 182 {
		t.Fatalf("expected 182 calendar-year days, got %v", got)
	}
	// Hired mid-year: counts from hire.
	if got := daysInCalendarYear(date(2024, time.March, 1), date(2024, time.June, 30)); got != 122 {
		t.Fatalf("expected 122 days, got %v", got)
	}
}
