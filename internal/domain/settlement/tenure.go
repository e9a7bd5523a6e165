package settlement

import "time"

// normalizeDate drops the time-of-day component so that timestamps never
// perturb day counts.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysWorked returns the inclusive day count between hire and termination.
// Same-day hire and termination counts as one day; inverted ranges floor at 0.
func DaysWorked(hireDate, terminationDate time.Time) int {
	hire := normalizeDate(hireDate)
	term := normalizeDate(terminationDate)
	if term.Before(hire) {
		return 0
	}
	return int(term.Sub(hire).Hours()/24) + 1
}

// YearsWorked returns continuous (non-truncated) years of service using the
// 365.25 convention. Callers needing whole-year seniority caps truncate at
// the call site.
func YearsWorked(hireDate, terminationDate time.Time) float64 {
	hire := normalizeDate(hireDate)
	term := normalizeDate(terminationDate)
	if term.Before(hire) {
		return 0
	}
	return term.Sub(hire).Hours() / 24 / 365.25
}

// daysInAnniversaryYear counts the days worked in the labor year containing
// the termination date, where the year resets on each hire anniversary.
func daysInAnniversaryYear(hireDate, terminationDate time.Time) int {
	hire := normalizeDate(hireDate)
	term := normalizeDate(terminationDate)
	if term.Before(hire) {
		return 0
	}
	anniversary := time.Date(term.Year(), hire.Month(), hire.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.After(term) {
		anniversary = time.Date(term.Year()-1, hire.Month(), hire.Day(), 0, 0, 0, 0, time.UTC)
	}
	if anniversary.Before(hire) {
		anniversary = hire
	}
	return DaysWorked(anniversary, term)
}

// daysInCalendarYear counts the days worked in the calendar year of the
// termination date. Resets January 1 regardless of anniversary; this is the
// aguinaldo proration base and must not share the vacation code path.
func daysInCalendarYear(hireDate, terminationDate time.Time) int {
	hire := normalizeDate(hireDate)
	term := normalizeDate(terminationDate)
	if term.Before(hire) {
		return 0
	}
	start := time.Date(term.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if start.Before(hire) {
		start = hire
	}
	return DaysWorked(start, term)
}
