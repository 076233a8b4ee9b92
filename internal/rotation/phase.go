package rotation

import "time"

// NumberForMonth computes the phase number the target month falls in by
// pure calendar arithmetic: floor(monthsElapsed/participantCount)+1,
// floored at 1 for months before the club start. Degenerate inputs
// (no participants, zero start date) return 1 so read-only callers can
// degrade instead of failing; callers log the condition.
//
// The formula ignores awards months. Once an award has been emitted into
// the calendar, the generated schedule attributes phases itself (see
// Assignment.Phase); this function covers the no-awards calendar math
// and phase record date ranges.
func NumberForMonth(target, clubStart time.Time, participantCount int) int {
	if participantCount <= 0 || clubStart.IsZero() {
		return 1
	}
	elapsed := MonthsBetween(FirstOfMonth(clubStart), FirstOfMonth(target))
	if elapsed < 0 {
		return 1
	}
	return elapsed/participantCount + 1
}

// PhaseBounds returns the inclusive first-of-month start and end of the
// given phase: start = clubStart + (phaseNumber-1)*participantCount
// months, end = start + (participantCount-1) months.
func PhaseBounds(clubStart time.Time, phaseNumber, participantCount int) (time.Time, time.Time) {
	start := FirstOfMonth(clubStart).AddDate(0, (phaseNumber-1)*participantCount, 0)
	end := start.AddDate(0, participantCount-1, 0)
	return start, end
}
