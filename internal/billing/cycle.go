// Package billing holds the pure billing-cycle and price-composition logic.
// Nothing here touches storage or the clock; callers pass every instant in.
package billing

import "time"

// AddMonths advances t by n whole calendar months, preserving the clock time
// (hour through nanosecond) and the day of month. Days past the end of a
// shorter target month clamp to its last day: Jan 31 + 1 month = Feb 28
// (Feb 29 in leap years). The day is re-taken from t on every call, so
// clamping never sticks - Jan 31 + 2 months is Mar 31, not Mar 28.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	ty, tm := normalizeMonth(y, m+time.Month(n))
	if last := daysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// NextCutAfter returns the anchor advanced by the smallest non-negative whole
// number of months that lands strictly after ref. An anchor already past ref
// is returned as-is; an anchor equal to ref advances one month.
func NextCutAfter(anchor, ref time.Time) time.Time {
	cut := anchor
	for n := 1; !cut.After(ref); n++ {
		cut = AddMonths(anchor, n)
	}
	return cut
}

// OnAnchorDay reports whether now falls on the anchor's day of month,
// regardless of month and year. Adding a service on the cycle-anchor day
// activates it immediately instead of waiting for the next cut.
func OnAnchorDay(anchor, now time.Time) bool {
	return anchor.Day() == now.Day()
}

func normalizeMonth(y int, m time.Month) (int, time.Month) {
	t := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// daysIn returns the number of days in the given month; day 0 of the next
// month is its last day.
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
