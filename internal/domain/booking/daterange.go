package booking

import "time"

// DateRange is a calendar-day interval. A zero From or To means the endpoint
// has not been chosen yet.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Day truncates t to midnight in its location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// CalendarDays returns the whole-day difference to - from.
func CalendarDays(from, to time.Time) int {
	f := Day(from)
	t := Day(to)
	return int(t.Sub(f).Hours() / 24)
}

// Shrink trims one day off each end of the range. Occupied ranges read from
// the store are shrunk so a checkout day doubles as the next check-in day.
func (r DateRange) Shrink() DateRange {
	return DateRange{
		From: r.From.AddDate(0, 0, 1),
		To:   r.To.AddDate(0, 0, -1),
	}
}

// RangeDisabled reports whether a candidate stay collides with any occupied
// range. A candidate missing either endpoint never conflicts; there is
// nothing to check yet. A collision is the candidate's end falling inside an
// occupied range (inclusive of both endpoints), or the candidate strictly
// spanning the occupied range.
func RangeDisabled(candidate DateRange, occupied []DateRange) bool {
	if candidate.From.IsZero() || candidate.To.IsZero() {
		return false
	}

	to := Day(candidate.To)
	from := Day(candidate.From)

	for _, r := range occupied {
		rFrom := Day(r.From)
		rTo := Day(r.To)

		withinInterval := !to.Before(rFrom) && !to.After(rTo)
		spansInterval := to.After(rTo) && from.Before(rTo)

		if withinInterval || spansInterval {
			return true
		}
	}
	return false
}
