package booking

import "time"

// Quote is the priced outcome for a candidate stay, in cents.
type Quote struct {
	CabinPrice     int64 `json:"cabin_price"`
	BreakfastPrice int64 `json:"breakfast_price"`
}

// Total returns the stay total. Breakfast is already zero when not taken.
func (q Quote) Total() int64 {
	return q.CabinPrice + q.BreakfastPrice
}

// ComputeQuote prices a stay. Nights are the calendar-day difference between
// the range endpoints; a missing To collapses to From (zero nights), a missing
// From falls back to now. Zero or negative nights price to zero rather than
// erroring; night-count bounds are the form validator's concern.
//
// The function is pure: same inputs, same quote, no state.
func ComputeQuote(
	pricePerNight, discountPerNight int64,
	dates DateRange,
	isBreakfast bool,
	numOfGuests int,
	breakfastUnitPrice int64,
	now time.Time,
) Quote {
	from := dates.From
	if from.IsZero() {
		from = now
	}
	to := dates.To
	if to.IsZero() {
		to = dates.From
	}
	if to.IsZero() {
		to = now
	}

	nights := CalendarDays(from, to)
	if nights <= 0 {
		return Quote{}
	}

	q := Quote{
		CabinPrice: int64(nights) * (pricePerNight - discountPerNight),
	}
	if isBreakfast {
		q.BreakfastPrice = breakfastUnitPrice * int64(numOfGuests) * int64(nights)
	}
	return q
}
