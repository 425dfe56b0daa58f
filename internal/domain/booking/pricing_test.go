package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuote(t *testing.T) {
	now := date(2026, 8, 1)

	tests := []struct {
		name          string
		price         int64
		discount      int64
		dates         DateRange
		isBreakfast   bool
		guests        int
		breakfastUnit int64
		want          Quote
	}{
		{
			name:          "three nights with breakfast for two",
			price:         9000,
			dates:         DateRange{From: date(2026, 8, 10), To: date(2026, 8, 13)},
			isBreakfast:   true,
			guests:        2,
			breakfastUnit: 2000,
			want:          Quote{CabinPrice: 27000, BreakfastPrice: 12000},
		},
		{
			name:   "discount applies per night",
			price:  9000, discount: 1500,
			dates:  DateRange{From: date(2026, 8, 10), To: date(2026, 8, 12)},
			guests: 2,
			want:   Quote{CabinPrice: 15000},
		},
		{
			name:   "no breakfast means no breakfast charge",
			price:  9000,
			dates:  DateRange{From: date(2026, 8, 10), To: date(2026, 8, 11)},
			guests: 4, breakfastUnit: 2000,
			want: Quote{CabinPrice: 9000},
		},
		{
			name:   "missing to collapses to zero nights",
			price:  9000,
			dates:  DateRange{From: date(2026, 8, 10)},
			guests: 2,
			want:   Quote{},
		},
		{
			name:   "empty range collapses to zero nights",
			price:  9000,
			guests: 2,
			want:   Quote{},
		},
		{
			name:   "reversed range prices to zero",
			price:  9000,
			dates:  DateRange{From: date(2026, 8, 13), To: date(2026, 8, 10)},
			guests: 2,
			want:   Quote{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQuote(tt.price, tt.discount, tt.dates, tt.isBreakfast, tt.guests, tt.breakfastUnit, now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.CabinPrice+tt.want.BreakfastPrice, got.Total())
		})
	}
}

func TestComputeQuoteMonotonicInNights(t *testing.T) {
	now := date(2026, 8, 1)
	from := date(2026, 8, 10)

	var prev int64
	for nights := 1; nights <= 30; nights++ {
		dates := DateRange{From: from, To: from.AddDate(0, 0, nights)}
		q := ComputeQuote(9000, 500, dates, true, 2, 2000, now)
		assert.Greater(t, q.Total(), prev, "total must grow with nights (%d)", nights)
		prev = q.Total()
	}
}

func TestComputeQuoteIsPure(t *testing.T) {
	now := time.Now()
	dates := DateRange{From: date(2026, 8, 10), To: date(2026, 8, 13)}

	first := ComputeQuote(9000, 0, dates, true, 2, 2000, now)
	second := ComputeQuote(9000, 0, dates, true, 2, 2000, now)
	assert.Equal(t, first, second)
}
