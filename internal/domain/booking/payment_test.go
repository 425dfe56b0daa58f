package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileViewUnpaidBooking(t *testing.T) {
	buckets := ReconcileView(ViewSnapshot{
		IsBreakfast:    true,
		CabinPrice:     27000,
		BreakfastPrice: 12000,
	})

	assert.Equal(t, Bucket{
		{Label: LabelCabin, Price: 27000},
		{Label: LabelBreakfast, Price: 12000},
	}, buckets.Pending)
	assert.Nil(t, buckets.Confirmed)
	assert.Nil(t, buckets.Refunded)
	assert.True(t, buckets.Pending.Visible())
	assert.Equal(t, int64(39000), buckets.Pending.Total())
}

func TestReconcileViewFullyPaid(t *testing.T) {
	buckets := ReconcileView(ViewSnapshot{
		IsBreakfast:    true,
		CabinPrice:     27000,
		CabinPaid:      27000,
		BreakfastPrice: 12000,
		BreakfastPaid:  12000,
	})

	assert.Nil(t, buckets.Pending)
	assert.Equal(t, Bucket{
		{Label: LabelCabin, Price: 27000},
		{Label: LabelBreakfast, Price: 12000},
	}, buckets.Confirmed)
	assert.Nil(t, buckets.Refunded)
}

func TestReconcileViewPartiallyPaid(t *testing.T) {
	buckets := ReconcileView(ViewSnapshot{
		CabinPrice: 27000,
		CabinPaid:  10000,
	})

	assert.Equal(t, Bucket{{Label: LabelCabin, Price: 17000}}, buckets.Pending)
	assert.Equal(t, Bucket{{Label: LabelCabin, Price: 10000}}, buckets.Confirmed)
}

func TestReconcileViewStaleBreakfastPayment(t *testing.T) {
	// Breakfast was paid for, then dropped from the booking: the paid amount
	// shows as owed back.
	buckets := ReconcileView(ViewSnapshot{
		IsBreakfast:   false,
		CabinPrice:    27000,
		CabinPaid:     27000,
		BreakfastPaid: 5000,
	})

	assert.Equal(t, Bucket{{Label: LabelBreakfast, Price: 5000}}, buckets.Refunded)
	assert.Equal(t, Bucket{
		{Label: LabelCabin, Price: 27000},
		{Label: LabelBreakfast, Price: 5000},
	}, buckets.Confirmed)
}

func TestReconcileViewExplicitRefundWins(t *testing.T) {
	// A recorded breakfast refund overrides the derived stale-payment amount
	// under the same label.
	buckets := ReconcileView(ViewSnapshot{
		IsBreakfast:     false,
		BreakfastPaid:   5000,
		BreakfastRefund: 3000,
	})

	assert.Equal(t, Bucket{{Label: LabelBreakfast, Price: 3000}}, buckets.Refunded)
}

func TestReconcileViewIdempotent(t *testing.T) {
	snapshot := ViewSnapshot{
		IsBreakfast:    true,
		CabinPrice:     27000,
		CabinPaid:      10000,
		BreakfastPrice: 12000,
		BreakfastPaid:  12000,
		CabinRefund:    2000,
	}

	assert.Equal(t, ReconcileView(snapshot), ReconcileView(snapshot))
}

func TestReconcileEditRepricedBelowPaid(t *testing.T) {
	// 100 paid, repriced to 60: the guest is owed 40, nothing is pending.
	buckets := ReconcileEdit(EditSnapshot{
		ViewSnapshot:  ViewSnapshot{CabinPrice: 10000, CabinPaid: 10000},
		NewCabinPrice: 6000,
	})

	assert.Nil(t, buckets.Pending)
	assert.Equal(t, Bucket{{Label: LabelCabin, Price: 4000}}, buckets.Refunded)
	assert.Equal(t, Bucket{{Label: LabelCabin, Price: 10000}}, buckets.Confirmed)
}

func TestReconcileEditRepricedAbovePaid(t *testing.T) {
	buckets := ReconcileEdit(EditSnapshot{
		ViewSnapshot:  ViewSnapshot{CabinPrice: 10000, CabinPaid: 10000},
		NewCabinPrice: 15000,
	})

	assert.Equal(t, Bucket{{Label: LabelCabin, Price: 5000}}, buckets.Pending)
	assert.Nil(t, buckets.Refunded)
}

func TestReconcileEditDroppedBreakfastRefundsFullPaid(t *testing.T) {
	buckets := ReconcileEdit(EditSnapshot{
		ViewSnapshot: ViewSnapshot{
			IsBreakfast:   true,
			BreakfastPaid: 2000,
		},
		IsNewBreakfast: false,
	})

	assert.Equal(t, Bucket{{Label: LabelBreakfast, Price: 2000}}, buckets.Refunded)
}

func TestReconcileEditNewBreakfastPending(t *testing.T) {
	buckets := ReconcileEdit(EditSnapshot{
		ViewSnapshot:      ViewSnapshot{CabinPrice: 10000, CabinPaid: 10000},
		IsNewBreakfast:    true,
		NewCabinPrice:     10000,
		NewBreakfastPrice: 4000,
	})

	assert.Equal(t, Bucket{{Label: LabelBreakfast, Price: 4000}}, buckets.Pending)
}

func TestBucketVisibility(t *testing.T) {
	assert.False(t, Bucket(nil).Visible())
	assert.False(t, Bucket{{Label: LabelCabin, Price: 0}}.Visible())
	assert.True(t, Bucket{{Label: LabelCabin, Price: 1}}.Visible())
}
