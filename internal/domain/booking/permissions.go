package booking

import "time"

// Permissions is the set of actions currently legal on a booking. It is
// derived from status, the stay's date range, and the payment state relative
// to a reference instant, at calendar-day granularity.
type Permissions struct {
	CanConfirm        bool `json:"can_confirm"`
	CanCheckIn        bool `json:"can_check_in"`
	CanCheckOut       bool `json:"can_check_out"`
	CanConfirmPayment bool `json:"can_confirm_payment"`
	CanUpdate         bool `json:"can_update"`
	CanCancel         bool `json:"can_cancel"`
	CanDelete         bool `json:"can_delete"`
	IsPaid            bool `json:"is_paid"`
}

// ComputePermissions derives the permitted actions for a booking as of now.
// The stay is treated as the inclusive interval
// [startOfDay(startDate), endOfDay(endDate)].
func ComputePermissions(
	status BookingStatus,
	startDate, endDate time.Time,
	totalPrice, totalPaid int64,
	now time.Time,
) Permissions {
	start := Day(startDate)
	end := EndOfDay(endDate)
	today := Day(now)

	inRange := !today.Before(start) && !today.After(end)
	inFuture := today.Before(start)
	inPast := today.After(end)
	isPaid := totalPaid > 0 && totalPrice > 0 && totalPaid >= totalPrice

	return Permissions{
		CanCancel:         status == StatusPending || status == StatusConfirmed,
		CanConfirm:        status == StatusPending && (inFuture || inRange),
		CanCheckIn:        status == StatusConfirmed && inRange && isPaid,
		CanCheckOut:       status == StatusCheckedIn && (inRange || inPast) && isPaid,
		CanConfirmPayment: status == StatusConfirmed && inRange && !isPaid,
		CanUpdate:         status == StatusConfirmed && (inFuture || inRange),
		CanDelete:         status == StatusCanceled,
		IsPaid:            isPaid,
	}
}
