package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinecove/cabin-console/internal/domain"
)

// Booking is the aggregate root for a cabin reservation: one cabin, one
// guest, a contiguous date range, and the money reconciliation state.
type Booking struct {
	id          uuid.UUID
	status      BookingStatus
	startDate   time.Time
	endDate     time.Time
	numOfGuests int
	cabinID     uuid.UUID
	guestID     uuid.UUID
	isBreakfast bool

	cabinPrice      int64
	cabinPaid       int64
	cabinRefund     int64
	breakfastPrice  int64
	breakfastPaid   int64
	breakfastRefund int64
	totalPrice      int64
	totalPaid       int64
	totalRefund     int64

	observations string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status=pending and no
// payment history. Dates are truncated to calendar days.
func NewBooking(
	cabinID, guestID uuid.UUID,
	startDate, endDate time.Time,
	numOfGuests int,
	isBreakfast bool,
	quote Quote,
	observations string,
) (*Booking, error) {
	if cabinID == uuid.Nil {
		return nil, domain.NewValidationError("cabin ID is required")
	}
	if guestID == uuid.Nil {
		return nil, domain.NewValidationError("guest ID is required")
	}
	if numOfGuests <= 0 {
		return nil, domain.NewValidationError("number of guests must be positive")
	}
	if endDate.Before(startDate) {
		return nil, domain.NewValidationError("end date must not precede start date")
	}
	if quote.CabinPrice < 0 || quote.BreakfastPrice < 0 {
		return nil, domain.NewValidationError("prices must not be negative")
	}

	now := time.Now().UTC()
	return &Booking{
		id:             uuid.New(),
		status:         StatusPending,
		startDate:      Day(startDate),
		endDate:        Day(endDate),
		numOfGuests:    numOfGuests,
		cabinID:        cabinID,
		guestID:        guestID,
		isBreakfast:    isBreakfast,
		cabinPrice:     quote.CabinPrice,
		breakfastPrice: quote.BreakfastPrice,
		totalPrice:     quote.Total(),
		observations:   observations,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	status BookingStatus,
	startDate, endDate time.Time,
	numOfGuests int,
	cabinID, guestID uuid.UUID,
	isBreakfast bool,
	cabinPrice, cabinPaid, cabinRefund int64,
	breakfastPrice, breakfastPaid, breakfastRefund int64,
	totalPrice, totalPaid, totalRefund int64,
	observations string,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		status:          status,
		startDate:       startDate,
		endDate:         endDate,
		numOfGuests:     numOfGuests,
		cabinID:         cabinID,
		guestID:         guestID,
		isBreakfast:     isBreakfast,
		cabinPrice:      cabinPrice,
		cabinPaid:       cabinPaid,
		cabinRefund:     cabinRefund,
		breakfastPrice:  breakfastPrice,
		breakfastPaid:   breakfastPaid,
		breakfastRefund: breakfastRefund,
		totalPrice:      totalPrice,
		totalPaid:       totalPaid,
		totalRefund:     totalRefund,
		observations:    observations,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// StartDate returns the first day of the stay.
func (b *Booking) StartDate() time.Time { return b.startDate }

// EndDate returns the last day of the stay.
func (b *Booking) EndDate() time.Time { return b.endDate }

// Dates returns the stay as a DateRange.
func (b *Booking) Dates() DateRange { return DateRange{From: b.startDate, To: b.endDate} }

// NumOfGuests returns the guest count for the stay.
func (b *Booking) NumOfGuests() int { return b.numOfGuests }

// CabinID returns the reserved cabin's ID.
func (b *Booking) CabinID() uuid.UUID { return b.cabinID }

// GuestID returns the booking guest's ID.
func (b *Booking) GuestID() uuid.UUID { return b.guestID }

// IsBreakfast reports whether breakfast is included.
func (b *Booking) IsBreakfast() bool { return b.isBreakfast }

// CabinPrice returns the cabin component price in cents.
func (b *Booking) CabinPrice() int64 { return b.cabinPrice }

// CabinPaid returns the cabin amount already paid in cents.
func (b *Booking) CabinPaid() int64 { return b.cabinPaid }

// CabinRefund returns the cabin amount owed back in cents.
func (b *Booking) CabinRefund() int64 { return b.cabinRefund }

// BreakfastPrice returns the breakfast component price in cents.
func (b *Booking) BreakfastPrice() int64 { return b.breakfastPrice }

// BreakfastPaid returns the breakfast amount already paid in cents.
func (b *Booking) BreakfastPaid() int64 { return b.breakfastPaid }

// BreakfastRefund returns the breakfast amount owed back in cents.
func (b *Booking) BreakfastRefund() int64 { return b.breakfastRefund }

// TotalPrice returns the stay total in cents.
func (b *Booking) TotalPrice() int64 { return b.totalPrice }

// TotalPaid returns the total amount already paid in cents.
func (b *Booking) TotalPaid() int64 { return b.totalPaid }

// TotalRefund returns the total amount owed back in cents.
func (b *Booking) TotalRefund() int64 { return b.totalRefund }

// Observations returns the free-text notes attached to the booking.
func (b *Booking) Observations() string { return b.observations }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Permissions derives the actions legal on this booking as of now.
func (b *Booking) Permissions(now time.Time) Permissions {
	return ComputePermissions(b.status, b.startDate, b.endDate, b.totalPrice, b.totalPaid, now)
}

// MoneySnapshot returns the booking's persisted money state for reconciliation.
func (b *Booking) MoneySnapshot() ViewSnapshot {
	return ViewSnapshot{
		IsBreakfast:     b.isBreakfast,
		CabinPrice:      b.cabinPrice,
		CabinPaid:       b.cabinPaid,
		CabinRefund:     b.cabinRefund,
		BreakfastPrice:  b.breakfastPrice,
		BreakfastPaid:   b.breakfastPaid,
		BreakfastRefund: b.breakfastRefund,
	}
}

// --- Behavior ---

// Confirm transitions the booking from pending to confirmed. Allowed while
// the stay has not ended.
func (b *Booking) Confirm(now time.Time) error {
	if !b.Permissions(now).CanConfirm {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.touch()
	return nil
}

// CheckIn transitions the booking from confirmed to checked-in. Requires the
// stay to be in progress and the booking fully paid.
func (b *Booking) CheckIn(now time.Time) error {
	if !b.Permissions(now).CanCheckIn {
		return domain.NewInvalidStateError(string(b.status), string(StatusCheckedIn))
	}
	b.status = StatusCheckedIn
	b.touch()
	return nil
}

// CheckOut transitions the booking from checked-in to checked-out. Requires
// the stay to be in progress or over, and the booking fully paid.
func (b *Booking) CheckOut(now time.Time) error {
	if !b.Permissions(now).CanCheckOut {
		return domain.NewInvalidStateError(string(b.status), string(StatusCheckedOut))
	}
	b.status = StatusCheckedOut
	b.touch()
	return nil
}

// ConfirmPayment settles the outstanding balance: each component's paid
// amount is set to its price, breakfast only when included.
func (b *Booking) ConfirmPayment(now time.Time) error {
	if !b.Permissions(now).CanConfirmPayment {
		return domain.NewInvalidStateError(string(b.status), "paid")
	}
	b.cabinPaid = b.cabinPrice
	b.totalPaid = b.totalPrice
	if b.isBreakfast {
		b.breakfastPaid = b.breakfastPrice
	}
	b.touch()
	return nil
}

// Cancel transitions a pending or confirmed booking to canceled, marking
// everything already paid as refunded.
func (b *Booking) Cancel(now time.Time) error {
	if !b.Permissions(now).CanCancel {
		return domain.NewInvalidStateError(string(b.status), string(StatusCanceled))
	}
	b.status = StatusCanceled
	b.cabinRefund = b.cabinPaid
	b.totalRefund = b.totalPaid
	if b.isBreakfast {
		b.breakfastRefund = b.breakfastPaid
	}
	b.touch()
	return nil
}

// ApplyUpdate reprices a confirmed booking from the edit form. New prices
// replace the old ones; whenever a new price undercuts what was already paid
// the difference becomes a refund, and a dropped breakfast refunds its full
// paid amount.
func (b *Booking) ApplyUpdate(
	cabinID uuid.UUID,
	startDate, endDate time.Time,
	numOfGuests int,
	isBreakfast bool,
	quote Quote,
	observations string,
	now time.Time,
) error {
	if !b.Permissions(now).CanUpdate {
		return domain.NewInvalidStateError(string(b.status), string(b.status))
	}
	if cabinID == uuid.Nil {
		return domain.NewValidationError("cabin ID is required")
	}
	if numOfGuests <= 0 {
		return domain.NewValidationError("number of guests must be positive")
	}
	if endDate.Before(startDate) {
		return domain.NewValidationError("end date must not precede start date")
	}

	newTotal := quote.Total()

	b.cabinRefund = 0
	if quote.CabinPrice < b.cabinPaid {
		b.cabinRefund = b.cabinPaid - quote.CabinPrice
	}

	switch {
	case quote.BreakfastPrice < b.breakfastPaid:
		b.breakfastRefund = b.breakfastPaid - quote.BreakfastPrice
	case !isBreakfast:
		b.breakfastRefund = b.breakfastPaid
	default:
		b.breakfastRefund = 0
	}

	if newTotal < b.totalPaid {
		b.totalRefund = b.totalPaid - newTotal
	} else {
		b.totalRefund = b.cabinRefund + b.breakfastRefund
	}

	b.cabinID = cabinID
	b.startDate = Day(startDate)
	b.endDate = Day(endDate)
	b.numOfGuests = numOfGuests
	b.isBreakfast = isBreakfast
	b.cabinPrice = quote.CabinPrice
	b.breakfastPrice = quote.BreakfastPrice
	b.totalPrice = newTotal
	b.observations = observations
	b.touch()
	return nil
}

// Restored returns a copy of the booking under a new identity, with the
// status reset to pending and the version restarted. Guest, cabin, dates,
// and every money field carry over unchanged.
func (b *Booking) Restored(now time.Time) *Booking {
	restored := *b
	restored.id = uuid.New()
	restored.status = StatusPending
	restored.version = 1
	restored.createdAt = now
	restored.updatedAt = now
	return &restored
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.touch()
}

func (b *Booking) touch() {
	b.updatedAt = time.Now().UTC()
}
