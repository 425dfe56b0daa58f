package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GuestSnapshot is the denormalized guest data attached to a booking at read
// time for display. The authoritative record lives in the guest store.
type GuestSnapshot struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
	Avatar string    `json:"avatar,omitempty"`
}

// Detail is a booking joined with its display snapshot.
type Detail struct {
	Booking   *Booking
	CabinName string
	Guest     GuestSnapshot
}

// ListFilter narrows and pages a booking listing.
type ListFilter struct {
	Status *BookingStatus
	Page   int
	Limit  int
}

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindDetailByID retrieves a booking with its cabin-name and guest snapshot.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*Detail, error)

	// ListDetails retrieves bookings with display snapshots, newest first.
	ListDetails(ctx context.Context, filter ListFilter) ([]*Detail, int64, error)

	// ListCreatedBetween retrieves bookings created within [from, to] for statistics.
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Booking, error)

	// ListArrivalsDepartures retrieves bookings arriving or departing around now:
	// pending/confirmed stays starting within five days either side of today, and
	// checked-in stays ending within two days either side.
	ListArrivalsDepartures(ctx context.Context, now time.Time) ([]*Detail, error)

	// ListOccupiedRanges retrieves the occupied date ranges for a cabin,
	// excluding finished and canceled stays, stays already in the past, and
	// optionally the booking being edited. A non-zero month narrows the result
	// to stays overlapping that calendar month; the zero value returns all
	// current and future ranges. Ranges are shrunk one day at each end so
	// checkout days stay bookable.
	ListOccupiedRanges(ctx context.Context, cabinID uuid.UUID, month time.Time, excludeBookingID *uuid.UUID, now time.Time) ([]DateRange, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error

	// Delete removes a booking permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteMany removes several bookings permanently.
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
}
