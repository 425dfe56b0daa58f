package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinecove/cabin-console/internal/domain"
	bookingDomain "github.com/pinecove/cabin-console/internal/domain/booking"
)

func TestBookingSaveAndFindByID(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")

	bk, err := bookingDomain.NewBooking(
		cabin.ID(), guest.ID(),
		day(2026, 9, 10), day(2026, 9, 13),
		2, true,
		bookingDomain.Quote{CabinPrice: 27000, BreakfastPrice: 12000},
		"late arrival",
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, bk))

	got, err := repo.FindByID(ctx, bk.ID())
	require.NoError(t, err)
	assert.Equal(t, bk.ID(), got.ID())
	assert.Equal(t, bookingDomain.StatusPending, got.Status())
	assert.Equal(t, int64(39000), got.TotalPrice())
	assert.Equal(t, "late arrival", got.Observations())
	assert.Equal(t, int64(1), got.Version())
}

func TestBookingFindByIDNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewGormBookingRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestBookingUpdateOptimisticLock(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")
	bk := seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusPending, day(2026, 9, 10), day(2026, 9, 13))

	first, err := repo.FindByID(ctx, bk.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, bk.ID())
	require.NoError(t, err)

	require.NoError(t, first.Confirm(day(2026, 9, 1)))
	first.IncrementVersion()
	require.NoError(t, repo.Update(ctx, first))

	// The concurrent editor still holds version 1; its write must bounce.
	require.NoError(t, second.Cancel(day(2026, 9, 1)))
	second.IncrementVersion()
	err = repo.Update(ctx, second)
	require.Error(t, err)
	assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))

	got, err := repo.FindByID(ctx, bk.ID())
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusConfirmed, got.Status())
	assert.Equal(t, int64(2), got.Version())
}

func TestBookingListDetails(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusPending, day(2026, 9, 10), day(2026, 9, 13))
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 9, 20), day(2026, 9, 23))

	details, total, err := repo.ListDetails(ctx, bookingDomain.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, details, 2)
	assert.Equal(t, "Birch", details[0].CabinName)
	assert.Equal(t, "ada@example.com", details[0].Guest.Email)

	confirmed := bookingDomain.StatusConfirmed
	details, total, err = repo.ListDetails(ctx, bookingDomain.ListFilter{Status: &confirmed, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, details, 1)
	assert.Equal(t, bookingDomain.StatusConfirmed, details[0].Booking.Status())
}

func TestBookingListOccupiedRanges(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	other := seedCabin(t, db, "Spruce")
	guest := seedGuest(t, db, "ada@example.com")
	now := day(2026, 9, 1)

	active := seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 9, 10), day(2026, 9, 13))
	// None of these should show up: wrong cabin, finished, canceled, in the past.
	seedBooking(t, db, other.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 9, 10), day(2026, 9, 13))
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusCheckedOut, day(2026, 9, 15), day(2026, 9, 18))
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusCanceled, day(2026, 9, 20), day(2026, 9, 23))
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 8, 10), day(2026, 8, 13))

	ranges, err := repo.ListOccupiedRanges(ctx, cabin.ID(), time.Time{}, nil, now)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	// Shrunk one day at each end.
	assert.Equal(t, day(2026, 9, 11), ranges[0].From)
	assert.Equal(t, day(2026, 9, 12), ranges[0].To)

	// Excluding the booking being edited leaves nothing.
	id := active.ID()
	ranges, err = repo.ListOccupiedRanges(ctx, cabin.ID(), time.Time{}, &id, now)
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestBookingListOccupiedRangesMonthWindow(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")
	now := day(2026, 9, 1)

	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 9, 10), day(2026, 9, 13))
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 10, 10), day(2026, 10, 13))
	// Straddles the month boundary, so it belongs to both months.
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 9, 29), day(2026, 10, 2))

	ranges, err := repo.ListOccupiedRanges(ctx, cabin.ID(), day(2026, 9, 1), nil, now)
	require.NoError(t, err)
	assert.Len(t, ranges, 2)

	ranges, err = repo.ListOccupiedRanges(ctx, cabin.ID(), day(2026, 10, 1), nil, now)
	require.NoError(t, err)
	assert.Len(t, ranges, 2)
}

func TestBookingListArrivalsDepartures(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")
	now := day(2026, 9, 10)

	arriving := seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 9, 12), day(2026, 9, 15))
	departing := seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusCheckedIn, day(2026, 9, 7), day(2026, 9, 11))
	// Too far out either way.
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 9, 20), day(2026, 9, 23))
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusCheckedIn, day(2026, 9, 1), day(2026, 9, 5))

	details, err := repo.ListArrivalsDepartures(ctx, now)
	require.NoError(t, err)
	require.Len(t, details, 2)

	ids := []uuid.UUID{details[0].Booking.ID(), details[1].Booking.ID()}
	assert.Contains(t, ids, arriving.ID())
	assert.Contains(t, ids, departing.ID())
}

func TestBookingCountByStatus(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusPending, day(2026, 9, 10), day(2026, 9, 13))
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusPending, day(2026, 9, 14), day(2026, 9, 16))
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusConfirmed, day(2026, 9, 20), day(2026, 9, 23))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["pending"])
	assert.Equal(t, int64(1), counts["confirmed"])
}

func TestBookingDelete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")
	bk := seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusCanceled, day(2026, 9, 10), day(2026, 9, 13))

	require.NoError(t, repo.Delete(ctx, bk.ID()))

	_, err := repo.FindByID(ctx, bk.ID())
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))

	err = repo.Delete(ctx, bk.ID())
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestBookingDeleteMany(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")
	a := seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusCanceled, day(2026, 9, 10), day(2026, 9, 13))
	b := seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusCanceled, day(2026, 9, 14), day(2026, 9, 16))
	kept := seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusPending, day(2026, 9, 20), day(2026, 9, 23))

	require.NoError(t, repo.DeleteMany(ctx, []uuid.UUID{a.ID(), b.ID()}))
	require.NoError(t, repo.DeleteMany(ctx, nil))

	_, total, err := repo.ListDetails(ctx, bookingDomain.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = repo.FindByID(ctx, kept.ID())
	assert.NoError(t, err)
}

func TestBookingListCreatedBetween(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormBookingRepository(db)

	cabin := seedCabin(t, db, "Birch")
	guest := seedGuest(t, db, "ada@example.com")
	seedBooking(t, db, cabin.ID(), guest.ID(), bookingDomain.StatusPending, day(2026, 9, 10), day(2026, 9, 13))

	now := time.Now().UTC()
	bookings, err := repo.ListCreatedBetween(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	bookings, err = repo.ListCreatedBetween(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
