package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	bookingDomain "github.com/pinecove/cabin-console/internal/domain/booking"
	cabinDomain "github.com/pinecove/cabin-console/internal/domain/cabin"
	guestDomain "github.com/pinecove/cabin-console/internal/domain/guest"
)

// setupDB opens an isolated in-memory database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&BookingModel{},
		&CabinModel{},
		&LocationModel{},
		&GuestModel{},
		&SettingsModel{},
	))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedCabin persists a cabin with its location and returns the aggregate.
func seedCabin(t *testing.T, db *gorm.DB, name string) *cabinDomain.Cabin {
	t.Helper()
	ctx := context.Background()

	loc := &cabinDomain.Location{ID: uuid.New(), Country: "Norway", City: "Bergen", Address: "Fjellveien 1"}
	require.NoError(t, NewGormLocationRepository(db).Save(ctx, loc))

	c, err := cabinDomain.NewCabin(name, 4, 9000, 500, "", "", loc.ID)
	require.NoError(t, err)
	require.NoError(t, NewGormCabinRepository(db).Save(ctx, c))
	return c
}

// seedGuest persists a guest and returns the aggregate.
func seedGuest(t *testing.T, db *gorm.DB, email string) *guestDomain.Guest {
	t.Helper()

	g, err := guestDomain.NewGuest("Ada Lovelace", email, "+31612345678", "")
	require.NoError(t, err)
	require.NoError(t, NewGormGuestRepository(db).Save(context.Background(), g))
	return g
}

// seedBooking persists a booking in the given status and date range.
func seedBooking(t *testing.T, db *gorm.DB, cabinID, guestID uuid.UUID, status bookingDomain.BookingStatus, from, to time.Time) *bookingDomain.Booking {
	t.Helper()

	now := time.Now().UTC()
	bk := bookingDomain.ReconstructBooking(
		uuid.New(), status,
		from, to,
		2, cabinID, guestID, true,
		27000, 0, 0,
		12000, 0, 0,
		39000, 0, 0,
		"", 1, now, now,
	)
	require.NoError(t, NewGormBookingRepository(db).Save(context.Background(), bk))
	return bk
}
