package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinecove/cabin-console/internal/domain"
	bookingDomain "github.com/pinecove/cabin-console/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status               string    `gorm:"not null;size:20;index"`
	StartDate            time.Time `gorm:"not null;index"`
	EndDate              time.Time `gorm:"not null;index"`
	NumOfGuests          int       `gorm:"not null"`
	CabinID              uuid.UUID `gorm:"type:uuid;index;not null"`
	GuestID              uuid.UUID `gorm:"type:uuid;index;not null"`
	IsBreakfast          bool      `gorm:"not null;default:false"`
	CabinPriceCents      int64     `gorm:"not null"`
	CabinPaidCents       int64     `gorm:"not null;default:0"`
	CabinRefundCents     int64     `gorm:"not null;default:0"`
	BreakfastPriceCents  int64     `gorm:"not null;default:0"`
	BreakfastPaidCents   int64     `gorm:"not null;default:0"`
	BreakfastRefundCents int64     `gorm:"not null;default:0"`
	TotalPriceCents      int64     `gorm:"not null"`
	TotalPaidCents       int64     `gorm:"not null;default:0"`
	TotalRefundCents     int64     `gorm:"not null;default:0"`
	Observations         string    `gorm:"size:1000"`
	Version              int64     `gorm:"not null;default:1"`
	CreatedAt            time.Time `gorm:"not null;index"`
	UpdatedAt            time.Time `gorm:"not null"`

	Cabin *CabinModel `gorm:"foreignKey:CabinID"`
	Guest *GuestModel `gorm:"foreignKey:GuestID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindDetailByID retrieves a booking with its cabin-name and guest snapshot.
func (r *GormBookingRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Detail, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Cabin").
		Preload("Guest").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking detail: %w", err)
	}
	return toBookingDetail(&model)
}

// ListDetails retrieves bookings with display snapshots, newest first.
func (r *GormBookingRepository) ListDetails(ctx context.Context, filter bookingDomain.ListFilter) ([]*bookingDomain.Detail, int64, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("Cabin").
		Preload("Guest").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	details := make([]*bookingDomain.Detail, len(models))
	for i := range models {
		detail, err := toBookingDetail(&models[i])
		if err != nil {
			return nil, 0, err
		}
		details[i] = detail
	}

	return details, total, nil
}

// ListCreatedBetween retrieves bookings created within [from, to] for statistics.
func (r *GormBookingRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings by creation date: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// ListArrivalsDepartures retrieves bookings arriving or departing around now.
func (r *GormBookingRepository) ListArrivalsDepartures(ctx context.Context, now time.Time) ([]*bookingDomain.Detail, error) {
	today := bookingDomain.Day(now)
	arrivalFrom := today.AddDate(0, 0, -5)
	arrivalTo := today.AddDate(0, 0, 5)
	departureFrom := today.AddDate(0, 0, -2)
	departureTo := today.AddDate(0, 0, 2)

	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Cabin").
		Preload("Guest").
		Where(
			r.db.Where("status IN ? AND start_date >= ? AND start_date <= ?",
				[]string{string(bookingDomain.StatusPending), string(bookingDomain.StatusConfirmed)}, arrivalFrom, arrivalTo).
				Or("status = ? AND end_date >= ? AND end_date <= ?",
					string(bookingDomain.StatusCheckedIn), departureFrom, departureTo),
		).
		Order("start_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list arrivals and departures: %w", err)
	}

	details := make([]*bookingDomain.Detail, len(models))
	for i := range models {
		detail, err := toBookingDetail(&models[i])
		if err != nil {
			return nil, err
		}
		details[i] = detail
	}
	return details, nil
}

// ListOccupiedRanges retrieves the occupied date ranges for a cabin, shrunk one
// day at each end so checkout days stay bookable. A non-zero month narrows the
// result to stays overlapping that calendar month; the zero value returns all
// current and future occupied ranges.
func (r *GormBookingRepository) ListOccupiedRanges(ctx context.Context, cabinID uuid.UUID, month time.Time, excludeBookingID *uuid.UUID, now time.Time) ([]bookingDomain.DateRange, error) {
	today := bookingDomain.Day(now)

	query := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("cabin_id = ?", cabinID).
		Where("status NOT IN ?", []string{string(bookingDomain.StatusCheckedOut), string(bookingDomain.StatusCanceled)}).
		Where("end_date >= ?", today)

	if !month.IsZero() {
		monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)
		query = query.Where("start_date < ? AND end_date >= ?", monthEnd, monthStart)
	}
	if excludeBookingID != nil {
		query = query.Where("id <> ?", *excludeBookingID)
	}

	var models []BookingModel
	if err := query.Order("start_date ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list occupied ranges: %w", err)
	}

	ranges := make([]bookingDomain.DateRange, len(models))
	for i, m := range models {
		ranges[i] = bookingDomain.DateRange{From: m.StartDate, To: m.EndDate}.Shrink()
	}
	return ranges, nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Optimistic locking: only update if the version matches (current version - 1 since IncrementVersion was called)
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":                 model.Status,
			"start_date":             model.StartDate,
			"end_date":               model.EndDate,
			"num_of_guests":          model.NumOfGuests,
			"cabin_id":               model.CabinID,
			"is_breakfast":           model.IsBreakfast,
			"cabin_price_cents":      model.CabinPriceCents,
			"cabin_paid_cents":       model.CabinPaidCents,
			"cabin_refund_cents":     model.CabinRefundCents,
			"breakfast_price_cents":  model.BreakfastPriceCents,
			"breakfast_paid_cents":   model.BreakfastPaidCents,
			"breakfast_refund_cents": model.BreakfastRefundCents,
			"total_price_cents":      model.TotalPriceCents,
			"total_paid_cents":       model.TotalPaidCents,
			"total_refund_cents":     model.TotalRefundCents,
			"observations":           model.Observations,
			"version":                model.Version,
			"updated_at":             model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// Delete removes a booking permanently.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// DeleteMany removes several bookings permanently.
func (r *GormBookingRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&BookingModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete bookings: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:                   bk.ID(),
		Status:               string(bk.Status()),
		StartDate:            bk.StartDate(),
		EndDate:              bk.EndDate(),
		NumOfGuests:          bk.NumOfGuests(),
		CabinID:              bk.CabinID(),
		GuestID:              bk.GuestID(),
		IsBreakfast:          bk.IsBreakfast(),
		CabinPriceCents:      bk.CabinPrice(),
		CabinPaidCents:       bk.CabinPaid(),
		CabinRefundCents:     bk.CabinRefund(),
		BreakfastPriceCents:  bk.BreakfastPrice(),
		BreakfastPaidCents:   bk.BreakfastPaid(),
		BreakfastRefundCents: bk.BreakfastRefund(),
		TotalPriceCents:      bk.TotalPrice(),
		TotalPaidCents:       bk.TotalPaid(),
		TotalRefundCents:     bk.TotalRefund(),
		Observations:         bk.Observations(),
		Version:              bk.Version(),
		CreatedAt:            bk.CreatedAt(),
		UpdatedAt:            bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		status,
		m.StartDate,
		m.EndDate,
		m.NumOfGuests,
		m.CabinID,
		m.GuestID,
		m.IsBreakfast,
		m.CabinPriceCents,
		m.CabinPaidCents,
		m.CabinRefundCents,
		m.BreakfastPriceCents,
		m.BreakfastPaidCents,
		m.BreakfastRefundCents,
		m.TotalPriceCents,
		m.TotalPaidCents,
		m.TotalRefundCents,
		m.Observations,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toBookingDetail(m *BookingModel) (*bookingDomain.Detail, error) {
	bk, err := toDomainBooking(m)
	if err != nil {
		return nil, err
	}

	detail := &bookingDomain.Detail{Booking: bk}
	if m.Cabin != nil {
		detail.CabinName = m.Cabin.Name
	}
	if m.Guest != nil {
		detail.Guest = bookingDomain.GuestSnapshot{
			ID:     m.Guest.ID,
			Name:   m.Guest.Name,
			Email:  m.Guest.Email,
			Phone:  m.Guest.Phone,
			Avatar: m.Guest.Avatar,
		}
	}
	return detail, nil
}
