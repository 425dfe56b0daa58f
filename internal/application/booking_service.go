package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinecove/cabin-console/internal/cache"
	"github.com/pinecove/cabin-console/internal/domain"
	bookingDomain "github.com/pinecove/cabin-console/internal/domain/booking"
	cabinDomain "github.com/pinecove/cabin-console/internal/domain/cabin"
	guestDomain "github.com/pinecove/cabin-console/internal/domain/guest"
	settingsDomain "github.com/pinecove/cabin-console/internal/domain/settings"
	"github.com/pinecove/cabin-console/internal/kafka"
	"github.com/pinecove/cabin-console/internal/mutation"
)

const eventSource = "cabin-console"

// GuestDTO is the response representation of a booking's guest.
type GuestDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
	Avatar string    `json:"avatar,omitempty"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID                   uuid.UUID                    `json:"id"`
	Status               string                       `json:"status"`
	StartDate            time.Time                    `json:"start_date"`
	EndDate              time.Time                    `json:"end_date"`
	NumNights            int                          `json:"num_nights"`
	NumOfGuests          int                          `json:"num_of_guests"`
	CabinID              uuid.UUID                    `json:"cabin_id"`
	CabinName            string                       `json:"cabin_name,omitempty"`
	Guest                GuestDTO                     `json:"guest"`
	IsBreakfast          bool                         `json:"is_breakfast"`
	CabinPriceCents      int64                        `json:"cabin_price_cents"`
	BreakfastPriceCents  int64                        `json:"breakfast_price_cents"`
	TotalPriceCents      int64                        `json:"total_price_cents"`
	TotalPaidCents       int64                        `json:"total_paid_cents"`
	TotalRefundCents     int64                        `json:"total_refund_cents"`
	Observations         string                       `json:"observations,omitempty"`
	Permissions          bookingDomain.Permissions    `json:"permissions"`
	Payment              bookingDomain.PaymentBuckets `json:"payment"`
	Version              int64                        `json:"version"`
	CreatedAt            time.Time                    `json:"created_at"`
}

// RecentBookingsDTO groups today's activity: guests arriving and guests leaving.
type RecentBookingsDTO struct {
	Arrivals   []BookingDTO `json:"arrivals"`
	Departures []BookingDTO `json:"departures"`
}

// UpdatePreviewDTO is the repriced money breakdown shown while a booking is
// being edited, before the update is committed.
type UpdatePreviewDTO struct {
	Quote   bookingDomain.Quote          `json:"quote"`
	Payment bookingDomain.PaymentBuckets `json:"payment"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings bookingDomain.BookingRepository
	cabins   cabinDomain.Repository
	guests   guestDomain.Repository
	settings settingsDomain.Repository
	cache    *cache.Store
	registry *mutation.Registry
	notifier mutation.Notifier
	producer EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	cabins cabinDomain.Repository,
	guests guestDomain.Repository,
	settings settingsDomain.Repository,
	store *cache.Store,
	registry *mutation.Registry,
	notifier mutation.Notifier,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		cabins:   cabins,
		guests:   guests,
		settings: settings,
		cache:    store,
		registry: registry,
		notifier: notifier,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListBookings retrieves a page of bookings, optionally filtered by status.
func (s *BookingService) ListBookings(ctx context.Context, status string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	key := cache.BookingsListKey(status, page, limit)
	if cached, ok := s.cache.Get(key); ok {
		if result, ok := cached.(*domain.PaginatedResult[BookingDTO]); ok {
			return result, nil
		}
	}

	filter := bookingDomain.ListFilter{Page: page, Limit: limit}
	if status != "" {
		parsed, err := bookingDomain.ParseBookingStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = &parsed
	}

	details, total, err := s.bookings.ListDetails(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dtos := make([]BookingDTO, len(details))
	for i, detail := range details {
		dtos[i] = toBookingDTO(detail, now)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	s.cache.Set(key, &result)
	return &result, nil
}

// GetBooking retrieves a single booking with its derived permissions and
// payment breakdown.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	key := cache.BookingKey(id)
	if cached, ok := s.cache.Get(key); ok {
		if dto, ok := cached.(*BookingDTO); ok {
			return dto, nil
		}
	}

	detail, err := s.bookings.FindDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toBookingDTO(detail, s.now())
	s.cache.Set(key, &dto)
	return &dto, nil
}

// GetAvailability retrieves a cabin's occupied date ranges for the month,
// excluding excludeBookingID's own reservation when editing.
func (s *BookingService) GetAvailability(ctx context.Context, cabinID uuid.UUID, month time.Time, excludeBookingID *uuid.UUID) ([]bookingDomain.DateRange, error) {
	cacheable := excludeBookingID == nil
	key := cache.BookingDatesKey(cabinID, month)
	if cacheable {
		if cached, ok := s.cache.Get(key); ok {
			if ranges, ok := cached.([]bookingDomain.DateRange); ok {
				return ranges, nil
			}
		}
	}

	ranges, err := s.bookings.ListOccupiedRanges(ctx, cabinID, month, excludeBookingID, s.now())
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.cache.Set(key, ranges)
	}
	return ranges, nil
}

// GetRecentBookings retrieves today's activity: pending and confirmed stays
// starting around today, and checked-in stays ending around today.
func (s *BookingService) GetRecentBookings(ctx context.Context) (*RecentBookingsDTO, error) {
	now := s.now()
	details, err := s.bookings.ListArrivalsDepartures(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &RecentBookingsDTO{
		Arrivals:   []BookingDTO{},
		Departures: []BookingDTO{},
	}
	for _, detail := range details {
		dto := toBookingDTO(detail, now)
		if detail.Booking.Status() == bookingDomain.StatusCheckedIn {
			result.Departures = append(result.Departures, dto)
		} else {
			result.Arrivals = append(result.Arrivals, dto)
		}
	}
	return result, nil
}

// CreateBooking validates the form, prices the stay, and persists a new
// pending booking. A guest is reused by email when one exists; a guest created
// for this booking is removed again if the booking itself cannot be saved.
// A short-lived undo deletes the booking again.
func (s *BookingService) CreateBooking(ctx context.Context, form bookingDomain.Form) (*BookingDTO, error) {
	now := s.now()

	cab, err := s.cabins.FindByID(ctx, form.CabinID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := s.bookings.ListOccupiedRanges(ctx, cab.ID(), time.Time{}, nil, now)
	if err != nil {
		return nil, err
	}

	if verr := bookingDomain.ValidateForm(form, bookingDomain.FormRules{
		MaxNumOfGuests: cab.MaxNumOfGuests(),
		Occupied:       occupied,
		MinNights:      cfg.MinNights,
		MaxNights:      cfg.MaxNights,
	}, now); verr != nil {
		return nil, verr
	}

	gst, guestCreated, err := s.findOrCreateGuest(ctx, form)
	if err != nil {
		return nil, err
	}

	quote := bookingDomain.ComputeQuote(
		cab.Price(), cab.Discount(),
		form.Dates, form.IsBreakfast, form.NumOfGuests,
		cfg.BreakfastPrice, now,
	)

	bk, err := bookingDomain.NewBooking(
		cab.ID(), gst.ID(),
		form.Dates.From, form.Dates.To,
		form.NumOfGuests, form.IsBreakfast,
		quote, form.Observations,
	)
	if err != nil {
		s.rollbackGuest(ctx, gst, guestCreated)
		return nil, err
	}

	m := mutation.Run(ctx, s.notifier, mutation.Spec[*bookingDomain.Booking]{
		Messages: mutation.Messages{
			Pending:   "Creating booking...",
			Succeeded: "Booking successfully created",
			Failed:    "Could not create booking",
		},
		Do: func(ctx context.Context) (*bookingDomain.Booking, error) {
			if err := s.bookings.Save(ctx, bk); err != nil {
				// Unwind the guest created for this booking; the booking
				// failure is what the caller must see.
				s.rollbackGuest(ctx, gst, guestCreated)
				return nil, err
			}
			return bk, nil
		},
		OnSuccess: func(*bookingDomain.Booking) { s.invalidateBooking(bk.ID()) },
		Undo: &mutation.UndoSpec[*bookingDomain.Booking]{
			Compensate: func(ctx context.Context, created *bookingDomain.Booking) error {
				if err := s.bookings.Delete(ctx, created.ID()); err != nil {
					return err
				}
				s.invalidateBooking(created.ID())
				s.publishBookingEvent(ctx, EventBookingDeleted, created)
				return nil
			},
		},
	})
	if _, err := m.Wait(ctx); err != nil {
		return nil, err
	}

	s.registry.Put(bookingUndoKey(bk.ID()), m)
	s.publishBookingEvent(ctx, EventBookingCreated, bk)

	dto := toBookingDTO(&bookingDomain.Detail{
		Booking:   bk,
		CabinName: cab.Name(),
		Guest: bookingDomain.GuestSnapshot{
			ID:     gst.ID(),
			Name:   gst.Name(),
			Email:  gst.Email(),
			Phone:  gst.Phone(),
			Avatar: gst.Avatar(),
		},
	}, now)
	return &dto, nil
}

// PreviewBookingUpdate reprices a booking against the edit form and returns
// the resulting money breakdown without committing anything.
func (s *BookingService) PreviewBookingUpdate(ctx context.Context, id uuid.UUID, form bookingDomain.Form) (*UpdatePreviewDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cab, err := s.cabins.FindByID(ctx, form.CabinID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	quote := bookingDomain.ComputeQuote(
		cab.Price(), cab.Discount(),
		form.Dates, form.IsBreakfast, form.NumOfGuests,
		cfg.BreakfastPrice, now,
	)

	buckets := bookingDomain.ReconcileEdit(bookingDomain.EditSnapshot{
		ViewSnapshot:      bk.MoneySnapshot(),
		IsNewBreakfast:    form.IsBreakfast,
		NewCabinPrice:     quote.CabinPrice,
		NewBreakfastPrice: quote.BreakfastPrice,
	})

	return &UpdatePreviewDTO{Quote: quote, Payment: buckets}, nil
}

// UpdateBooking revalidates the edit form against the booking's cabin,
// reprices the stay, and persists the update with optimistic locking.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, form bookingDomain.Form) (*BookingDTO, error) {
	now := s.now()

	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cab, err := s.cabins.FindByID(ctx, form.CabinID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	// The booking's own reservation must not block its edited dates.
	excludeID := bk.ID()
	occupied, err := s.bookings.ListOccupiedRanges(ctx, cab.ID(), time.Time{}, &excludeID, now)
	if err != nil {
		return nil, err
	}

	if verr := bookingDomain.ValidateForm(form, bookingDomain.FormRules{
		MaxNumOfGuests: cab.MaxNumOfGuests(),
		Occupied:       occupied,
		MinNights:      cfg.MinNights,
		MaxNights:      cfg.MaxNights,
	}, now); verr != nil {
		return nil, verr
	}

	quote := bookingDomain.ComputeQuote(
		cab.Price(), cab.Discount(),
		form.Dates, form.IsBreakfast, form.NumOfGuests,
		cfg.BreakfastPrice, now,
	)

	if err := bk.ApplyUpdate(
		cab.ID(),
		form.Dates.From, form.Dates.To,
		form.NumOfGuests, form.IsBreakfast,
		quote, form.Observations,
		now,
	); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	m := mutation.Run(ctx, s.notifier, mutation.Spec[*bookingDomain.Booking]{
		Messages: mutation.Messages{
			Pending:   "Updating booking...",
			Succeeded: "Booking successfully updated",
			Failed:    "Could not update booking",
		},
		Do: func(ctx context.Context) (*bookingDomain.Booking, error) {
			if err := s.bookings.Update(ctx, bk); err != nil {
				return nil, err
			}
			return bk, nil
		},
		OnSuccess: func(*bookingDomain.Booking) { s.invalidateBooking(bk.ID()) },
	})
	if _, err := m.Wait(ctx); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, EventBookingUpdated, bk)
	return s.GetBooking(ctx, id)
}

// ConfirmBooking transitions a pending booking to confirmed.
func (s *BookingService) ConfirmBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, id, EventBookingConfirmed, mutation.Messages{
		Pending:   "Confirming booking...",
		Succeeded: "Booking successfully confirmed",
		Failed:    "Could not confirm booking",
	}, (*bookingDomain.Booking).Confirm)
}

// CheckInBooking transitions a confirmed, fully paid booking to checked-in.
func (s *BookingService) CheckInBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, id, EventBookingCheckedIn, mutation.Messages{
		Pending:   "Checking in...",
		Succeeded: "Booking successfully checked in",
		Failed:    "There was an error while checking in",
	}, (*bookingDomain.Booking).CheckIn)
}

// CheckOutBooking transitions a checked-in booking to checked-out.
func (s *BookingService) CheckOutBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, id, EventBookingCheckedOut, mutation.Messages{
		Pending:   "Checking out...",
		Succeeded: "Booking successfully checked out",
		Failed:    "There was an error while checking out",
	}, (*bookingDomain.Booking).CheckOut)
}

// ConfirmBookingPayment settles the booking's outstanding balance.
func (s *BookingService) ConfirmBookingPayment(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, id, EventBookingPaymentConfirmed, mutation.Messages{
		Pending:   "Confirming payment...",
		Succeeded: "Payment successfully confirmed",
		Failed:    "Could not confirm payment",
	}, (*bookingDomain.Booking).ConfirmPayment)
}

// CancelBooking cancels a pending or confirmed booking, refunding whatever
// was already paid.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, id, EventBookingCanceled, mutation.Messages{
		Pending:   "Cancelling booking...",
		Succeeded: "Booking successfully cancelled",
		Failed:    "Could not cancel booking",
	}, (*bookingDomain.Booking).Cancel)
}

// DeleteBooking removes a booking and arms a short-lived undo that re-inserts
// it, money history intact, under a new identity with status pending.
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !bk.Permissions(s.now()).CanDelete {
		return domain.NewInvalidStateError(string(bk.Status()), "deleted")
	}

	m := mutation.Run(ctx, s.notifier, mutation.Spec[*bookingDomain.Booking]{
		Messages: mutation.Messages{
			Pending:   "Deleting booking...",
			Succeeded: "Booking successfully deleted",
			Failed:    "There was an error while deleting booking",
		},
		Do: func(ctx context.Context) (*bookingDomain.Booking, error) {
			if err := s.bookings.Delete(ctx, id); err != nil {
				return nil, err
			}
			return bk, nil
		},
		OnSuccess: func(*bookingDomain.Booking) { s.invalidateBooking(id) },
		Undo: &mutation.UndoSpec[*bookingDomain.Booking]{
			Compensate: func(ctx context.Context, deleted *bookingDomain.Booking) error {
				return s.restoreBooking(ctx, deleted)
			},
		},
	})
	if _, err := m.Wait(ctx); err != nil {
		return err
	}

	s.registry.Put(bookingUndoKey(id), m)
	s.publishBookingEvent(ctx, EventBookingDeleted, bk)
	return nil
}

// UndoBooking triggers the undo of a recent booking creation or deletion.
func (s *BookingService) UndoBooking(ctx context.Context, id uuid.UUID) error {
	err := s.registry.Undo(ctx, bookingUndoKey(id))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mutation.ErrUndoUnavailable):
		return domain.NewNotFoundError("Undo", id.String())
	case errors.Is(err, mutation.ErrUndoExpired):
		return domain.NewConflictError("the undo window for this deletion has expired")
	case errors.Is(err, mutation.ErrUndoConsumed):
		return domain.NewConflictError("this deletion was already undone")
	default:
		return err
	}
}

// DeleteBookings removes several bookings at once, without undo. Every
// booking must be deletable or the whole batch is rejected.
func (s *BookingService) DeleteBookings(ctx context.Context, ids []uuid.UUID) error {
	now := s.now()
	for _, id := range ids {
		bk, err := s.bookings.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !bk.Permissions(now).CanDelete {
			return domain.NewInvalidStateError(string(bk.Status()), "deleted")
		}
	}

	m := mutation.Run(ctx, s.notifier, mutation.Spec[struct{}]{
		Messages: mutation.Messages{
			Pending:   "Deleting bookings...",
			Succeeded: fmt.Sprintf("%d bookings successfully deleted", len(ids)),
			Failed:    "There was an error while deleting bookings",
		},
		Do: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.bookings.DeleteMany(ctx, ids)
		},
		OnSuccess: func(struct{}) {
			s.cache.InvalidatePrefix(cache.KeyBookings)
			for _, id := range ids {
				s.cache.Invalidate(cache.BookingKey(id))
			}
			s.cache.InvalidateBookingDates()
		},
	})
	_, err := m.Wait(ctx)
	return err
}

// --- Helpers ---

func bookingUndoKey(id uuid.UUID) string {
	return "booking:" + id.String()
}

// transition loads the booking, applies one status transition, and persists it
// with optimistic locking.
func (s *BookingService) transition(
	ctx context.Context,
	id uuid.UUID,
	eventType string,
	messages mutation.Messages,
	apply func(*bookingDomain.Booking, time.Time) error,
) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(bk, s.now()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	m := mutation.Run(ctx, s.notifier, mutation.Spec[*bookingDomain.Booking]{
		Messages: messages,
		Do: func(ctx context.Context) (*bookingDomain.Booking, error) {
			if err := s.bookings.Update(ctx, bk); err != nil {
				return nil, err
			}
			return bk, nil
		},
		OnSuccess: func(*bookingDomain.Booking) { s.invalidateBooking(id) },
	})
	if _, err := m.Wait(ctx); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, eventType, bk)
	return s.GetBooking(ctx, id)
}

// restoreBooking re-inserts a deleted booking under a new identity with the
// status reset to pending. Everything else, the paid and refunded amounts
// included, carries over unchanged.
func (s *BookingService) restoreBooking(ctx context.Context, deleted *bookingDomain.Booking) error {
	restored := deleted.Restored(s.now())
	if err := s.bookings.Save(ctx, restored); err != nil {
		return err
	}

	s.invalidateBooking(deleted.ID())
	s.publishBookingEvent(ctx, EventBookingRestored, restored)
	return nil
}

func (s *BookingService) findOrCreateGuest(ctx context.Context, form bookingDomain.Form) (*guestDomain.Guest, bool, error) {
	existing, err := s.guests.FindByEmail(ctx, form.Email)
	if err == nil {
		return existing, false, nil
	}
	if domain.CodeOf(err) != domain.CodeNotFound {
		return nil, false, err
	}

	gst, err := guestDomain.NewGuest(form.Name, form.Email, form.Phone, "")
	if err != nil {
		return nil, false, err
	}
	if err := s.guests.Save(ctx, gst); err != nil {
		return nil, false, err
	}
	return gst, true, nil
}

// rollbackGuest removes a guest that was created for a booking that never
// materialized. Pre-existing guests are left alone.
func (s *BookingService) rollbackGuest(ctx context.Context, gst *guestDomain.Guest, created bool) {
	if !created {
		return
	}
	if err := s.guests.Delete(ctx, gst.ID()); err != nil {
		s.logger.Error("failed to roll back guest",
			zap.String("guest_id", gst.ID().String()),
			zap.Error(err),
		)
	}
}

func (s *BookingService) invalidateBooking(id uuid.UUID) {
	s.cache.InvalidatePrefix(cache.KeyBookings)
	s.cache.Invalidate(cache.BookingKey(id))
	s.cache.InvalidateBookingDates()
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	evt := BookingEvent{
		BookingID:       bk.ID(),
		CabinID:         bk.CabinID(),
		GuestID:         bk.GuestID(),
		Status:          string(bk.Status()),
		StartDate:       bk.StartDate(),
		EndDate:         bk.EndDate(),
		TotalPriceCents: bk.TotalPrice(),
		TotalPaidCents:  bk.TotalPaid(),
		OccurredAt:      time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(detail *bookingDomain.Detail, now time.Time) BookingDTO {
	bk := detail.Booking
	return BookingDTO{
		ID:                  bk.ID(),
		Status:              string(bk.Status()),
		StartDate:           bk.StartDate(),
		EndDate:             bk.EndDate(),
		NumNights:           bookingDomain.CalendarDays(bk.StartDate(), bk.EndDate()),
		NumOfGuests:         bk.NumOfGuests(),
		CabinID:             bk.CabinID(),
		CabinName:           detail.CabinName,
		Guest: GuestDTO{
			ID:     detail.Guest.ID,
			Name:   detail.Guest.Name,
			Email:  detail.Guest.Email,
			Phone:  detail.Guest.Phone,
			Avatar: detail.Guest.Avatar,
		},
		IsBreakfast:         bk.IsBreakfast(),
		CabinPriceCents:     bk.CabinPrice(),
		BreakfastPriceCents: bk.BreakfastPrice(),
		TotalPriceCents:     bk.TotalPrice(),
		TotalPaidCents:      bk.TotalPaid(),
		TotalRefundCents:    bk.TotalRefund(),
		Observations:        bk.Observations(),
		Permissions:         bk.Permissions(now),
		Payment:             bookingDomain.ReconcileView(bk.MoneySnapshot()),
		Version:             bk.Version(),
		CreatedAt:           bk.CreatedAt(),
	}
}
