package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinecove/cabin-console/internal/cache"
	"github.com/pinecove/cabin-console/internal/domain"
	cabinDomain "github.com/pinecove/cabin-console/internal/domain/cabin"
	"github.com/pinecove/cabin-console/internal/kafka"
	"github.com/pinecove/cabin-console/internal/mutation"
)

// LocationDTO is the response representation of a cabin's location.
type LocationDTO struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Address string `json:"address,omitempty"`
}

// CabinDTO is the response representation of a cabin.
type CabinDTO struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	MaxNumOfGuests int         `json:"max_num_of_guests"`
	PriceCents     int64       `json:"price_cents"`
	DiscountCents  int64       `json:"discount_cents"`
	Description    string      `json:"description,omitempty"`
	ImageURL       string      `json:"image_url,omitempty"`
	Location       LocationDTO `json:"location"`
	Version        int64       `json:"version"`
	CreatedAt      time.Time   `json:"created_at"`
}

// CabinRequest holds the data needed to create or update a cabin.
type CabinRequest struct {
	Name           string      `json:"name" binding:"required"`
	MaxNumOfGuests int         `json:"max_num_of_guests" binding:"required,gt=0"`
	PriceCents     int64       `json:"price_cents" binding:"required,gt=0"`
	DiscountCents  int64       `json:"discount_cents"`
	Description    string      `json:"description"`
	ImageURL       string      `json:"image_url"`
	Location       LocationDTO `json:"location"`
}

// CabinService is the application service orchestrating cabin use cases.
type CabinService struct {
	cabins    cabinDomain.Repository
	locations cabinDomain.LocationRepository
	cache     *cache.Store
	registry  *mutation.Registry
	notifier  mutation.Notifier
	producer  EventPublisher
	logger    *zap.Logger
}

// NewCabinService creates a new CabinService.
func NewCabinService(
	cabins cabinDomain.Repository,
	locations cabinDomain.LocationRepository,
	store *cache.Store,
	registry *mutation.Registry,
	notifier mutation.Notifier,
	producer EventPublisher,
	logger *zap.Logger,
) *CabinService {
	return &CabinService{
		cabins:    cabins,
		locations: locations,
		cache:     store,
		registry:  registry,
		notifier:  notifier,
		producer:  producer,
		logger:    logger,
	}
}

// ListCabins retrieves all cabins with their locations, ordered by name.
func (s *CabinService) ListCabins(ctx context.Context) ([]CabinDTO, error) {
	if cached, ok := s.cache.Get(cache.KeyCabins); ok {
		if dtos, ok := cached.([]CabinDTO); ok {
			return dtos, nil
		}
	}

	cabins, err := s.cabins.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]CabinDTO, len(cabins))
	for i, c := range cabins {
		dto, err := s.toCabinDTO(ctx, c)
		if err != nil {
			return nil, err
		}
		dtos[i] = dto
	}

	s.cache.Set(cache.KeyCabins, dtos)
	return dtos, nil
}

// GetCabin retrieves a single cabin with its location.
func (s *CabinService) GetCabin(ctx context.Context, id uuid.UUID) (*CabinDTO, error) {
	c, err := s.cabins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto, err := s.toCabinDTO(ctx, c)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// CreateCabin persists a new cabin and its location. The location is written
// first; if the cabin itself cannot be saved the location is removed again.
func (s *CabinService) CreateCabin(ctx context.Context, req CabinRequest) (*CabinDTO, error) {
	loc := &cabinDomain.Location{
		ID:      uuid.New(),
		Country: req.Location.Country,
		City:    req.Location.City,
		Address: req.Location.Address,
	}

	c, err := cabinDomain.NewCabin(
		req.Name, req.MaxNumOfGuests,
		req.PriceCents, req.DiscountCents,
		req.Description, req.ImageURL,
		loc.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.locations.Save(ctx, loc); err != nil {
		return nil, err
	}

	m := mutation.Run(ctx, s.notifier, mutation.Spec[*cabinDomain.Cabin]{
		Messages: mutation.Messages{
			Pending:   "Creating cabin...",
			Succeeded: "New cabin successfully created",
			Failed:    "Could not create cabin",
		},
		Do: func(ctx context.Context) (*cabinDomain.Cabin, error) {
			if err := s.cabins.Save(ctx, c); err != nil {
				// The location row must not outlive a failed cabin insert.
				if derr := s.locations.Delete(ctx, loc.ID); derr != nil {
					s.logger.Error("failed to roll back location",
						zap.String("location_id", loc.ID.String()),
						zap.Error(derr),
					)
				}
				return nil, err
			}
			return c, nil
		},
		OnSuccess: func(*cabinDomain.Cabin) { s.cache.Invalidate(cache.KeyCabins) },
	})
	if _, err := m.Wait(ctx); err != nil {
		return nil, err
	}

	s.publishCabinEvent(ctx, EventCabinCreated, c)

	dto := toCabinDTOWithLocation(c, loc)
	return &dto, nil
}

// UpdateCabin replaces a cabin's editable fields with optimistic locking.
func (s *CabinService) UpdateCabin(ctx context.Context, id uuid.UUID, req CabinRequest) (*CabinDTO, error) {
	c, err := s.cabins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateDetails(
		req.Name, req.MaxNumOfGuests,
		req.PriceCents, req.DiscountCents,
		req.Description, req.ImageURL,
	); err != nil {
		return nil, err
	}

	c.IncrementVersion()
	m := mutation.Run(ctx, s.notifier, mutation.Spec[*cabinDomain.Cabin]{
		Messages: mutation.Messages{
			Pending:   "Updating cabin...",
			Succeeded: "Cabin successfully updated",
			Failed:    "Could not update cabin",
		},
		Do: func(ctx context.Context) (*cabinDomain.Cabin, error) {
			if err := s.cabins.Update(ctx, c); err != nil {
				return nil, err
			}
			return c, nil
		},
		OnSuccess: func(*cabinDomain.Cabin) { s.cache.Invalidate(cache.KeyCabins) },
	})
	if _, err := m.Wait(ctx); err != nil {
		return nil, err
	}

	s.publishCabinEvent(ctx, EventCabinUpdated, c)

	dto, err := s.toCabinDTO(ctx, c)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// DuplicateCabin creates a copy of an existing cabin under a "Copy of" name,
// with its own location row.
func (s *CabinService) DuplicateCabin(ctx context.Context, id uuid.UUID) (*CabinDTO, error) {
	original, err := s.cabins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loc, err := s.locations.FindByID(ctx, original.LocationID())
	if err != nil {
		return nil, err
	}

	return s.CreateCabin(ctx, CabinRequest{
		Name:           "Copy of " + original.Name(),
		MaxNumOfGuests: original.MaxNumOfGuests(),
		PriceCents:     original.Price(),
		DiscountCents:  original.Discount(),
		Description:    original.Description(),
		ImageURL:       original.ImageURL(),
		Location: LocationDTO{
			Country: loc.Country,
			City:    loc.City,
			Address: loc.Address,
		},
	})
}

// DeleteCabin removes a cabin and its location, arming a short-lived undo
// that restores both rows.
func (s *CabinService) DeleteCabin(ctx context.Context, id uuid.UUID) error {
	c, err := s.cabins.FindByID(ctx, id)
	if err != nil {
		return err
	}
	loc, err := s.locations.FindByID(ctx, c.LocationID())
	if err != nil {
		return err
	}

	m := mutation.Run(ctx, s.notifier, mutation.Spec[*cabinDomain.Cabin]{
		Messages: mutation.Messages{
			Pending:   "Deleting cabin...",
			Succeeded: "Cabin successfully deleted",
			Failed:    "There was an error while deleting cabin",
		},
		Do: func(ctx context.Context) (*cabinDomain.Cabin, error) {
			if err := s.cabins.Delete(ctx, id); err != nil {
				return nil, err
			}
			// An orphaned location is logged, not fatal; the cabin is gone.
			if err := s.locations.Delete(ctx, loc.ID); err != nil {
				s.logger.Error("failed to delete cabin location",
					zap.String("location_id", loc.ID.String()),
					zap.Error(err),
				)
			}
			return c, nil
		},
		OnSuccess: func(*cabinDomain.Cabin) { s.cache.Invalidate(cache.KeyCabins) },
		Undo: &mutation.UndoSpec[*cabinDomain.Cabin]{
			Compensate: func(ctx context.Context, deleted *cabinDomain.Cabin) error {
				if err := s.locations.Save(ctx, loc); err != nil {
					return err
				}
				if err := s.cabins.Save(ctx, deleted); err != nil {
					return err
				}
				s.cache.Invalidate(cache.KeyCabins)
				s.publishCabinEvent(ctx, EventCabinCreated, deleted)
				return nil
			},
		},
	})
	if _, err := m.Wait(ctx); err != nil {
		return err
	}

	s.registry.Put(cabinUndoKey(id), m)
	s.publishCabinEvent(ctx, EventCabinDeleted, c)
	return nil
}

// UndoDeleteCabin triggers the undo of a recent cabin deletion.
func (s *CabinService) UndoDeleteCabin(ctx context.Context, id uuid.UUID) error {
	err := s.registry.Undo(ctx, cabinUndoKey(id))
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

// --- Helpers ---

func cabinUndoKey(id uuid.UUID) string {
	return "cabin:" + id.String()
}

func (s *CabinService) toCabinDTO(ctx context.Context, c *cabinDomain.Cabin) (CabinDTO, error) {
	loc, err := s.locations.FindByID(ctx, c.LocationID())
	if err != nil {
		return CabinDTO{}, err
	}
	return toCabinDTOWithLocation(c, loc), nil
}

func toCabinDTOWithLocation(c *cabinDomain.Cabin, loc *cabinDomain.Location) CabinDTO {
	return CabinDTO{
		ID:             c.ID(),
		Name:           c.Name(),
		MaxNumOfGuests: c.MaxNumOfGuests(),
		PriceCents:     c.Price(),
		DiscountCents:  c.Discount(),
		Description:    c.Description(),
		ImageURL:       c.ImageURL(),
		Location: LocationDTO{
			Country: loc.Country,
			City:    loc.City,
			Address: loc.Address,
		},
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
	}
}

func (s *CabinService) publishCabinEvent(ctx context.Context, eventType string, c *cabinDomain.Cabin) {
	evt := CabinEvent{
		CabinID:    c.ID(),
		Name:       c.Name(),
		OccurredAt: time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, TopicCabinEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", TopicCabinEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
