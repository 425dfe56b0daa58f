package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinecove/cabin-console/internal/domain"
	cabinDomain "github.com/pinecove/cabin-console/internal/domain/cabin"
)

// CabinModel is the GORM model for the cabins table.
type CabinModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"not null;size:100;index"`
	MaxNumOfGuests int       `gorm:"not null"`
	PriceCents     int64     `gorm:"not null"`
	DiscountCents  int64     `gorm:"not null;default:0"`
	Description    string    `gorm:"size:1000"`
	ImageURL       string    `gorm:"size:500"`
	LocationID     uuid.UUID `gorm:"type:uuid;not null"`
	Version        int64     `gorm:"not null;default:1"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CabinModel) TableName() string {
	return "cabins"
}

// LocationModel is the GORM model for the cabin_locations table.
type LocationModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Country string    `gorm:"not null;size:100"`
	City    string    `gorm:"not null;size:100"`
	Address string    `gorm:"size:300"`
}

// TableName returns the table name for the GORM model.
func (LocationModel) TableName() string {
	return "cabin_locations"
}

// GormCabinRepository is the GORM-based implementation of cabin.Repository.
type GormCabinRepository struct {
	db *gorm.DB
}

// NewGormCabinRepository creates a new GormCabinRepository.
func NewGormCabinRepository(db *gorm.DB) *GormCabinRepository {
	return &GormCabinRepository{db: db}
}

// FindByID retrieves a cabin by its unique identifier.
func (r *GormCabinRepository) FindByID(ctx context.Context, id uuid.UUID) (*cabinDomain.Cabin, error) {
	var model CabinModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Cabin", id.String())
		}
		return nil, fmt.Errorf("failed to find cabin by ID: %w", err)
	}
	return toDomainCabin(&model), nil
}

// ListAll retrieves all cabins, ordered by name.
func (r *GormCabinRepository) ListAll(ctx context.Context) ([]*cabinDomain.Cabin, error) {
	var models []CabinModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list cabins: %w", err)
	}

	cabins := make([]*cabinDomain.Cabin, len(models))
	for i := range models {
		cabins[i] = toDomainCabin(&models[i])
	}
	return cabins, nil
}

// Count returns the number of cabins.
func (r *GormCabinRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&CabinModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count cabins: %w", err)
	}
	return total, nil
}

// Save persists a new cabin.
func (r *GormCabinRepository) Save(ctx context.Context, c *cabinDomain.Cabin) error {
	if err := r.db.WithContext(ctx).Create(toCabinModel(c)).Error; err != nil {
		return fmt.Errorf("failed to save cabin: %w", err)
	}
	return nil
}

// Update persists changes to an existing cabin with optimistic locking.
func (r *GormCabinRepository) Update(ctx context.Context, c *cabinDomain.Cabin) error {
	model := toCabinModel(c)

	expectedVersion := c.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&CabinModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":              model.Name,
			"max_num_of_guests": model.MaxNumOfGuests,
			"price_cents":       model.PriceCents,
			"discount_cents":    model.DiscountCents,
			"description":       model.Description,
			"image_url":         model.ImageURL,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update cabin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("cabin was modified by another transaction")
	}
	return nil
}

// Delete removes a cabin permanently.
func (r *GormCabinRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CabinModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cabin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Cabin", id.String())
	}
	return nil
}

// GormLocationRepository is the GORM-based implementation of cabin.LocationRepository.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID retrieves a location by its unique identifier.
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*cabinDomain.Location, error) {
	var model LocationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Location", id.String())
		}
		return nil, fmt.Errorf("failed to find location by ID: %w", err)
	}
	return &cabinDomain.Location{
		ID:      model.ID,
		Country: model.Country,
		City:    model.City,
		Address: model.Address,
	}, nil
}

// Save persists a new location.
func (r *GormLocationRepository) Save(ctx context.Context, loc *cabinDomain.Location) error {
	model := &LocationModel{
		ID:      loc.ID,
		Country: loc.Country,
		City:    loc.City,
		Address: loc.Address,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

// Delete removes a location permanently.
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&LocationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toCabinModel(c *cabinDomain.Cabin) *CabinModel {
	return &CabinModel{
		ID:             c.ID(),
		Name:           c.Name(),
		MaxNumOfGuests: c.MaxNumOfGuests(),
		PriceCents:     c.Price(),
		DiscountCents:  c.Discount(),
		Description:    c.Description(),
		ImageURL:       c.ImageURL(),
		LocationID:     c.LocationID(),
		Version:        c.Version(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

func toDomainCabin(m *CabinModel) *cabinDomain.Cabin {
	return cabinDomain.ReconstructCabin(
		m.ID,
		m.Name,
		m.MaxNumOfGuests,
		m.PriceCents,
		m.DiscountCents,
		m.Description,
		m.ImageURL,
		m.LocationID,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
