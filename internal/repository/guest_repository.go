package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinecove/cabin-console/internal/domain"
	guestDomain "github.com/pinecove/cabin-console/internal/domain/guest"
)

// GuestModel is the GORM model for the guests table.
type GuestModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:100"`
	Email     string    `gorm:"uniqueIndex;not null;size:200"`
	Phone     string    `gorm:"size:30"`
	Avatar    string    `gorm:"size:500"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (GuestModel) TableName() string {
	return "guests"
}

// GormGuestRepository is the GORM-based implementation of guest.Repository.
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGormGuestRepository creates a new GormGuestRepository.
func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// FindByID retrieves a guest by its unique identifier.
func (r *GormGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Guest", id.String())
		}
		return nil, fmt.Errorf("failed to find guest by ID: %w", err)
	}
	return toDomainGuest(&model), nil
}

// FindByEmail retrieves a guest by email, the uniqueness key.
func (r *GormGuestRepository) FindByEmail(ctx context.Context, email string) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Guest", email)
		}
		return nil, fmt.Errorf("failed to find guest by email: %w", err)
	}
	return toDomainGuest(&model), nil
}

// Save persists a new guest.
func (r *GormGuestRepository) Save(ctx context.Context, g *guestDomain.Guest) error {
	model := &GuestModel{
		ID:        g.ID(),
		Name:      g.Name(),
		Email:     g.Email(),
		Phone:     g.Phone(),
		Avatar:    g.Avatar(),
		CreatedAt: g.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save guest: %w", err)
	}
	return nil
}

// Delete removes a guest permanently.
func (r *GormGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GuestModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	return nil
}

func toDomainGuest(m *GuestModel) *guestDomain.Guest {
	return guestDomain.ReconstructGuest(m.ID, m.Name, m.Email, m.Phone, m.Avatar, m.CreatedAt)
}
