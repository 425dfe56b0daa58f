package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	settingsDomain "github.com/pinecove/cabin-console/internal/domain/settings"
)

// settingsRowID is the fixed primary key of the settings singleton row.
const settingsRowID = 1

// SettingsModel is the GORM model for the settings table. The table holds a
// single row.
type SettingsModel struct {
	ID                  int       `gorm:"primaryKey"`
	BreakfastPriceCents int64     `gorm:"not null;default:0"`
	MinNights           int       `gorm:"not null;default:1"`
	MaxNights           int       `gorm:"not null;default:90"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (SettingsModel) TableName() string {
	return "settings"
}

// GormSettingsRepository is the GORM-based implementation of settings.Repository.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get retrieves the current settings, seeding defaults on first use.
func (r *GormSettingsRepository) Get(ctx context.Context) (settingsDomain.Settings, error) {
	var model SettingsModel
	err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model = SettingsModel{
			ID:                  settingsRowID,
			BreakfastPriceCents: 1500,
			MinNights:           1,
			MaxNights:           90,
			UpdatedAt:           time.Now().UTC(),
		}
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return settingsDomain.Settings{}, fmt.Errorf("failed to seed settings: %w", err)
		}
	} else if err != nil {
		return settingsDomain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	return settingsDomain.Settings{
		BreakfastPrice: model.BreakfastPriceCents,
		MinNights:      model.MinNights,
		MaxNights:      model.MaxNights,
	}, nil
}

// Update replaces the stored settings and returns the new value.
func (r *GormSettingsRepository) Update(ctx context.Context, s settingsDomain.Settings) (settingsDomain.Settings, error) {
	if err := s.Validate(); err != nil {
		return settingsDomain.Settings{}, err
	}

	model := SettingsModel{
		ID:                  settingsRowID,
		BreakfastPriceCents: s.BreakfastPrice,
		MinNights:           s.MinNights,
		MaxNights:           s.MaxNights,
		UpdatedAt:           time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return settingsDomain.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return s, nil
}
