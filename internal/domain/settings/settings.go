package settings

import (
	"context"

	"github.com/pinecove/cabin-console/internal/domain"
)

// Settings is the process-wide configuration singleton: the breakfast price
// per guest per night and the allowed stay length. It is refreshed from the
// store on demand and never mutated locally.
type Settings struct {
	BreakfastPrice int64 `json:"breakfast_price"`
	MinNights      int   `json:"min_nights"`
	MaxNights      int   `json:"max_nights"`
}

// Validate checks the settings' internal consistency.
func (s Settings) Validate() error {
	if s.BreakfastPrice < 0 {
		return domain.NewValidationError("breakfast price must not be negative")
	}
	if s.MinNights < 0 {
		return domain.NewValidationError("min nights must not be negative")
	}
	if s.MaxNights < s.MinNights {
		return domain.NewValidationError("max nights must not be less than min nights")
	}
	return nil
}

// Repository defines the persistence contract for the settings singleton.
type Repository interface {
	// Get retrieves the current settings.
	Get(ctx context.Context) (Settings, error)

	// Update replaces the stored settings and returns the new value.
	Update(ctx context.Context, s Settings) (Settings, error)
}
