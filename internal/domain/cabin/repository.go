package cabin

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for cabins.
type Repository interface {
	// FindByID retrieves a cabin by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Cabin, error)

	// ListAll retrieves all cabins, ordered by name.
	ListAll(ctx context.Context) ([]*Cabin, error)

	// Count returns the number of cabins (the property's capacity in units).
	Count(ctx context.Context) (int64, error)

	// Save persists a new cabin.
	Save(ctx context.Context, cabin *Cabin) error

	// Update persists changes to an existing cabin with optimistic locking.
	Update(ctx context.Context, cabin *Cabin) error

	// Delete removes a cabin permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationRepository defines the persistence contract for cabin locations.
// Locations are inserted before their cabin and deleted after it; the two
// steps are not transactional, so callers compensate on partial failure.
type LocationRepository interface {
	// FindByID retrieves a location by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// Save persists a new location.
	Save(ctx context.Context, location *Location) error

	// Delete removes a location permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
