package guest

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for guests.
type Repository interface {
	// FindByID retrieves a guest by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Guest, error)

	// FindByEmail retrieves a guest by email, the uniqueness key.
	FindByEmail(ctx context.Context, email string) (*Guest, error)

	// Save persists a new guest.
	Save(ctx context.Context, guest *Guest) error

	// Delete removes a guest permanently. Used to compensate a failed
	// guest-then-booking creation.
	Delete(ctx context.Context, id uuid.UUID) error
}
