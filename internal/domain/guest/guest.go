package guest

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinecove/cabin-console/internal/domain"
)

// Guest is a person who books cabins. Guests are unique by email: creating a
// booking for an email that already exists reuses the stored guest.
type Guest struct {
	id        uuid.UUID
	name      string
	email     string
	phone     string
	avatar    string
	createdAt time.Time
}

// NewGuest creates a new Guest.
func NewGuest(name, email, phone, avatar string) (*Guest, error) {
	if name == "" {
		return nil, domain.NewValidationError("guest name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("guest email is required")
	}

	return &Guest{
		id:        uuid.New(),
		name:      name,
		email:     email,
		phone:     phone,
		avatar:    avatar,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructGuest rebuilds a Guest from persistence data (no validation).
func ReconstructGuest(id uuid.UUID, name, email, phone, avatar string, createdAt time.Time) *Guest {
	return &Guest{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		avatar:    avatar,
		createdAt: createdAt,
	}
}

// ID returns the guest's unique identifier.
func (g *Guest) ID() uuid.UUID { return g.id }

// Name returns the guest's name.
func (g *Guest) Name() string { return g.name }

// Email returns the guest's email, the uniqueness key.
func (g *Guest) Email() string { return g.email }

// Phone returns the guest's phone number.
func (g *Guest) Phone() string { return g.phone }

// Avatar returns the guest's avatar URL, if any.
func (g *Guest) Avatar() string { return g.avatar }

// CreatedAt returns the creation timestamp.
func (g *Guest) CreatedAt() time.Time { return g.createdAt }
