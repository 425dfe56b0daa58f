package cabin

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinecove/cabin-console/internal/domain"
)

// Location is the value object describing where a cabin is. It is persisted
// in its own table and deleted together with its cabin.
type Location struct {
	ID      uuid.UUID `json:"id"`
	Country string    `json:"country"`
	City    string    `json:"city"`
	Address string    `json:"address"`
}

// Cabin is the aggregate root for a rentable cabin.
type Cabin struct {
	id             uuid.UUID
	name           string
	maxNumOfGuests int
	price          int64
	discount       int64
	description    string
	imageURL       string
	locationID     uuid.UUID

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewCabin creates a new Cabin aggregate. The per-night discount may never
// exceed the per-night price.
func NewCabin(
	name string,
	maxNumOfGuests int,
	price, discount int64,
	description, imageURL string,
	locationID uuid.UUID,
) (*Cabin, error) {
	if name == "" {
		return nil, domain.NewValidationError("cabin name is required")
	}
	if maxNumOfGuests <= 0 {
		return nil, domain.NewValidationError("max number of guests must be positive")
	}
	if price < 0 {
		return nil, domain.NewValidationError("price must not be negative")
	}
	if discount < 0 || discount > price {
		return nil, domain.NewValidationError("discount must be between zero and the price")
	}
	if locationID == uuid.Nil {
		return nil, domain.NewValidationError("location ID is required")
	}

	now := time.Now().UTC()
	return &Cabin{
		id:             uuid.New(),
		name:           name,
		maxNumOfGuests: maxNumOfGuests,
		price:          price,
		discount:       discount,
		description:    description,
		imageURL:       imageURL,
		locationID:     locationID,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructCabin rebuilds a Cabin from persistence data (no validation).
func ReconstructCabin(
	id uuid.UUID,
	name string,
	maxNumOfGuests int,
	price, discount int64,
	description, imageURL string,
	locationID uuid.UUID,
	version int64,
	createdAt, updatedAt time.Time,
) *Cabin {
	return &Cabin{
		id:             id,
		name:           name,
		maxNumOfGuests: maxNumOfGuests,
		price:          price,
		discount:       discount,
		description:    description,
		imageURL:       imageURL,
		locationID:     locationID,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ID returns the cabin's unique identifier.
func (c *Cabin) ID() uuid.UUID { return c.id }

// Name returns the cabin's display name.
func (c *Cabin) Name() string { return c.name }

// MaxNumOfGuests returns the cabin's capacity.
func (c *Cabin) MaxNumOfGuests() int { return c.maxNumOfGuests }

// Price returns the nightly price in cents.
func (c *Cabin) Price() int64 { return c.price }

// Discount returns the nightly discount in cents.
func (c *Cabin) Discount() int64 { return c.discount }

// Description returns the cabin description.
func (c *Cabin) Description() string { return c.description }

// ImageURL returns the cabin's image URL.
func (c *Cabin) ImageURL() string { return c.imageURL }

// LocationID returns the cabin's location ID.
func (c *Cabin) LocationID() uuid.UUID { return c.locationID }

// Version returns the entity version for optimistic locking.
func (c *Cabin) Version() int64 { return c.version }

// CreatedAt returns the creation timestamp.
func (c *Cabin) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (c *Cabin) UpdatedAt() time.Time { return c.updatedAt }

// UpdateDetails replaces the cabin's editable fields, re-checking invariants.
func (c *Cabin) UpdateDetails(name string, maxNumOfGuests int, price, discount int64, description, imageURL string) error {
	if name == "" {
		return domain.NewValidationError("cabin name is required")
	}
	if maxNumOfGuests <= 0 {
		return domain.NewValidationError("max number of guests must be positive")
	}
	if price < 0 {
		return domain.NewValidationError("price must not be negative")
	}
	if discount < 0 || discount > price {
		return domain.NewValidationError("discount must be between zero and the price")
	}

	c.name = name
	c.maxNumOfGuests = maxNumOfGuests
	c.price = price
	c.discount = discount
	c.description = description
	c.imageURL = imageURL
	c.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (c *Cabin) IncrementVersion() {
	c.version++
	c.updatedAt = time.Now().UTC()
}
