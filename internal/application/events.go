package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pinecove/cabin-console/internal/kafka"
)

// EventPublisher publishes CloudEvents to a topic. Satisfied by kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// Kafka topics and event types emitted by the console.
const (
	TopicBookingEvents = "booking.events"

	EventBookingCreated          = "booking.created"
	EventBookingUpdated          = "booking.updated"
	EventBookingConfirmed        = "booking.confirmed"
	EventBookingCheckedIn        = "booking.checked_in"
	EventBookingCheckedOut       = "booking.checked_out"
	EventBookingPaymentConfirmed = "booking.payment_confirmed"
	EventBookingCanceled         = "booking.canceled"
	EventBookingDeleted          = "booking.deleted"
	EventBookingRestored         = "booking.restored"

	TopicCabinEvents = "cabin.events"

	EventCabinCreated = "cabin.created"
	EventCabinUpdated = "cabin.updated"
	EventCabinDeleted = "cabin.deleted"
)

// BookingEvent is the payload for every booking lifecycle event.
type BookingEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	CabinID         uuid.UUID `json:"cabin_id"`
	GuestID         uuid.UUID `json:"guest_id"`
	Status          string    `json:"status"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	TotalPaidCents  int64     `json:"total_paid_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// CabinEvent is the payload for cabin lifecycle events.
type CabinEvent struct {
	CabinID    uuid.UUID `json:"cabin_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
