// Package cache is a process-local read cache keyed by query identity.
// Mutations invalidate the keys they touch so subsequent reads stay
// consistent; invalidation is driven by the mutation protocol's success
// callback.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Well-known cache keys.
const (
	KeyBookings        = "bookings"
	KeyCabins          = "cabins"
	KeySettings        = "settings"
	bookingKeyPrefix   = "booking:"
	bookingDatesPrefix = "bookingDates:"
)

// BookingKey returns the cache key for a single booking.
func BookingKey(id uuid.UUID) string {
	return bookingKeyPrefix + id.String()
}

// BookingsListKey returns the cache key for one page of the booking listing.
func BookingsListKey(status string, page, limit int) string {
	return fmt.Sprintf("%s:%s:%d:%d", KeyBookings, status, page, limit)
}

// BookingDatesKey returns the cache key for a cabin's occupied ranges in a month.
func BookingDatesKey(cabinID uuid.UUID, month time.Time) string {
	return fmt.Sprintf("%s%s:%s", bookingDatesPrefix, cabinID, month.Format("2006-01"))
}

// Store is a concurrency-safe keyed cache.
type Store struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]interface{})}
}

// Get returns the cached value for key.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores a value under key.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// Invalidate drops the given keys.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
}

// InvalidatePrefix drops every key starting with prefix.
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

// InvalidateBookingDates drops every cached occupied-ranges entry.
func (s *Store) InvalidateBookingDates() {
	s.InvalidatePrefix(bookingDatesPrefix)
}
