package repository

import (
	"context"
	"sync"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
)

// MemoryStore keeps the serialized collection in process memory.
// Writes are serialized by a mutex, so no update is lost.
type MemoryStore struct {
	mu   sync.Mutex
	key  string
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store for key
func NewMemoryStore(key string) *MemoryStore {
	if key == "" {
		key = DefaultBookingsKey
	}
	return &MemoryStore{key: key, data: make(map[string][]byte)}
}

// List returns the stored collection
func (s *MemoryStore) List(ctx context.Context) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	raw := s.data[s.key]
	s.mu.Unlock()
	return decodeCollection(raw)
}

// Append adds a booking to the collection
func (s *MemoryStore) Append(ctx context.Context, b models.Booking) error {
	_, _, err := s.mutate(ctx, appendMutation(b))
	return err
}

// Update patches one booking
func (s *MemoryStore) Update(ctx context.Context, id string, patch models.BookingPatch) (models.Booking, bool, error) {
	return s.mutate(ctx, updateMutation(id, patch))
}

func (s *MemoryStore) mutate(ctx context.Context, m mutation) (models.Booking, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := decodeCollection(s.data[s.key])
	if err != nil {
		return models.Booking{}, false, err
	}
	next, touched, changed, err := m(bookings)
	if err != nil || !changed {
		return touched, false, err
	}
	raw, err := encodeCollection(next)
	if err != nil {
		return models.Booking{}, false, err
	}
	s.data[s.key] = raw
	return touched, true, nil
}

// Raw returns the serialized collection
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data[s.key]...)
}

// Seed replaces the serialized collection
func (s *MemoryStore) Seed(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key] = append([]byte(nil), raw...)
}
