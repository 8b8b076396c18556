package repository

import (
	"context"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
)

// DefaultBookingsKey is the single key the booking collection lives under
const DefaultBookingsKey = "bookings"

// BookingStore is the persistence boundary for bookings. The whole
// collection is read and rewritten on every change; a missing key reads
// as an empty collection.
type BookingStore interface {
	// List returns every booking in insertion order
	List(ctx context.Context) ([]models.Booking, error)

	// Append adds b to the end of the collection. Fails with a conflict if the id is taken.
	Append(ctx context.Context, b models.Booking) error

	// Update applies patch to the booking with id and returns the stored result.
	// changed is false when the patch left the booking as it was.
	// Unknown ids are not found; disallowed status changes are conflicts.
	Update(ctx context.Context, id string, patch models.BookingPatch) (updated models.Booking, changed bool, err error)
}

// Pinger is implemented by stores backed by a remote service
type Pinger interface {
	Ping(ctx context.Context) error
}

// MentorCacheInterface is the read side of the mentor cache
type MentorCacheInterface interface {
	Get() ([]*models.Mentor, error)
	GetByID(id string) (*models.Mentor, error)
	Categories() ([]string, error)
	IsReady() bool
}
