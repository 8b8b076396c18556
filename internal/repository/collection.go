package repository

import (
	"encoding/json"
	"fmt"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/pkg/errors"
)

// mutation rewrites the collection and returns the booking it touched.
// changed=false means nothing needs to be written.
type mutation func(bookings []models.Booking) (next []models.Booking, touched models.Booking, changed bool, err error)

// decodeCollection parses a stored collection; empty input is an empty collection
func decodeCollection(raw []byte) ([]models.Booking, error) {
	if len(raw) == 0 {
		return []models.Booking{}, nil
	}
	var bookings []models.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings collection: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// encodeCollection serializes the full collection as a JSON array
func encodeCollection(bookings []models.Booking) ([]byte, error) {
	if bookings == nil {
		bookings = []models.Booking{}
	}
	raw, err := json.Marshal(bookings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bookings collection: %w", err)
	}
	return raw, nil
}

func appendMutation(b models.Booking) mutation {
	return func(bookings []models.Booking) ([]models.Booking, models.Booking, bool, error) {
		for i := range bookings {
			if bookings[i].ID == b.ID {
				return nil, models.Booking{}, false, errors.ConflictError("booking id " + b.ID + " already exists")
			}
		}
		next := make([]models.Booking, 0, len(bookings)+1)
		next = append(next, bookings...)
		next = append(next, b)
		return next, b, true, nil
	}
}

func updateMutation(id string, patch models.BookingPatch) mutation {
	return func(bookings []models.Booking) ([]models.Booking, models.Booking, bool, error) {
		for i := range bookings {
			if bookings[i].ID != id {
				continue
			}
			current := bookings[i]
			if patch.Status != nil {
				if !current.Status.CanTransitionTo(*patch.Status) {
					return nil, current, false, errors.ConflictError(
						fmt.Sprintf("booking status %s cannot change to %s", current.Status, *patch.Status))
				}
			}
			updated := patch.Apply(current)
			if updated == current {
				return bookings, current, false, nil
			}
			next := append([]models.Booking(nil), bookings...)
			next[i] = updated
			return next, updated, true, nil
		}
		return nil, models.Booking{}, false, errors.NotFoundError("booking")
	}
}
