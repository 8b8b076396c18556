package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
)

// PostgresStore keeps the collection as one JSONB row in the collections
// table. Writers lock the row with SELECT ... FOR UPDATE, so concurrent
// writes queue instead of overwriting each other.
type PostgresStore struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresStore creates a store on an existing pool
func NewPostgresStore(pool *pgxpool.Pool, key string) *PostgresStore {
	if key == "" {
		key = DefaultBookingsKey
	}
	return &PostgresStore{pool: pool, key: key}
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// List returns the stored collection
func (s *PostgresStore) List(ctx context.Context) ([]models.Booking, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, "SELECT value FROM collections WHERE key = $1", s.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", s.key, err)
	}
	return decodeCollection(raw)
}

// Append adds a booking to the collection
func (s *PostgresStore) Append(ctx context.Context, b models.Booking) error {
	_, _, err := s.mutate(ctx, appendMutation(b))
	return err
}

// Update patches one booking
func (s *PostgresStore) Update(ctx context.Context, id string, patch models.BookingPatch) (models.Booking, bool, error) {
	return s.mutate(ctx, updateMutation(id, patch))
}

func (s *PostgresStore) mutate(ctx context.Context, m mutation) (models.Booking, bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Booking{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// make sure the row exists so FOR UPDATE has something to lock
	_, err = tx.Exec(ctx,
		"INSERT INTO collections (key, value) VALUES ($1, '[]'::jsonb) ON CONFLICT (key) DO NOTHING",
		s.key)
	if err != nil {
		return models.Booking{}, false, fmt.Errorf("failed to ensure collection row: %w", err)
	}

	var raw []byte
	err = tx.QueryRow(ctx, "SELECT value FROM collections WHERE key = $1 FOR UPDATE", s.key).Scan(&raw)
	if err != nil {
		return models.Booking{}, false, fmt.Errorf("failed to lock collection %s: %w", s.key, err)
	}

	bookings, err := decodeCollection(raw)
	if err != nil {
		return models.Booking{}, false, err
	}
	next, touched, changed, err := m(bookings)
	if err != nil || !changed {
		return touched, false, err
	}

	encoded, err := encodeCollection(next)
	if err != nil {
		return models.Booking{}, false, err
	}
	_, err = tx.Exec(ctx,
		"UPDATE collections SET value = $2::jsonb, updated_at = now() WHERE key = $1",
		s.key, string(encoded))
	if err != nil {
		return models.Booking{}, false, fmt.Errorf("failed to write collection %s: %w", s.key, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Booking{}, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return touched, true, nil
}
