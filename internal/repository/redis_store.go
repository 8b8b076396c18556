package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
	apperrors "github.com/mentorsetu/mentorsetu-api/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the collection as one string key. Writes are optimistic
// WATCH/MULTI transactions: if another writer changed the key first the
// write is rejected with a conflict rather than overwriting it.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// RedisOptions configures NewRedisClient
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// NewRedisStore creates a store on an existing client
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultBookingsKey
	}
	return &RedisStore{client: client, key: key}
}

// Ping checks redis connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// List returns the stored collection
func (s *RedisStore) List(ctx context.Context) ([]models.Booking, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", s.key, err)
	}
	return decodeCollection(raw)
}

// Append adds a booking to the collection
func (s *RedisStore) Append(ctx context.Context, b models.Booking) error {
	_, _, err := s.mutate(ctx, appendMutation(b))
	return err
}

// Update patches one booking
func (s *RedisStore) Update(ctx context.Context, id string, patch models.BookingPatch) (models.Booking, bool, error) {
	return s.mutate(ctx, updateMutation(id, patch))
}

func (s *RedisStore) mutate(ctx context.Context, m mutation) (models.Booking, bool, error) {
	var touched models.Booking
	var wrote bool

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, s.key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to read key %s: %w", s.key, err)
		}

		bookings, err := decodeCollection(raw)
		if err != nil {
			return err
		}
		next, result, changed, err := m(bookings)
		touched = result
		if err != nil || !changed {
			return err
		}
		wrote = true

		encoded, err := encodeCollection(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, encoded, 0)
			return nil
		})
		return err
	}, s.key)

	if errors.Is(err, redis.TxFailedErr) {
		return models.Booking{}, false, apperrors.ConflictError("bookings changed concurrently, retry the request")
	}
	if err != nil {
		return models.Booking{}, false, err
	}
	return touched, wrote, nil
}
