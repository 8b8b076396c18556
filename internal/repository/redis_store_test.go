package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) BookingStore {
		_, client := newMiniRedis(t)
		return NewRedisStore(client, "bookings")
	})
}

func TestRedisStore_StoresJSONArrayUnderKey(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisStore(client, "bookings")

	require.NoError(t, store.Append(context.Background(), sampleBooking("k-1")))

	raw, err := mr.Get("bookings")
	require.NoError(t, err)
	assert.Contains(t, raw, `"id":"k-1"`)
	assert.Equal(t, byte('['), raw[0])
}

func TestRedisStore_ConcurrentWriterConflicts(t *testing.T) {
	_, client := newMiniRedis(t)
	store := NewRedisStore(client, "bookings")
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, sampleBooking("first")))

	// another writer replaces the key between our read and our write
	interfering := func(bookings []models.Booking) ([]models.Booking, models.Booking, bool, error) {
		require.NoError(t, client.Set(ctx, "bookings", "[]", 0).Err())
		return appendMutation(sampleBooking("second"))(bookings)
	}

	_, _, err := store.mutate(ctx, interfering)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConflict)

	bookings, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings, "the interfering write must win, ours must not overwrite it")
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	store := NewRedisStore(client, "")
	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	_, err = NewRedisClient(context.Background(), RedisOptions{Addr: mr.Addr()})
	assert.Error(t, err)
}
