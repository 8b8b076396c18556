package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/mentorsetu/mentorsetu-api/pkg/db"
	"github.com/stretchr/testify/require"
)

// Runs only when TEST_DATABASE_URL points at a disposable database
func TestPostgresStore_Contract(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	migrations, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(url, "file://"+migrations, db.Up))

	pool, err := db.NewPool(context.Background(), db.PoolConfig{URL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(pool) })

	runStoreContract(t, func(t *testing.T) BookingStore {
		key := "bookings-test-" + uuid.NewString()
		t.Cleanup(func() {
			_, _ = pool.Exec(context.Background(), "DELETE FROM collections WHERE key = $1", key)
		})
		return NewPostgresStore(pool, key)
	})
}
