package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mentorsetu/mentorsetu-api/internal/cache"
	"github.com/mentorsetu/mentorsetu-api/internal/catalog"
	"github.com/mentorsetu/mentorsetu-api/internal/repository"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func newCatalogRepository(t *testing.T) *repository.MentorRepository {
	t.Helper()
	mentorCache := cache.NewMentorCache(catalog.NewStaticSource(), 600)
	require.NoError(t, mentorCache.Initialize(context.Background()))
	t.Cleanup(mentorCache.Stop)
	return repository.NewMentorRepository(mentorCache)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequenceIDs hands out ids in order, then falls back to numbered ids
func sequenceIDs(ids ...string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		if n <= len(ids) {
			return ids[n-1]
		}
		return fmt.Sprintf("id-%d", n)
	}
}
