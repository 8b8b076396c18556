package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mentorsetu/mentorsetu-api/internal/catalog"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"github.com/mentorsetu/mentorsetu-api/pkg/retry"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MentorDataSource loads the full catalog
type MentorDataSource interface {
	GetAllMentors(ctx context.Context) ([]*models.Mentor, error)
}

const (
	mentorKeyPrefix  = "mentor:id:"
	allMentorsKey    = "mentor:all"
	categoriesKey    = "mentor:categories"
	metadataKey      = "mentor:metadata"
	cacheCheckPeriod = 10 * time.Second
	reloadTimeout    = 10 * time.Second
)

// CacheMetadata stores cache-wide information
type CacheMetadata struct {
	LastRefreshTime time.Time
	MentorCount     int
	Version         int64
}

// MentorCache keeps the catalog in memory keyed by mentor id.
// The ordered id list carries the TTL; individual entries never expire.
type MentorCache struct {
	cache       *gocache.Cache
	dataSource  MentorDataSource
	retryConfig retry.Config
	mu          sync.RWMutex
	refreshing  bool
	ready       bool
	ttl         time.Duration
	lastRefresh time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewMentorCache creates a new mentor cache
func NewMentorCache(dataSource MentorDataSource, ttlSeconds int) *MentorCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &MentorCache{
		cache:       gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		dataSource:  dataSource,
		retryConfig: retry.CatalogConfig(),
		ttl:         ttl,
		stop:        make(chan struct{}),
	}
}

// WithRetryConfig overrides the startup retry policy
func (mc *MentorCache) WithRetryConfig(cfg retry.Config) *MentorCache {
	mc.retryConfig = cfg
	return mc
}

// Initialize populates the cache synchronously and starts the refresh loop.
// Call before accepting requests.
func (mc *MentorCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing mentor cache...")
	startTime := time.Now()

	mentors, err := retry.DoWithResult(ctx, mc.retryConfig, "mentor_cache_initialize", func() ([]*models.Mentor, error) {
		return mc.dataSource.GetAllMentors(ctx)
	})
	if err != nil {
		logger.Error("Failed to initialize mentor cache", zap.Error(err))
		return fmt.Errorf("failed to initialize mentor cache: %w", err)
	}

	mc.populateCache(mentors)

	mc.mu.Lock()
	mc.ready = true
	mc.lastRefresh = time.Now()
	mc.mu.Unlock()

	logger.Info("Mentor cache initialized successfully",
		zap.Int("count", len(mentors)),
		zap.Duration("duration", time.Since(startTime)))

	go mc.schedulePeriodicRefresh()

	return nil
}

// Stop ends the background refresh loop
func (mc *MentorCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stop) })
}

// IsReady returns true if the cache has been successfully initialized
func (mc *MentorCache) IsReady() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.ready
}

// GetByID retrieves a single mentor. Never calls the data source.
func (mc *MentorCache) GetByID(id string) (*models.Mentor, error) {
	if !mc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	key := mentorKeyPrefix + id
	data, found := mc.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues("mentor_by_id").Inc()
		return nil, nil
	}

	mentor, ok := data.(*models.Mentor)
	if !ok {
		logger.Error("Invalid cache data type", zap.String("id", id))
		mc.cache.Delete(key)
		return nil, fmt.Errorf("invalid cache data")
	}

	metrics.CacheHits.WithLabelValues("mentor_by_id").Inc()
	return mentor, nil
}

// lookupList reads one of the TTL-bound lists. When it has expired before the
// refresh loop caught up, the catalog is reloaded once from the data source.
func (mc *MentorCache) lookupList(key, metricName string) ([]string, error) {
	if !mc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	data, found := mc.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues(metricName).Inc()
		logger.Warn("Mentor list expired, reloading catalog", zap.String("key", key))

		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		if err := mc.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("failed to reload mentor catalog: %w", err)
		}
		if data, found = mc.cache.Get(key); !found {
			return nil, fmt.Errorf("mentor catalog unavailable")
		}
	} else {
		metrics.CacheHits.WithLabelValues(metricName).Inc()
	}

	list, ok := data.([]string)
	if !ok {
		logger.Error("Invalid cache data type", zap.String("key", key))
		return nil, fmt.Errorf("invalid cache data for %s", key)
	}
	return list, nil
}

// Get returns all mentors in catalog order. Calls the data source only
// when the id list expired.
func (mc *MentorCache) Get() ([]*models.Mentor, error) {
	ids, err := mc.lookupList(allMentorsKey, "mentor_all")
	if err != nil {
		return nil, err
	}

	mentors := make([]*models.Mentor, 0, len(ids))
	for _, id := range ids {
		mentor, err := mc.GetByID(id)
		if err != nil || mentor == nil {
			logger.Debug("Mentor missing from cache", zap.String("id", id))
			continue
		}
		mentors = append(mentors, mentor)
	}

	return mentors, nil
}

// Categories returns the catalog categories in first-seen order
func (mc *MentorCache) Categories() ([]string, error) {
	categories, err := mc.lookupList(categoriesKey, "mentor_categories")
	if err != nil {
		return nil, err
	}
	return append([]string(nil), categories...), nil
}

// Refresh reloads the catalog now. Concurrent calls collapse into one.
func (mc *MentorCache) Refresh(ctx context.Context) error {
	mc.mu.Lock()
	if mc.refreshing {
		mc.mu.Unlock()
		logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	mc.refreshing = true
	mc.mu.Unlock()

	defer func() {
		mc.mu.Lock()
		mc.refreshing = false
		mc.mu.Unlock()
	}()

	startTime := time.Now()
	mentors, err := mc.dataSource.GetAllMentors(ctx)
	if err != nil {
		logger.Error("Failed to fetch mentors in background refresh", zap.Error(err))
		return err
	}

	mc.populateCache(mentors)

	mc.mu.Lock()
	mc.lastRefresh = time.Now()
	mc.mu.Unlock()

	logger.Info("Mentor cache refreshed",
		zap.Int("count", len(mentors)),
		zap.Duration("duration", time.Since(startTime)))
	return nil
}

// schedulePeriodicRefresh reloads at half the TTL so the list never expires
func (mc *MentorCache) schedulePeriodicRefresh() {
	ticker := time.NewTicker(mc.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case <-ticker.C:
			if err := mc.Refresh(context.Background()); err != nil {
				logger.Error("Scheduled cache refresh failed", zap.Error(err))
			}
		}
	}
}

// populateCache stores every mentor under its own key plus the ordered id list
func (mc *MentorCache) populateCache(mentors []*models.Mentor) {
	ids := make([]string, 0, len(mentors))
	for _, mentor := range mentors {
		mc.cache.Set(mentorKeyPrefix+mentor.ID, mentor, gocache.NoExpiration)
		ids = append(ids, mentor.ID)
	}

	mc.cache.Set(allMentorsKey, ids, mc.ttl)
	mc.cache.Set(categoriesKey, catalog.Categories(mentors), mc.ttl)
	mc.cache.Set(metadataKey, &CacheMetadata{
		LastRefreshTime: time.Now(),
		MentorCount:     len(mentors),
		Version:         time.Now().Unix(),
	}, gocache.NoExpiration)

	metrics.CacheSize.WithLabelValues("mentors").Set(float64(len(mentors)))
}

// GetMetadata returns cache metadata
func (mc *MentorCache) GetMetadata() (*CacheMetadata, error) {
	data, found := mc.cache.Get(metadataKey)
	if !found {
		return nil, fmt.Errorf("metadata not found")
	}

	metadata, ok := data.(*CacheMetadata)
	if !ok {
		return nil, fmt.Errorf("invalid metadata type")
	}

	return metadata, nil
}
