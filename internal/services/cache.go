package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CacheStore is the backing store behind the data cache. The redis
// implementation serves deployments; the in-memory one serves tests and
// single-process development.
type CacheStore interface {
	// Get unmarshals the stored value into dest and reports whether a
	// fresh entry was found. Expired entries are treated as absent.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	// Set stores the value with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CacheService memoizes provider fetches with per-key TTLs and coalesces
// concurrent requests for the same key into a single upstream call.
type CacheService struct {
	store  CacheStore
	logger *logrus.Logger

	mu       sync.Mutex
	inflight map[string]*inflightCall
}

type inflightCall struct {
	done    chan struct{}
	payload []byte
	err     error
}

// NewCacheService creates a cache service over the given store.
func NewCacheService(store CacheStore, logger *logrus.Logger) *CacheService {
	return &CacheService{
		store:    store,
		logger:   logger,
		inflight: make(map[string]*inflightCall),
	}
}

// BuildCacheKey constructs the canonical cache key for a league resource.
func BuildCacheKey(leagueID string, season int, resource string, week int) string {
	return fmt.Sprintf("league:%s:%d:%s:%d", leagueID, season, resource, week)
}

// GetOrFetch returns the cached value for key if present and unexpired;
// otherwise it runs fetch, caches the result and returns it. Failed
// fetches are never cached. While a fetch for a key is in flight, every
// other caller for that key waits on it and observes the same resolved
// value; a caller that abandons its request does not cancel the shared
// fetch, since other waiters may still need the result.
func (c *CacheService) GetOrFetch(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetch func(context.Context) (interface{}, error)) error {
	if found, err := c.store.Get(ctx, key, dest); err == nil && found {
		c.logger.WithFields(logrus.Fields{
			"component": "cache",
			"key":       key,
		}).Debug("Cache hit")
		return nil
	}

	c.mu.Lock()
	call, joined := c.inflight[key]
	if !joined {
		call = &inflightCall{done: make(chan struct{})}
		c.inflight[key] = call
	}
	c.mu.Unlock()

	if !joined {
		// The fetch runs detached from the caller's context so that an
		// abandoned request cannot starve the other waiters.
		go c.runFetch(key, ttl, call, fetch)
	}

	select {
	case <-call.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if call.err != nil {
		return call.err
	}
	return json.Unmarshal(call.payload, dest)
}

func (c *CacheService) runFetch(key string, ttl time.Duration, call *inflightCall, fetch func(context.Context) (interface{}, error)) {
	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
		close(call.done)
	}()

	value, err := fetch(context.Background())
	if err != nil {
		call.err = err
		c.logger.WithFields(logrus.Fields{
			"component": "cache",
			"key":       key,
		}).WithError(err).Debug("Fetch failed, not caching")
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		call.err = fmt.Errorf("failed to marshal cache value: %w", err)
		return
	}
	call.payload = payload

	if err := c.store.Set(context.Background(), key, json.RawMessage(payload), ttl); err != nil {
		// A store failure degrades to a cache miss next time; the caller
		// still gets its value.
		c.logger.WithFields(logrus.Fields{
			"component": "cache",
			"key":       key,
		}).WithError(err).Warn("Failed to store cache value")
	}

	c.logger.WithFields(logrus.Fields{
		"component": "cache",
		"key":       key,
		"ttl":       ttl.String(),
	}).Debug("Cached value")
}
