package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryCacheStore is an in-process cache store used for tests and
// single-node development where redis is not available.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	payload   []byte
	fetchedAt time.Time
	expiresAt time.Time
}

// NewMemoryCacheStore creates an empty in-memory store.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryCacheStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	// An entry is never served past its TTL; expired entries are evicted
	// on the next read.
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryCacheStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	now := s.now()
	s.mu.Lock()
	s.entries[key] = memoryEntry{
		payload:   payload,
		fetchedAt: now,
		expiresAt: now.Add(ttl),
	}
	s.mu.Unlock()
	return nil
}
