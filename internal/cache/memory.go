package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"SNCF_Proxy/internal/models"
)

// MemoryCache implements Service using in-memory storage.
// Entries expire lazily: a stale entry stays in the map until the next
// successful Put for the same key replaces it.
type MemoryCache struct {
	data  map[string]*cacheEntry
	ttl   time.Duration
	now   func() time.Time
	mutex sync.RWMutex
}

// cacheEntry represents a single cached upstream payload
type cacheEntry struct {
	insertedAt time.Time
	payload    json.RawMessage
}

// NewMemoryCache creates a new in-memory cache whose entries stay fresh for ttl
func NewMemoryCache(ttl time.Duration) (Service, error) {
	cache, err := newMemoryCache(ttl, time.Now)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

// newMemoryCache creates the concrete implementation
func newMemoryCache(ttl time.Duration, now func() time.Time) (*MemoryCache, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("TTL must be positive, got: %v", ttl)
	}

	return &MemoryCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
		now:  now,
	}, nil
}

// Get returns a copy of the payload stored for key if it is younger than
// the TTL
func (m *MemoryCache) Get(ctx context.Context, key string) (json.RawMessage, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	entry, exists := m.data[key]
	if !exists {
		return nil, models.ErrCacheMiss
	}

	if m.now().Sub(entry.insertedAt) >= m.ttl {
		return nil, models.ErrCacheMiss
	}

	return append(json.RawMessage(nil), entry.payload...), nil
}

// Put replaces whatever is stored for key
func (m *MemoryCache) Put(ctx context.Context, key string, payload json.RawMessage) error {
	if key == "" {
		return fmt.Errorf("%w: empty cache key", models.ErrInvalidInput)
	}

	// Own a copy so callers cannot mutate the cached bytes
	stored := make(json.RawMessage, len(payload))
	copy(stored, payload)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data[key] = &cacheEntry{
		insertedAt: m.now(),
		payload:    stored,
	}

	return nil
}

// Size returns the current number of entries, stale ones included
func (m *MemoryCache) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.data)
}
