package testutil

import (
	"context"
	"encoding/json"
	"path"
	"strconv"
	"sync"
	"time"
)

// MemoryCache is an in-process cache.Cache for service tests. Values go through
// JSON like they do in Redis. Setting Err makes every call fail with it.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	Err     error

	Gets, Sets, Invalidations int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if m.Err != nil {
		return false, m.Err
	}
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.Err != nil {
		return m.Err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

// Incr keeps the counter as a JSON number so Get can read it back like Redis does.
func (m *MemoryCache) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	if raw, ok := m.entries[key]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	n++
	m.entries[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (m *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invalidations++
	if m.Err != nil {
		return m.Err
	}
	for k := range m.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return m.Err
}

// Has reports whether key is currently cached.
func (m *MemoryCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}
