package cache

import "sync"

// Memory is the default in-process cache. A mutex guards the map so
// concurrent HTTP handlers can share one instance; there is no
// eviction policy on purpose (session-scoped cache).
type Memory struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]any)}
}

func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *Memory) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}
