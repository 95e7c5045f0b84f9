// ABOUTME: Store interface for single-key document persistence
// ABOUTME: In-memory implementation used by tests and ephemeral runs
package storage

import "sync"

// DocumentKey is the single logical key the whole tracker document lives
// under.
const DocumentKey = "vitus:data"

// Store persists opaque values by key. A missing key reads as (nil, nil).
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns the stored value, or (nil, nil) when the key is absent.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value under key.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}
