package varstore

import (
	"maps"
	"sync"
)

// MemoryStore implements ports.VarStore in memory. Values live as long as the process.
type MemoryStore struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMemoryStore creates a MemoryStore seeded with initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	vars := maps.Clone(initial)
	if vars == nil {
		vars = make(map[string]string)
	}
	return &MemoryStore{vars: vars}
}

// Get returns the stored value for name.
func (s *MemoryStore) Get(name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok, nil
}

// Put stores value under name.
func (s *MemoryStore) Put(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
	return nil
}

// All returns a copy of every stored variable.
func (s *MemoryStore) All() (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.vars), nil
}
