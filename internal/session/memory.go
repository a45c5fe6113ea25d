package session

import (
	"sync"

	"github.com/bimmerbailey/sanictl/internal/mask"
)

// MemoryStore is an in-process Store backed by a mutex-guarded map. It does
// not survive process restarts.
type MemoryStore struct {
	mu   sync.RWMutex
	maps map[string][]mask.RehydrationEntry
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[string][]mask.RehydrationEntry)}
}

func (s *MemoryStore) Put(sessionID string, m *mask.RehydrationMap) error {
	entries := m.Entries()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[sessionID] = entries
	return nil
}

func (s *MemoryStore) Get(sessionID string) (*mask.RehydrationMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.maps[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return mask.FromEntries(entries), nil
}

func (s *MemoryStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.maps, sessionID)
	return nil
}
