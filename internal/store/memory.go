package store

import (
	"context"
	"sync"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]map[string]string)}
}

func memoryKey(sessionID, key string) string {
	return sessionID + ":" + key
}

// Put replaces the record under key.
func (s *MemoryStore) Put(_ context.Context, sessionID, key string, record map[string]string) error {
	copied := make(map[string]string, len(record))
	for k, v := range record {
		copied[k] = v
	}

	s.mu.Lock()
	s.records[memoryKey(sessionID, key)] = copied
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the record under key.
func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[memoryKey(sessionID, key)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make(map[string]string, len(record))
	for k, v := range record {
		copied[k] = v
	}
	return copied, nil
}

// Delete removes the record under key.
func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	delete(s.records, memoryKey(sessionID, key))
	s.mu.Unlock()
	return nil
}
