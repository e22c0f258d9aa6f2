package storage

import (
	"slices"
	"sync"
)

// MemoryStore keeps documents in process memory. It is used by tests and
// by --store memory.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string][]byte
	loaded bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	return nil
}

func (s *MemoryStore) Load() error { return s.Init() }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, false, ErrNotLoaded
	}
	doc, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(doc), true, nil
}

func (s *MemoryStore) Set(key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.docs[key] = slices.Clone(doc)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *MemoryStore) GetConfigPath() string { return "memory" }
