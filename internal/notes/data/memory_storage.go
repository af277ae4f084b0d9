package data

import "sync"

// MemoryStorage keeps blobs in a map. It backs --ephemeral sessions and
// tests, and lets tests plant arbitrary raw values under a key.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string][]byte
	saves  int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// SetRaw stores raw bytes under key without encoding them.
func (s *MemoryStorage) SetRaw(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), raw...)
}

// Raw returns the bytes stored under key.
func (s *MemoryStorage) Raw(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Saves counts calls to Save.
func (s *MemoryStorage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStorage) Load() []Note {
	raw, ok := s.Raw(StorageKey)
	if !ok {
		return []Note{}
	}
	return decodeOrEmpty(raw, "memory")
}

func (s *MemoryStorage) Save(notes []Note) error {
	raw, err := EncodeNotes(notes)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[StorageKey] = raw
	s.saves++
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
