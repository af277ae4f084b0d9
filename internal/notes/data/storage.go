package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"keepnotes/internal/logs"
)

// StorageKey is the fixed key the whole collection is stored under.
const StorageKey = "notes.keep.clone.v1"

// ErrNotSequence is returned by DecodeNotes when the blob is valid JSON but
// not an array.
var ErrNotSequence = errors.New("stored notes are not a sequence")

// Storage persists the full note collection as a single blob.
//
// Load never fails: a missing key, a corrupt blob or a non-array value all
// come back as an empty collection and are logged. Save overwrites whatever
// was stored before.
type Storage interface {
	Load() []Note
	Save(notes []Note) error
	Close() error
}

// EncodeNotes serializes the collection. A nil slice is written as [].
func EncodeNotes(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return json.Marshal(notes)
}

// DecodeNotes parses a stored blob. Elements that are not objects or carry
// no id are skipped, and a repeated id keeps its first occurrence, so the
// returned collection always has unique ids.
func DecodeNotes(raw []byte) ([]Note, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []Note{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		var anyValue any
		if json.Unmarshal(trimmed, &anyValue) == nil {
			return nil, ErrNotSequence
		}
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]Note, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		var n Note
		if err := json.Unmarshal(item, &n); err != nil {
			logs.Logger.Printf("Skipping stored note %d: %v", i, err)
			continue
		}
		if n.ID == "" {
			logs.Logger.Printf("Skipping stored note %d: missing id", i)
			continue
		}
		if seen[n.ID] {
			logs.Logger.Printf("Skipping stored note %d: duplicate id %s", i, n.ID)
			continue
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}
	return notes, nil
}

// decodeOrEmpty is the shared Load tail of every backend.
func decodeOrEmpty(raw []byte, source string) []Note {
	notes, err := DecodeNotes(raw)
	if err != nil {
		logs.Logger.Printf("Failed to load notes from %s: %v", source, err)
		return []Note{}
	}
	return notes
}

// OpenStorage builds the backend named by backend ("file", "sqlite" or
// "memory") rooted at dir.
func OpenStorage(backend, dir string) (Storage, error) {
	switch backend {
	case "", "file":
		return NewFileStorage(filepath.Join(dir, StorageKey+".json")), nil
	case "sqlite":
		return NewSQLiteStorage(filepath.Join(dir, "keepnotes.db"))
	case "memory":
		return NewMemoryStorage(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
