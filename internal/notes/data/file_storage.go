package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"

	"keepnotes/internal/logs"
)

const tempFilePrefix = "keepnotes-tmp-"

// FileStorage keeps the blob in a single JSON file.
type FileStorage struct {
	path string

	mu       sync.Mutex
	lastHash uint64
	hasHash  bool
}

// NewFileStorage returns a FileStorage writing to path. Nothing is touched
// on disk until the first Save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the blob file location.
func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load() []Note {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []Note{}
	}
	if err != nil {
		logs.Logger.Printf("Failed to read %s: %v", s.path, err)
		return []Note{}
	}
	s.remember(raw)
	return decodeOrEmpty(raw, s.path)
}

func (s *FileStorage) Save(notes []Note) error {
	raw, err := EncodeNotes(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := writeFileAtomic(s.path, raw, 0644); err != nil {
		return err
	}
	s.remember(raw)
	return nil
}

func (s *FileStorage) Close() error {
	return nil
}

// ChangedOnDisk reports whether the file differs from what this process
// last loaded or saved. Used to tell external edits from our own writes.
func (s *FileStorage) ChangedOnDisk() bool {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.hasHash || xxhash.Sum64(raw) != s.lastHash
}

func (s *FileStorage) remember(raw []byte) {
	s.mu.Lock()
	s.lastHash = xxhash.Sum64(raw)
	s.hasHash = true
	s.mu.Unlock()
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over filename, so readers never observe a half-written blob.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
