package entry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage is a key/value byte store, the shape of browser local storage.
type Storage interface {
	// Get returns the value for key; ok is false if it was never set.
	Get(key string) (b []byte, ok bool, err error)
	Set(key string, b []byte) error
}

// MemStorage keeps values in memory.
type MemStorage struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{m: make(map[string][]byte)}
}

func (s *MemStorage) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.m[key]
	return append([]byte(nil), b...), ok, nil
}

func (s *MemStorage) Set(key string, b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), b...)
	return nil
}

// FileStorage keeps one file per key in a directory.
type FileStorage struct {
	Dir  string
	Mode os.FileMode
}

// NewFileStorage returns a FileStorage rooted at dir, creating it if
// needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("entry: create storage dir: %w", err)
	}
	return &FileStorage{Dir: dir, Mode: 0o600}, nil
}

func (s *FileStorage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("entry: invalid storage key %q", key)
	}
	return filepath.Join(s.Dir, key+".json"), nil
}

// Get reads the file for key; a missing file is not an error.
func (s *FileStorage) Get(key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("entry: read %s: %w", key, err)
	}
	return b, true, nil
}

// Set writes via a temp file, then atomically replaces the target.
func (s *FileStorage) Set(key string, b []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(s.Dir, filepath.Base(p)+".tmp-*")
	if err != nil {
		return fmt.Errorf("entry: write %s: %w", key, err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("entry: write %s: %w", key, err)
	}
	if err := f.Chmod(s.Mode); err != nil {
		_ = f.Close()
		return fmt.Errorf("entry: write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("entry: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("entry: write %s: %w", key, err)
	}
	return nil
}
