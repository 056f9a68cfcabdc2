// Package varstore implements persistent placeholder variable stores.
package varstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// FileStore implements ports.VarStore using a flat JSON file.
type FileStore struct {
	path  string
	mu    sync.RWMutex
	cache map[string]string
}

// NewFileStore creates a store backed by the file at the given path.
// A missing file is treated as an empty store.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:  filepath.Clean(path),
		cache: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return storeErr(err, s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return storeErr(err, s.path)
	}
	if s.cache == nil {
		s.cache = make(map[string]string)
	}

	return nil
}

// save writes the cache to disk. The caller must hold s.mu.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return storeErr(err, s.path)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return storeErr(err, s.path)
	}

	if err := atomicWriteFile(s.path, data); err != nil {
		return storeErr(err, s.path)
	}

	return nil
}

// Get returns the stored value for name.
func (s *FileStore) Get(name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.cache[name]
	return v, ok, nil
}

// Put stores value under name and flushes the file.
func (s *FileStore) Put(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.cache[name]
	s.cache[name] = value
	if err := s.save(); err != nil {
		if had {
			s.cache[name] = prev
		} else {
			delete(s.cache, name)
		}
		return zerr.With(err, "variable", name)
	}
	return nil
}

// All returns a copy of every stored variable.
func (s *FileStore) All() (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.cache), nil
}

// atomicWriteFile writes data to a temp file next to path and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vars-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
