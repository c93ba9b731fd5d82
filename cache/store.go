// Package cache remembers files already known to need no rewrite.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when payload format or rewrite rules change
const schemaVersion uint16 = 1

const fileName = "clean.mp"

// Store keeps keys of clean files on disk, safe for concurrent use
type Store struct {
	mu      sync.RWMutex
	dir     string
	entries map[uint64]struct{}
	dirty   bool
}

type payload struct {
	Schema uint16
	Keys   []uint64
}

// Open loads the store from dir; a missing or outdated file yields an empty store
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir, entries: map[uint64]struct{}{}}
	f, err := os.Open(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()
	var data payload
	if err = msgpack.NewDecoder(f).Decode(&data); err != nil || data.Schema != schemaVersion {
		return s, nil
	}
	for _, k := range data.Keys {
		s.entries[k] = struct{}{}
	}
	return s, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, fileName)
}

// Has reports whether key was recorded as clean
func (s *Store) Has(key uint64) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok
}

// Add records key as clean
func (s *Store) Add(key uint64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return
	}
	s.entries[key] = struct{}{}
	s.dirty = true
}

// Len returns number of recorded keys
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Flush writes recorded keys when anything was added
func (s *Store) Flush() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	data := payload{Schema: schemaVersion, Keys: make([]uint64, 0, len(s.entries))}
	for k := range s.entries {
		data.Keys = append(data.Keys, k)
	}
	if err = msgpack.NewEncoder(f).Encode(&data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Rename(f.Name(), s.path()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
