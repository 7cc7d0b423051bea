// Package file provides a costing store that keeps each slot as a JSON file
// named "<slot>.json" inside a directory. Saves write a temporary file in the
// same directory and rename it over the slot file, so a reader never sees a
// half-written payload.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	costing "github.com/xraph/costing"
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/store"
	"github.com/xraph/costing/store/payload"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

const ext = ".json"

// Store is a directory-backed costing store.
type Store struct {
	dir string

	mu     sync.Mutex
	closed bool
}

// New returns a store rooted at dir. The directory is created by Migrate.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// Path returns the file that holds slot.
func (s *Store) Path(slot string) (string, error) {
	if slot == "" || slot == "." || slot == ".." || strings.ContainsAny(slot, `/\`) {
		return "", fmt.Errorf("costing/file: invalid slot name %q", slot)
	}
	return filepath.Join(s.dir, slot+ext), nil
}

func (s *Store) Load(_ context.Context, slot string) ([]*item.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, costing.ErrStoreClosed
	}
	path, err := s.Path(slot)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []*item.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("costing/file: load %q: %w", slot, err)
	}
	return payload.Decode(slot, data)
}

func (s *Store) Save(_ context.Context, slot string, items []*item.LineItem) error {
	data, err := payload.Encode(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return costing.ErrStoreClosed
	}
	path, err := s.Path(slot)
	if err != nil {
		return err
	}
	if err := s.writeAtomic(path, append(data, '\n')); err != nil {
		return fmt.Errorf("costing/file: save %q: %w", slot, err)
	}
	return nil
}

func (s *Store) Erase(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return costing.ErrStoreClosed
	}
	path, err := s.Path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("costing/file: erase %q: %w", slot, err)
	}
	return nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".costing-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Migrate creates the store directory.
func (s *Store) Migrate(_ context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("costing/file: create %s: %w", s.dir, err)
	}
	return nil
}

// Ping checks that the store directory exists and is a directory.
func (s *Store) Ping(_ context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return costing.ErrStoreClosed
	}

	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("costing/file: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("costing/file: %s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
