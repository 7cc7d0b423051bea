// Package memory provides an in-process costing store. Slots hold the same
// encoded payload the durable backends write, so behavior matches them
// byte for byte.
package memory

import (
	"context"
	"sync"

	costing "github.com/xraph/costing"
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/store"
	"github.com/xraph/costing/store/payload"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Slot storage: slot name -> encoded payload
	slots map[string][]byte

	closed bool
}

func New() *Store {
	return &Store{
		slots: make(map[string][]byte),
	}
}

// Load decodes the payload saved in slot.
func (s *Store) Load(_ context.Context, slot string) ([]*item.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, costing.ErrStoreClosed
	}
	data, ok := s.slots[slot]
	if !ok {
		return []*item.LineItem{}, nil
	}
	return payload.Decode(slot, data)
}

// Save encodes items and replaces slot in one step.
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
	s.slots[slot] = data
	return nil
}

func (s *Store) Erase(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return costing.ErrStoreClosed
	}
	delete(s.slots, slot)
	return nil
}

// Raw returns a copy of the payload stored in slot.
func (s *Store) Raw(slot string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.slots[slot]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// SetRaw stores data in slot verbatim, bypassing encoding. Useful for
// seeding payloads written by other tools.
func (s *Store) SetRaw(slot string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[slot] = append([]byte(nil), data...)
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return costing.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
