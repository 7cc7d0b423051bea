package store

import (
	"context"

	"github.com/xraph/costing/item"
)

// Store persists a ledger's full collection of line items under a named
// slot of a durable key-value-shaped medium. Every backend stores the same
// JSON payload (see package payload) so slots can move between backends.
type Store interface {
	// Load returns the items saved in slot, in order. An absent or empty
	// slot yields an empty slice and no error. A payload that cannot be
	// decoded yields a *costing.CorruptStateError.
	Load(ctx context.Context, slot string) ([]*item.LineItem, error)

	// Save fully overwrites slot with items. A subsequent Load never
	// observes a partially written payload.
	Save(ctx context.Context, slot string, items []*item.LineItem) error

	// Erase removes slot entirely, as if it had never been saved.
	Erase(ctx context.Context, slot string) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
