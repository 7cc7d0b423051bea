// Package plugin provides an extensible plugin system for costing ledgers.
// Plugins can hook into lifecycle and ledger events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/costing/item"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the ledger starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the ledger stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// OnLedgerLoaded is called after the ledger hydrates from its store.
type OnLedgerLoaded interface {
	Plugin
	OnLedgerLoaded(ctx context.Context, slot string, count int) error
}

// ──────────────────────────────────────────────────
// Line item hooks
// ──────────────────────────────────────────────────

// OnItemAdded is called after a line item is added and persisted.
type OnItemAdded interface {
	Plugin
	OnItemAdded(ctx context.Context, li item.LineItem) error
}

// OnItemRemoved is called after a line item is removed and persisted.
type OnItemRemoved interface {
	Plugin
	OnItemRemoved(ctx context.Context, li item.LineItem) error
}

// OnLedgerCleared is called after the ledger is emptied and its slot erased.
type OnLedgerCleared interface {
	Plugin
	OnLedgerCleared(ctx context.Context, slot string, count int) error
}

// ──────────────────────────────────────────────────
// Failure hooks
// ──────────────────────────────────────────────────

// OnValidationFailed is called when an add is rejected.
type OnValidationFailed interface {
	Plugin
	OnValidationFailed(ctx context.Context, fields []string, err error) error
}

// OnCorruptState is called when the persisted slot cannot be decoded.
type OnCorruptState interface {
	Plugin
	OnCorruptState(ctx context.Context, slot string, err error) error
}

// OnPersistFailed is called when a save or erase fails. op is "save" or "erase".
type OnPersistFailed interface {
	Plugin
	OnPersistFailed(ctx context.Context, op, slot string, err error) error
}

// ──────────────────────────────────────────────────
// Item validators
// ──────────────────────────────────────────────────

// ItemValidator adds rules on top of the built-in line item checks.
// A non-nil error rejects the item; returning a costing.ValidationError
// names the offending field. A validator that does not answer within the
// registry timeout also rejects the item.
type ItemValidator interface {
	Plugin
	ValidateItem(ctx context.Context, li item.LineItem) error
}
