package costing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xraph/costing/id"
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/plugin"
	"github.com/xraph/costing/store"
	"github.com/xraph/costing/types"
)

// DefaultSlot is the storage slot a Ledger reads and writes unless
// WithSlot says otherwise.
const DefaultSlot = "kitchenCostingData"

// Ledger is the ingredient costing sheet: an ordered collection of line
// items mirrored to a single store slot.
type Ledger struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	// Configuration
	slot        string
	currency    string
	autoMigrate bool

	mu      sync.RWMutex
	items   []*item.LineItem
	started bool
	stopped bool
}

// New creates a new Ledger instance.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:       s,
		plugins:     plugin.NewRegistry(),
		logger:      slog.Default(),
		slot:        DefaultSlot,
		currency:    types.DefaultCurrency,
		autoMigrate: true,
		items:       []*item.LineItem{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithSlot sets the storage slot name.
func WithSlot(slot string) Option {
	return func(l *Ledger) {
		if slot = strings.TrimSpace(slot); slot != "" {
			l.slot = slot
		}
	}
}

// WithCurrency sets the ISO 4217 code totals are reported in.
func WithCurrency(code string) Option {
	return func(l *Ledger) {
		if code = strings.TrimSpace(code); code != "" {
			l.currency = strings.ToUpper(code)
		}
	}
}

// WithAutoMigrate controls whether Start migrates the store first.
func WithAutoMigrate(enabled bool) Option {
	return func(l *Ledger) {
		l.autoMigrate = enabled
	}
}

// Start migrates the store and hydrates the ledger from its slot.
// A slot that cannot be decoded is logged and the ledger starts empty.
func (l *Ledger) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return ErrAlreadyStarted
	}

	if l.autoMigrate {
		if err := l.store.Migrate(ctx); err != nil {
			l.mu.Unlock()
			return err
		}
	}

	loaded, err := l.store.Load(ctx, l.slot)
	corrupt := false
	if err != nil {
		if !IsCorruptState(err) {
			l.mu.Unlock()
			return fmt.Errorf("costing: load slot %q: %w", l.slot, err)
		}
		l.logger.Warn("costing slot is corrupt, starting empty",
			"slot", l.slot,
			"error", err,
		)
		corrupt = true
		loaded = []*item.LineItem{}
	}

	l.items = loaded
	l.started = true
	count := len(l.items)
	l.mu.Unlock()

	if corrupt {
		l.plugins.EmitCorruptState(ctx, l.slot, err)
	}

	// Initialize plugins
	l.plugins.EmitInit(ctx, l)
	l.plugins.EmitLedgerLoaded(ctx, l.slot, count)

	l.logger.Info("costing ledger started",
		"slot", l.slot,
		"currency", l.currency,
		"items", count,
	)

	return nil
}

// Stop shuts down the Ledger and closes its store. Reads keep working on
// the last known collection; mutations return ErrLedgerStopped.
func (l *Ledger) Stop() error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	l.mu.Unlock()

	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	return l.store.Close()
}

// ──────────────────────────────────────────────────
// Mutations
// ──────────────────────────────────────────────────

// Add validates raw form values, appends the resulting line item, and
// persists the collection. Invalid input returns a MultiError of
// ValidationErrors and leaves the ledger untouched.
func (l *Ledger) Add(ctx context.Context, in item.Input) (*item.LineItem, error) {
	li, err := parseInput(in)
	if err != nil {
		return nil, l.rejected(ctx, err)
	}
	return l.add(ctx, li)
}

// AddItem is Add for already-typed values.
func (l *Ledger) AddItem(ctx context.Context, name string, costPerUnit, quantityUsed decimal.Decimal, unit string) (*item.LineItem, error) {
	li, err := checkItem(name, costPerUnit, quantityUsed, unit)
	if err != nil {
		return nil, l.rejected(ctx, err)
	}
	return l.add(ctx, li)
}

func (l *Ledger) add(ctx context.Context, li *item.LineItem) (*item.LineItem, error) {
	if errs := l.plugins.ValidateItem(ctx, *li); len(errs) > 0 {
		var merr MultiError
		for _, e := range errs {
			if !IsValidation(e) {
				e = ValidationError{Field: "item", Message: e.Error()}
			}
			merr.Add(e)
		}
		return nil, l.rejected(ctx, merr)
	}

	l.mu.Lock()
	if err := l.writable(); err != nil {
		l.mu.Unlock()
		return nil, err
	}

	for l.indexOf(li.ID) >= 0 {
		li.ID = id.NewItemID()
	}

	next := make([]*item.LineItem, len(l.items), len(l.items)+1)
	copy(next, l.items)
	next = append(next, li)

	if err := l.store.Save(ctx, l.slot, next); err != nil {
		l.mu.Unlock()
		return nil, l.persistFailed(ctx, "save", err)
	}
	l.items = next
	l.mu.Unlock()

	l.logger.Debug("costing item added",
		"item_id", li.ID.String(),
		"name", li.Name,
		"total_item_cost", li.TotalItemCost.String(),
	)
	l.plugins.EmitItemAdded(ctx, *li)

	out := *li
	return &out, nil
}

// Remove deletes the item with the given ID, keeping the order of the rest.
// It reports false, and persists nothing, when no item matches.
func (l *Ledger) Remove(ctx context.Context, itemID id.ID) (bool, error) {
	l.mu.Lock()
	if err := l.writable(); err != nil {
		l.mu.Unlock()
		return false, err
	}

	idx := l.indexOf(itemID)
	if idx < 0 {
		l.mu.Unlock()
		return false, nil
	}

	removed := *l.items[idx]
	next := make([]*item.LineItem, 0, len(l.items)-1)
	next = append(next, l.items[:idx]...)
	next = append(next, l.items[idx+1:]...)

	if err := l.store.Save(ctx, l.slot, next); err != nil {
		l.mu.Unlock()
		return false, l.persistFailed(ctx, "save", err)
	}
	l.items = next
	l.mu.Unlock()

	l.logger.Debug("costing item removed",
		"item_id", removed.ID.String(),
		"name", removed.Name,
	)
	l.plugins.EmitItemRemoved(ctx, removed)

	return true, nil
}

// Clear empties the ledger and erases its slot, even when already empty.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	if err := l.writable(); err != nil {
		l.mu.Unlock()
		return err
	}

	if err := l.store.Erase(ctx, l.slot); err != nil {
		l.mu.Unlock()
		return l.persistFailed(ctx, "erase", err)
	}
	count := len(l.items)
	l.items = []*item.LineItem{}
	l.mu.Unlock()

	l.logger.Info("costing ledger cleared",
		"slot", l.slot,
		"items", count,
	)
	l.plugins.EmitLedgerCleared(ctx, l.slot, count)

	return nil
}

// ──────────────────────────────────────────────────
// Reads
// ──────────────────────────────────────────────────

// Total sums TotalItemCost over every item in the ledger currency.
// It is recomputed on every call.
func (l *Ledger) Total() types.Money {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sum := decimal.Zero
	for _, li := range l.items {
		sum = sum.Add(li.TotalItemCost)
	}
	return types.New(sum, l.currency)
}

// Items returns a copy of the collection in insertion order.
func (l *Ledger) Items() []item.LineItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]item.LineItem, len(l.items))
	for i, li := range l.items {
		out[i] = *li
	}
	return out
}

// Len returns the number of items.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Get returns the item with the given ID.
func (l *Ledger) Get(itemID id.ID) (item.LineItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if idx := l.indexOf(itemID); idx >= 0 {
		return *l.items[idx], true
	}
	return item.LineItem{}, false
}

// Find resolves an ID string, as printed by String, to an item.
func (l *Ledger) Find(s string) (item.LineItem, bool) {
	itemID, err := id.Parse(strings.TrimSpace(s))
	if err != nil {
		return item.LineItem{}, false
	}
	return l.Get(itemID)
}

// Slot returns the storage slot name.
func (l *Ledger) Slot() string { return l.slot }

// Currency returns the ISO 4217 code totals are reported in.
func (l *Ledger) Currency() string { return l.currency }

// Plugins returns the plugin registry.
func (l *Ledger) Plugins() *plugin.Registry { return l.plugins }

// Store returns the underlying store.
func (l *Ledger) Store() store.Store { return l.store }

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// indexOf must be called with l.mu held.
func (l *Ledger) indexOf(itemID id.ID) int {
	if itemID.IsNil() {
		return -1
	}
	key := itemID.String()
	for i, li := range l.items {
		if li.ID.String() == key {
			return i
		}
	}
	return -1
}

// writable must be called with l.mu held.
func (l *Ledger) writable() error {
	switch {
	case l.stopped:
		return ErrLedgerStopped
	case !l.started:
		return ErrNotStarted
	default:
		return nil
	}
}

func (l *Ledger) rejected(ctx context.Context, err error) error {
	fields := InvalidFields(err)
	l.logger.Debug("costing item rejected",
		"fields", fields,
		"error", err,
	)
	l.plugins.EmitValidationFailed(ctx, fields, err)
	return err
}

func (l *Ledger) persistFailed(ctx context.Context, op string, err error) error {
	l.logger.Error("costing persist failed",
		"op", op,
		"slot", l.slot,
		"error", err,
	)
	l.plugins.EmitPersistFailed(ctx, op, l.slot, err)
	if errors.Is(err, ErrPersistFailed) {
		return err
	}
	return fmt.Errorf("%w: %s slot %q: %w", ErrPersistFailed, op, l.slot, err)
}
