package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/xraph/costing/item"
)

// DefaultTimeout bounds every plugin call.
const DefaultTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	// Type-cached plugin lists for efficient dispatch
	onInit             []OnInit
	onShutdown         []OnShutdown
	onLedgerLoaded     []OnLedgerLoaded
	onItemAdded        []OnItemAdded
	onItemRemoved      []OnItemRemoved
	onLedgerCleared    []OnLedgerCleared
	onValidationFailed []OnValidationFailed
	onCorruptState     []OnCorruptState
	onPersistFailed    []OnPersistFailed
	itemValidators     []ItemValidator
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets the per-call plugin timeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnLedgerLoaded); ok {
		r.onLedgerLoaded = append(r.onLedgerLoaded, v)
	}
	if v, ok := p.(OnItemAdded); ok {
		r.onItemAdded = append(r.onItemAdded, v)
	}
	if v, ok := p.(OnItemRemoved); ok {
		r.onItemRemoved = append(r.onItemRemoved, v)
	}
	if v, ok := p.(OnLedgerCleared); ok {
		r.onLedgerCleared = append(r.onLedgerCleared, v)
	}
	if v, ok := p.(OnValidationFailed); ok {
		r.onValidationFailed = append(r.onValidationFailed, v)
	}
	if v, ok := p.(OnCorruptState); ok {
		r.onCorruptState = append(r.onCorruptState, v)
	}
	if v, ok := p.(OnPersistFailed); ok {
		r.onPersistFailed = append(r.onPersistFailed, v)
	}
	if v, ok := p.(ItemValidator); ok {
		r.itemValidators = append(r.itemValidators, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnLedgerLoaded)(nil)).Elem(), "OnLedgerLoaded")
	checkInterface(reflect.TypeOf((*OnItemAdded)(nil)).Elem(), "OnItemAdded")
	checkInterface(reflect.TypeOf((*OnItemRemoved)(nil)).Elem(), "OnItemRemoved")
	checkInterface(reflect.TypeOf((*OnLedgerCleared)(nil)).Elem(), "OnLedgerCleared")
	checkInterface(reflect.TypeOf((*OnValidationFailed)(nil)).Elem(), "OnValidationFailed")
	checkInterface(reflect.TypeOf((*OnCorruptState)(nil)).Elem(), "OnCorruptState")
	checkInterface(reflect.TypeOf((*OnPersistFailed)(nil)).Elem(), "OnPersistFailed")
	checkInterface(reflect.TypeOf((*ItemValidator)(nil)).Elem(), "ItemValidator")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, ledger)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitLedgerLoaded emits a ledger loaded event.
func (r *Registry) EmitLedgerLoaded(ctx context.Context, slot string, count int) {
	r.mu.RLock()
	plugins := r.onLedgerLoaded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLedgerLoaded(ctx, slot, count)
		}); err != nil {
			r.logger.Warn("plugin OnLedgerLoaded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitItemAdded emits an item added event.
func (r *Registry) EmitItemAdded(ctx context.Context, li item.LineItem) {
	r.mu.RLock()
	plugins := r.onItemAdded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnItemAdded(ctx, li)
		}); err != nil {
			r.logger.Warn("plugin OnItemAdded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitItemRemoved emits an item removed event.
func (r *Registry) EmitItemRemoved(ctx context.Context, li item.LineItem) {
	r.mu.RLock()
	plugins := r.onItemRemoved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnItemRemoved(ctx, li)
		}); err != nil {
			r.logger.Warn("plugin OnItemRemoved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitLedgerCleared emits a ledger cleared event.
func (r *Registry) EmitLedgerCleared(ctx context.Context, slot string, count int) {
	r.mu.RLock()
	plugins := r.onLedgerCleared
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLedgerCleared(ctx, slot, count)
		}); err != nil {
			r.logger.Warn("plugin OnLedgerCleared failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitValidationFailed emits a validation failed event.
func (r *Registry) EmitValidationFailed(ctx context.Context, fields []string, verr error) {
	r.mu.RLock()
	plugins := r.onValidationFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnValidationFailed(ctx, fields, verr)
		}); err != nil {
			r.logger.Warn("plugin OnValidationFailed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCorruptState emits a corrupt state event.
func (r *Registry) EmitCorruptState(ctx context.Context, slot string, cerr error) {
	r.mu.RLock()
	plugins := r.onCorruptState
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCorruptState(ctx, slot, cerr)
		}); err != nil {
			r.logger.Warn("plugin OnCorruptState failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPersistFailed emits a persist failed event.
func (r *Registry) EmitPersistFailed(ctx context.Context, op, slot string, perr error) {
	r.mu.RLock()
	plugins := r.onPersistFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPersistFailed(ctx, op, slot, perr)
		}); err != nil {
			r.logger.Warn("plugin OnPersistFailed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// ValidateItem runs every ItemValidator in registration order and returns
// all the errors they report. Unlike the Emit methods, validator errors are
// returned to the caller. A validator that does not answer, because it timed
// out or ctx was cancelled, counts as a rejection.
func (r *Registry) ValidateItem(ctx context.Context, li item.LineItem) []error {
	r.mu.RLock()
	validators := r.itemValidators
	r.mu.RUnlock()

	var errs []error
	for _, v := range validators {
		var verr error
		if err := r.callWithTimeout(ctx, v.Name(), func() error {
			verr = v.ValidateItem(ctx, li)
			return nil
		}); err != nil {
			r.logger.Warn("plugin ValidateItem failed",
				"plugin", v.Name(),
				"error", err,
			)
			errs = append(errs, fmt.Errorf("validator %s: %w", v.Name(), err))
			continue
		}
		if verr != nil {
			errs = append(errs, verr)
		}
	}
	return errs
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block a ledger mutation.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.timeout):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
