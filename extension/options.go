package extension

import (
	costing "github.com/xraph/costing"
	"github.com/xraph/costing/plugin"
	"github.com/xraph/costing/store"
)

// Option configures the costing Forge extension.
type Option func(*Extension)

// WithStore sets the store for the ledger.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithLedgerOption passes a costing.Option through to the underlying ledger.
func WithLedgerOption(opt costing.Option) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, opt)
	}
}

// WithPlugin registers a ledger plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, costing.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithSlot sets the storage slot name.
func WithSlot(slot string) Option {
	return func(e *Extension) { e.config.Slot = slot }
}

// WithCurrency sets the currency totals are reported in.
func WithCurrency(code string) Option {
	return func(e *Extension) { e.config.Currency = code }
}

// WithFileStore stores sheets as JSON files under dir.
func WithFileStore(dir string) Option {
	return func(e *Extension) {
		e.config.StoreDriver = StoreFile
		e.config.StoreDir = dir
	}
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
