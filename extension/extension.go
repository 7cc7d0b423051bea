// Package extension provides the Forge extension adapter for costing.
//
// It implements the forge.Extension interface to integrate a costing Ledger
// into a Forge application with DI registration and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.costing" or "costing" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	costing "github.com/xraph/costing"
	"github.com/xraph/costing/store"
	"github.com/xraph/costing/store/file"
	"github.com/xraph/costing/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "costing"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Ingredient costing ledger"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts a costing Ledger as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	ledger     *costing.Ledger
	store      store.Store
	ledgerOpts []costing.Option
}

// New creates a new costing Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ledger returns the underlying Ledger instance.
// This is nil until Register is called.
func (e *Extension) Ledger() *costing.Ledger { return e.ledger }

// Register implements [forge.Extension]. It loads configuration,
// initializes the ledger, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if e.store == nil {
		s, err := e.buildStore()
		if err != nil {
			return err
		}
		e.store = s
	}

	e.ledger = costing.New(e.store, e.buildLedgerOpts()...)

	return vessel.Provide(fapp.Container(), func() (*costing.Ledger, error) {
		return e.ledger, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.ledger == nil {
		return errors.New("costing: extension not initialized")
	}

	if err := e.ledger.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.ledger != nil {
		if err := e.ledger.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("costing: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildStore constructs the store named by the resolved config.
func (e *Extension) buildStore() (store.Store, error) {
	return newStore(e.config)
}

func newStore(cfg Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "", StoreMemory:
		return memory.New(), nil
	case StoreFile:
		return file.New(cfg.StoreDir), nil
	default:
		return nil, fmt.Errorf("costing: unknown store driver %q", cfg.StoreDriver)
	}
}

// buildLedgerOpts constructs costing.Option values from the resolved config.
func (e *Extension) buildLedgerOpts() []costing.Option {
	opts := make([]costing.Option, 0, len(e.ledgerOpts)+4)

	opts = append(opts,
		costing.WithSlot(e.config.Slot),
		costing.WithCurrency(e.config.Currency),
		costing.WithAutoMigrate(!e.config.DisableMigrate),
	)

	// Append any pass-through ledger options.
	opts = append(opts, e.ledgerOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("costing: configuration is required but not found in config files; " +
				"ensure 'extensions.costing' or 'costing' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("costing: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("slot", e.config.Slot),
		forge.F("currency", e.config.Currency),
		forge.F("store_driver", e.config.StoreDriver),
		forge.F("store_dir", e.config.StoreDir),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.costing" first (namespaced pattern).
	if cm.IsSet("extensions.costing") {
		if err := cm.Bind("extensions.costing", &cfg); err == nil {
			e.Logger().Debug("costing: loaded config from file",
				forge.F("key", "extensions.costing"),
			)
			return cfg, true
		}
		e.Logger().Warn("costing: failed to bind extensions.costing config",
			forge.F("error", "bind failed"),
		)
	}

	// Try top-level "costing" key.
	if cm.IsSet("costing") {
		if err := cm.Bind("costing", &cfg); err == nil {
			e.Logger().Debug("costing: loaded config from file",
				forge.F("key", "costing"),
			)
			return cfg, true
		}
		e.Logger().Warn("costing: failed to bind costing config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Slot == "" {
		cfg.Slot = defaults.Slot
	}
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = defaults.StoreDriver
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = defaults.StoreDir
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic values fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.Slot == "" {
		yamlConfig.Slot = programmaticConfig.Slot
	}
	if yamlConfig.Currency == "" {
		yamlConfig.Currency = programmaticConfig.Currency
	}
	if yamlConfig.StoreDriver == "" {
		yamlConfig.StoreDriver = programmaticConfig.StoreDriver
	}
	if yamlConfig.StoreDir == "" {
		yamlConfig.StoreDir = programmaticConfig.StoreDir
	}

	// Fill remaining zeros with defaults.
	return mergeWithDefaults(yamlConfig)
}
