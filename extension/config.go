package extension

// Store drivers the extension can build on its own. Database-backed stores
// are supplied with WithStore.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
)

// Config holds the costing extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.costing" or "costing" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// Slot is the storage slot the ledger reads and writes
	// (default: "kitchenCostingData").
	Slot string `json:"slot" mapstructure:"slot" yaml:"slot"`

	// Currency is the ISO 4217 code totals are reported in (default: "ZAR").
	Currency string `json:"currency" mapstructure:"currency" yaml:"currency"`

	// StoreDriver selects the store built when none is supplied
	// programmatically: "memory" (default) or "file".
	StoreDriver string `json:"store_driver" mapstructure:"store_driver" yaml:"store_driver"`

	// StoreDir is the directory used by the "file" store driver
	// (default: "./data/costing").
	StoreDir string `json:"store_dir" mapstructure:"store_dir" yaml:"store_dir"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Slot:        "kitchenCostingData",
		Currency:    "ZAR",
		StoreDriver: StoreMemory,
		StoreDir:    "./data/costing",
	}
}
