package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	costing "github.com/xraph/costing"
	"github.com/xraph/costing/types"
)

// Config is the costsheet configuration file.
type Config struct {
	// Dir holds one JSON file per slot.
	Dir string `yaml:"dir"`

	// Slot names the sheet inside Dir.
	Slot string `yaml:"slot"`

	// Currency is the ISO 4217 code amounts are shown in.
	Currency string `yaml:"currency"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() Config {
	dir := ".costsheet"
	if base, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(base, "costsheet")
	}
	return Config{
		Dir:      dir,
		Slot:     costing.DefaultSlot,
		Currency: types.DefaultCurrency,
		LogLevel: "warn",
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fileCfg.Dir != "" {
		cfg.Dir = fileCfg.Dir
	}
	if fileCfg.Slot != "" {
		cfg.Slot = fileCfg.Slot
	}
	if fileCfg.Currency != "" {
		cfg.Currency = fileCfg.Currency
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.Dir) == "" {
		errs = append(errs, errors.New("dir is required"))
	}
	if strings.TrimSpace(c.Slot) == "" {
		errs = append(errs, errors.New("slot is required"))
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return lvl, nil
}
