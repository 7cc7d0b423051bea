package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	costing "github.com/xraph/costing"
	audithook "github.com/xraph/costing/audit_hook"
	"github.com/xraph/costing/store/file"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfgFile  string
	dir      string
	slot     string
	currency string
	logLevel string

	cfg    Config
	logger *slog.Logger
	ledger *costing.Ledger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "costsheet",
		Short: "Ingredient costing sheet",
		Long: `costsheet records ingredient usages (name, cost per unit, quantity used,
unit) and keeps a running total of what a dish or batch costs.

The sheet is saved after every change as a JSON file in the data directory.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.dir, "dir", "", "data directory (overrides config)")
	root.PersistentFlags().StringVar(&a.slot, "slot", "", "sheet name (overrides config)")
	root.PersistentFlags().StringVar(&a.currency, "currency", "", "ISO 4217 currency code (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newTotalCmd(a),
	)

	return root
}

// open resolves configuration and starts the ledger over the file store.
func (a *app) open(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if a.dir != "" {
		cfg.Dir = a.dir
	}
	if a.slot != "" {
		cfg.Slot = a.slot
	}
	if a.currency != "" {
		cfg.Currency = a.currency
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	a.cfg = cfg

	lvl, _ := cfg.level()
	a.logger = newLogger(cmd.ErrOrStderr(), lvl)

	a.ledger = costing.New(file.New(cfg.Dir),
		costing.WithLogger(a.logger),
		costing.WithSlot(cfg.Slot),
		costing.WithCurrency(cfg.Currency),
		costing.WithPlugin(audithook.New(
			audithook.NewLogRecorder(a.logger),
			audithook.WithLogger(a.logger),
		)),
	)

	return a.ledger.Start(cmd.Context())
}

func (a *app) close() error {
	if a.ledger == nil {
		return nil
	}
	return a.ledger.Stop()
}

func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
