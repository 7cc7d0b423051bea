// Package observability provides a metrics extension for costing ledgers that
// records event counts and line cost distributions via a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/costing/item"
	"github.com/xraph/costing/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnInit             = (*MetricsExtension)(nil)
	_ plugin.OnLedgerLoaded     = (*MetricsExtension)(nil)
	_ plugin.OnItemAdded        = (*MetricsExtension)(nil)
	_ plugin.OnItemRemoved      = (*MetricsExtension)(nil)
	_ plugin.OnLedgerCleared    = (*MetricsExtension)(nil)
	_ plugin.OnValidationFailed = (*MetricsExtension)(nil)
	_ plugin.OnCorruptState     = (*MetricsExtension)(nil)
	_ plugin.OnPersistFailed    = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records ledger metrics.
// Register it as a ledger plugin to track costing activity.
type MetricsExtension struct {
	factory MetricFactory

	// Ledger metrics
	LedgerLoaded  Counter
	LedgerCleared Counter
	ItemsLoaded   Histogram
	ItemsCleared  Histogram

	// Item metrics
	ItemAdded     Counter
	ItemRemoved   Counter
	LineCost      Histogram
	QuantityUsed  Histogram
	ValidationErr Counter

	// Error metrics
	CorruptState Counter
	SaveErrors   Counter
	EraseErrors  Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Ledger metrics
		LedgerLoaded:  factory.Counter("costing.ledger.loaded"),
		LedgerCleared: factory.Counter("costing.ledger.cleared"),
		ItemsLoaded:   factory.Histogram("costing.ledger.loaded.items"),
		ItemsCleared:  factory.Histogram("costing.ledger.cleared.items"),

		// Item metrics
		ItemAdded:     factory.Counter("costing.item.added"),
		ItemRemoved:   factory.Counter("costing.item.removed"),
		LineCost:      factory.Histogram("costing.item.total_cost"),
		QuantityUsed:  factory.Histogram("costing.item.quantity_used"),
		ValidationErr: factory.Counter("costing.item.validation_failed"),

		// Error metrics
		CorruptState: factory.Counter("costing.store.corrupt"),
		SaveErrors:   factory.Counter("costing.store.save.errors"),
		EraseErrors:  factory.Counter("costing.store.erase.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Ledger hooks
// ──────────────────────────────────────────────────

// OnLedgerLoaded implements plugin.OnLedgerLoaded.
func (m *MetricsExtension) OnLedgerLoaded(_ context.Context, _ string, count int) error {
	m.LedgerLoaded.Inc()
	m.ItemsLoaded.Observe(float64(count))
	return nil
}

// OnLedgerCleared implements plugin.OnLedgerCleared.
func (m *MetricsExtension) OnLedgerCleared(_ context.Context, _ string, count int) error {
	m.LedgerCleared.Inc()
	m.ItemsCleared.Observe(float64(count))
	return nil
}

// ──────────────────────────────────────────────────
// Item hooks
// ──────────────────────────────────────────────────

// OnItemAdded implements plugin.OnItemAdded.
func (m *MetricsExtension) OnItemAdded(_ context.Context, li item.LineItem) error {
	m.ItemAdded.Inc()
	m.LineCost.Observe(li.TotalItemCost.InexactFloat64())
	m.QuantityUsed.Observe(li.QuantityUsed.InexactFloat64())
	return nil
}

// OnItemRemoved implements plugin.OnItemRemoved.
func (m *MetricsExtension) OnItemRemoved(_ context.Context, _ item.LineItem) error {
	m.ItemRemoved.Inc()
	return nil
}

// OnValidationFailed implements plugin.OnValidationFailed.
func (m *MetricsExtension) OnValidationFailed(_ context.Context, _ []string, _ error) error {
	m.ValidationErr.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Store hooks
// ──────────────────────────────────────────────────

// OnCorruptState implements plugin.OnCorruptState.
func (m *MetricsExtension) OnCorruptState(_ context.Context, _ string, _ error) error {
	m.CorruptState.Inc()
	return nil
}

// OnPersistFailed implements plugin.OnPersistFailed.
func (m *MetricsExtension) OnPersistFailed(_ context.Context, op, _ string, _ error) error {
	if op == "erase" {
		m.EraseErrors.Inc()
	} else {
		m.SaveErrors.Inc()
	}
	return nil
}
