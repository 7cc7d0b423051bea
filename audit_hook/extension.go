// Package audithook bridges costing ledger events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit store. Callers inject a RecorderFunc adapter, or use
// NewLogRecorder to write events through slog.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/costing/item"
	"github.com/xraph/costing/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin             = (*Extension)(nil)
	_ plugin.OnLedgerLoaded     = (*Extension)(nil)
	_ plugin.OnItemAdded        = (*Extension)(nil)
	_ plugin.OnItemRemoved      = (*Extension)(nil)
	_ plugin.OnLedgerCleared    = (*Extension)(nil)
	_ plugin.OnValidationFailed = (*Extension)(nil)
	_ plugin.OnCorruptState     = (*Extension)(nil)
	_ plugin.OnPersistFailed    = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a single audit record.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// NewLogRecorder returns a Recorder that writes each event as one log
// record. Failures log at warn level, everything else at info.
func NewLogRecorder(logger *slog.Logger) Recorder {
	return RecorderFunc(func(ctx context.Context, event *AuditEvent) error {
		level := slog.LevelInfo
		if event.Outcome == OutcomeFailure {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "audit",
			"action", event.Action,
			"resource", event.Resource,
			"resource_id", event.ResourceID,
			"outcome", event.Outcome,
			"severity", event.Severity,
			"metadata", event.Metadata,
		)
		return nil
	})
}

// Extension bridges ledger events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Ledger lifecycle hooks
// ──────────────────────────────────────────────────

// OnLedgerLoaded implements plugin.OnLedgerLoaded.
func (e *Extension) OnLedgerLoaded(ctx context.Context, slot string, count int) error {
	return e.record(ctx, ActionLedgerLoaded, SeverityInfo, OutcomeSuccess,
		ResourceLedger, slot, CategoryCosting, nil,
		"items", count,
	)
}

// OnLedgerCleared implements plugin.OnLedgerCleared.
func (e *Extension) OnLedgerCleared(ctx context.Context, slot string, count int) error {
	return e.record(ctx, ActionLedgerCleared, SeverityWarning, OutcomeSuccess,
		ResourceLedger, slot, CategoryCosting, nil,
		"items", count,
	)
}

// ──────────────────────────────────────────────────
// Item hooks
// ──────────────────────────────────────────────────

// OnItemAdded implements plugin.OnItemAdded.
func (e *Extension) OnItemAdded(ctx context.Context, li item.LineItem) error {
	return e.record(ctx, ActionItemAdded, SeverityInfo, OutcomeSuccess,
		ResourceItem, li.ID.String(), CategoryCosting, nil,
		"name", li.Name,
		"cost_per_unit", li.CostPerUnit.String(),
		"quantity_used", li.QuantityUsed.String(),
		"unit", li.Unit,
		"total_item_cost", li.TotalItemCost.String(),
	)
}

// OnItemRemoved implements plugin.OnItemRemoved.
func (e *Extension) OnItemRemoved(ctx context.Context, li item.LineItem) error {
	return e.record(ctx, ActionItemRemoved, SeverityInfo, OutcomeSuccess,
		ResourceItem, li.ID.String(), CategoryCosting, nil,
		"name", li.Name,
		"total_item_cost", li.TotalItemCost.String(),
	)
}

// ──────────────────────────────────────────────────
// Failure hooks
// ──────────────────────────────────────────────────

// OnValidationFailed implements plugin.OnValidationFailed.
func (e *Extension) OnValidationFailed(ctx context.Context, fields []string, err error) error {
	return e.record(ctx, ActionValidationFailed, SeverityInfo, OutcomeFailure,
		ResourceItem, "", CategoryInput, err,
		"fields", fields,
	)
}

// OnCorruptState implements plugin.OnCorruptState.
func (e *Extension) OnCorruptState(ctx context.Context, slot string, err error) error {
	return e.record(ctx, ActionStateCorrupt, SeverityError, OutcomeFailure,
		ResourceSlot, slot, CategoryStorage, err,
	)
}

// OnPersistFailed implements plugin.OnPersistFailed.
func (e *Extension) OnPersistFailed(ctx context.Context, op, slot string, err error) error {
	return e.record(ctx, ActionPersistFailed, SeverityCritical, OutcomeFailure,
		ResourceSlot, slot, CategoryStorage, err,
		"op", op,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
