// Package costing provides an ingredient costing ledger for Go applications.
//
// A Ledger keeps an ordered list of line items (ingredient, cost per unit,
// quantity used, unit) together with each item's derived cost, and mirrors
// the whole list to one named slot of a Store after every change. It provides:
//
//   - Exact decimal arithmetic for line costs and totals
//   - Validation that reports every invalid field at once
//   - Save-then-commit persistence: a failed write leaves the ledger unchanged
//   - Interchangeable stores (memory, JSON file, SQLite, PostgreSQL, MongoDB)
//     that all share one payload format
//   - Plugin hooks for auditing, metrics, and extra validation rules
//
// # Quick Start
//
// Create a ledger over a store, start it, and add items:
//
//	import (
//	    "github.com/xraph/costing"
//	    "github.com/xraph/costing/item"
//	    "github.com/xraph/costing/store/file"
//	)
//
//	l := costing.New(file.New("./sheets"))
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
//	_, err := l.Add(ctx, item.Input{
//	    Name:         "Flour",
//	    CostPerUnit:  "20.00",
//	    QuantityUsed: "2.5",
//	    Unit:         "kg",
//	})
//	if costing.IsValidation(err) {
//	    fmt.Println(costing.ValidationMessage, costing.InvalidFields(err))
//	}
//
//	fmt.Println(l.Total()) // R50.00
//
// # Persistence
//
// Start loads the slot (default "kitchenCostingData"). A slot that cannot be
// decoded is reported through the OnCorruptState hook and a warning, and the
// ledger starts empty; the bad payload is replaced by the next successful
// write. Add and Remove save the full list; Clear erases the slot.
//
// Sheets saved by earlier versions with numeric timestamp IDs load as legacy
// IDs and keep their identity across later saves.
//
// # Integration
//
// The extension package registers a Ledger with a Forge application. The
// audit_hook and observability packages turn ledger events into audit records
// and metrics. cmd/costsheet is a command-line costing sheet.
package costing
