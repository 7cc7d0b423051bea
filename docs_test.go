package costing_test

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xraph/costing"
	"github.com/xraph/costing/store/file"
	"github.com/xraph/costing/store/memory"
)

// TestDocumentationExamples verifies that the examples in the package
// documentation behave as described.
func TestDocumentationExamples(t *testing.T) {
	t.Run("QuickStartExample", func(t *testing.T) {
		ctx := context.Background()

		l := costing.New(file.New(filepath.Join(t.TempDir(), "sheets")),
			costing.WithLogger(slog.Default()),
		)
		if err := l.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer l.Stop()

		_, err := l.Add(ctx, costing.Input{
			Name:         "Flour",
			CostPerUnit:  "20.00",
			QuantityUsed: "2.5",
			Unit:         "kg",
		})
		if err != nil {
			t.Fatal(err)
		}

		if got := l.Total().String(); got != "R50.00" {
			t.Errorf("Total: got %q, want %q", got, "R50.00")
		}
	})

	t.Run("ValidationExample", func(t *testing.T) {
		ctx := context.Background()

		l := costing.New(memory.New(), costing.WithLogger(quietLogger()))
		if err := l.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer l.Stop()

		_, err := l.Add(ctx, costing.Input{Name: "Sugar", CostPerUnit: "cheap", QuantityUsed: "1"})
		if !costing.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		msg := fmt.Sprint(costing.ValidationMessage, costing.InvalidFields(err))
		if msg != "Please enter a valid Name, Cost, and Quantity.[costPerUnit]" {
			t.Errorf("message: got %q", msg)
		}
	})

	t.Run("MoneyHelpers", func(t *testing.T) {
		total := costing.Sum("ZAR",
			costing.ZAR(decimal.NewFromInt(50)),
			costing.ZAR(decimal.NewFromInt(15)),
		)
		if !total.Equal(costing.ZAR(decimal.NewFromInt(65))) {
			t.Errorf("Sum: got %s", total)
		}
		if !costing.Zero("ZAR").IsZero() {
			t.Error("Zero should be zero")
		}
	})
}
