package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"

	"github.com/xraph/costing/id"
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()

	sdb := sqlitedriver.New()
	if err := sdb.Open(ctx, filepath.Join(t.TempDir(), "costing.db")); err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db, err := grove.Open(sdb)
	if err != nil {
		t.Fatalf("grove.Open: %v", err)
	}

	s := sqlite.New(db)
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return s
}

func TestSaveLoadErase(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	got, err := s.Load(ctx, "kitchenCostingData")
	if err != nil {
		t.Fatalf("Load absent slot: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("absent slot: expected empty, got %d items", len(got))
	}

	items := []*item.LineItem{
		item.New("Flour", decimal.RequireFromString("20.00"), decimal.RequireFromString("2.5"), "kg"),
		item.New("Eggs", decimal.NewFromInt(3), decimal.NewFromInt(5), "units"),
	}
	if err := s.Save(ctx, "kitchenCostingData", items); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err = s.Load(ctx, "kitchenCostingData")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || !got[0].Equal(*items[0]) || !got[1].Equal(*items[1]) {
		t.Fatalf("Load: got %+v", got)
	}

	// Upsert with fewer items replaces the row.
	if err := s.Save(ctx, "kitchenCostingData", items[1:]); err != nil {
		t.Fatalf("Save (upsert): %v", err)
	}
	got, err = s.Load(ctx, "kitchenCostingData")
	if err != nil {
		t.Fatalf("Load after upsert: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Eggs" {
		t.Errorf("after upsert: got %+v", got)
	}

	if err := s.Erase(ctx, "kitchenCostingData"); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	got, err = s.Load(ctx, "kitchenCostingData")
	if err != nil {
		t.Fatalf("Load after erase: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("after erase: expected empty, got %d items", len(got))
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	flour := item.New("Flour", decimal.NewFromInt(20), decimal.NewFromInt(1), "kg")
	butter := item.New("Butter", decimal.NewFromInt(80), decimal.RequireFromString("0.5"), "kg")
	if err := s.Save(ctx, "kitchen", []*item.LineItem{flour}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "bakery", []*item.LineItem{butter}); err != nil {
		t.Fatal(err)
	}
	if err := s.Erase(ctx, "kitchen"); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "bakery")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || !got[0].Equal(*butter) {
		t.Errorf("bakery slot: got %+v", got)
	}
}

func TestLegacyIDSurvives(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	legacy, err := id.Legacy("1700000000000")
	if err != nil {
		t.Fatal(err)
	}
	li := item.New("Salt", decimal.NewFromInt(1), decimal.NewFromInt(2), "g")
	li.ID = legacy

	if err := s.Save(ctx, "kitchen", []*item.LineItem{li}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx, "kitchen")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || !got[0].ID.IsLegacy() || got[0].ID.String() != "1700000000000" {
		t.Errorf("legacy id lost: got %+v", got)
	}
}
