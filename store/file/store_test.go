package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	costing "github.com/xraph/costing"
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/store/file"
)

func newStore(t *testing.T) *file.Store {
	t.Helper()
	s := file.New(filepath.Join(t.TempDir(), "sheets"))
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return s
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	items := []*item.LineItem{
		item.New("Flour", decimal.NewFromInt(20), decimal.RequireFromString("2.5"), "kg"),
		item.New("Sugar", decimal.NewFromInt(15), decimal.NewFromInt(1), "kg"),
	}
	if err := s.Save(ctx, "kitchenCostingData", items); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, _ := s.Path("kitchenCostingData")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("slot file missing: %v", err)
	}

	// A second store over the same directory sees the saved sheet.
	reopened := file.New(s.Dir())
	got, err := reopened.Load(ctx, "kitchenCostingData")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || !got[0].Equal(*items[0]) || !got[1].Equal(*items[1]) {
		t.Fatalf("Load: got %+v", got)
	}

	// Overwrite with fewer items.
	if err := s.Save(ctx, "kitchenCostingData", items[1:]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ = s.Load(ctx, "kitchenCostingData")
	if len(got) != 1 || got[0].Name != "Sugar" {
		t.Errorf("after overwrite: got %+v", got)
	}

	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 1 {
		t.Errorf("expected only the slot file, found %d entries", len(entries))
	}
}

func TestLoadMissing(t *testing.T) {
	s := newStore(t)
	got, err := s.Load(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %d", len(got))
	}
}

func TestErase(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_ = s.Save(ctx, "kitchen", []*item.LineItem{item.New("Salt", decimal.NewFromInt(1), decimal.NewFromInt(1), "g")})
	if err := s.Erase(ctx, "kitchen"); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	path, _ := s.Path("kitchen")
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected slot file removed, stat err = %v", err)
	}
	if err := s.Erase(ctx, "kitchen"); err != nil {
		t.Errorf("erasing an absent slot should succeed, got %v", err)
	}
}

func TestCorruptFile(t *testing.T) {
	s := newStore(t)
	path, _ := s.Path("kitchen")
	if err := os.WriteFile(path, []byte(`[{"id":`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := s.Load(context.Background(), "kitchen")
	if !costing.IsCorruptState(err) {
		t.Fatalf("expected corrupt state error, got %v", err)
	}
}

func TestInvalidSlot(t *testing.T) {
	s := newStore(t)
	for _, slot := range []string{"", ".", "..", "a/b", `a\b`} {
		if _, err := s.Load(context.Background(), slot); err == nil {
			t.Errorf("Load(%q): expected error", slot)
		}
	}
}

func TestSaveWithoutDirectory(t *testing.T) {
	s := file.New(filepath.Join(t.TempDir(), "missing"))
	err := s.Save(context.Background(), "kitchen", nil)
	if err == nil {
		t.Fatal("expected save to fail when the directory does not exist")
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Error("expected Ping to fail when the directory does not exist")
	}
}

func TestClosed(t *testing.T) {
	s := newStore(t)
	_ = s.Close()
	if err := s.Save(context.Background(), "kitchen", nil); !errors.Is(err, costing.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
}
