package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	costing "github.com/xraph/costing"
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/store/memory"
)

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	items := []*item.LineItem{
		item.New("Flour", decimal.NewFromInt(20), decimal.RequireFromString("2.5"), "kg"),
		item.New("Sugar", decimal.NewFromInt(15), decimal.NewFromInt(1), "kg"),
	}
	if err := s.Save(ctx, "kitchen", items); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx, "kitchen")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || !got[0].Equal(*items[0]) || !got[1].Equal(*items[1]) {
		t.Fatalf("Load: got %+v", got)
	}

	// Loaded items are decoded copies, not shared pointers.
	got[0].Name = "Changed"
	again, _ := s.Load(ctx, "kitchen")
	if again[0].Name != "Flour" {
		t.Error("mutating loaded items must not affect the store")
	}

	other, err := s.Load(ctx, "other")
	if err != nil {
		t.Fatalf("Load other: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("absent slot should be empty, got %d items", len(other))
	}
}

func TestErase(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_ = s.Save(ctx, "kitchen", []*item.LineItem{item.New("Salt", decimal.NewFromInt(1), decimal.NewFromInt(1), "g")})
	if err := s.Erase(ctx, "kitchen"); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, ok := s.Raw("kitchen"); ok {
		t.Error("slot should be gone after Erase")
	}
	if err := s.Erase(ctx, "kitchen"); err != nil {
		t.Errorf("erasing an absent slot should succeed, got %v", err)
	}
}

func TestCorruptSlot(t *testing.T) {
	s := memory.New()
	s.SetRaw("kitchen", []byte("not json"))

	_, err := s.Load(context.Background(), "kitchen")
	if !costing.IsCorruptState(err) {
		t.Fatalf("expected corrupt state error, got %v", err)
	}
}

func TestClosed(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := s.Load(ctx, "kitchen"); !errors.Is(err, costing.ErrStoreClosed) {
		t.Errorf("Load: expected ErrStoreClosed, got %v", err)
	}
	if err := s.Save(ctx, "kitchen", nil); !errors.Is(err, costing.ErrStoreClosed) {
		t.Errorf("Save: expected ErrStoreClosed, got %v", err)
	}
	if err := s.Erase(ctx, "kitchen"); !errors.Is(err, costing.ErrStoreClosed) {
		t.Errorf("Erase: expected ErrStoreClosed, got %v", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, costing.ErrStoreClosed) {
		t.Errorf("Ping: expected ErrStoreClosed, got %v", err)
	}
}
