package item_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xraph/costing/item"
)

func TestCost(t *testing.T) {
	tests := []struct {
		cost, qty, want string
	}{
		{"20.00", "2.5", "50"},
		{"15.00", "1", "15"},
		{"0", "3", "0"},
		{"0.1", "3", "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.cost+"x"+tt.qty, func(t *testing.T) {
			got := item.Cost(decimal.RequireFromString(tt.cost), decimal.RequireFromString(tt.qty))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Cost: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	li := item.New("Flour", decimal.RequireFromString("20.00"), decimal.RequireFromString("2.5"), "kg")
	if li.ID.IsNil() {
		t.Fatal("expected an ID")
	}
	if !li.TotalItemCost.Equal(decimal.NewFromInt(50)) {
		t.Errorf("TotalItemCost: got %s, want 50", li.TotalItemCost)
	}
	if li.Stale() {
		t.Error("fresh item must not be stale")
	}

	other := item.New("Flour", li.CostPerUnit, li.QuantityUsed, "kg")
	if other.ID.String() == li.ID.String() {
		t.Error("two items must not share an ID")
	}
	if li.Equal(*other) {
		t.Error("items with different IDs must not be equal")
	}
}

func TestStale(t *testing.T) {
	li := item.New("Sugar", decimal.NewFromInt(15), decimal.NewFromInt(1), "kg")
	li.QuantityUsed = decimal.NewFromInt(2)
	if !li.Stale() {
		t.Error("expected stale after changing quantity without recomputing")
	}
}
