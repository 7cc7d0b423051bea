// Package item defines the costing line item: one priced ingredient usage.
package item

import (
	"github.com/shopspring/decimal"

	"github.com/xraph/costing/id"
)

// DefaultUnit is the unit label used when none is supplied.
const DefaultUnit = "units"

// LineItem is one recorded ingredient usage with its derived cost.
//
// TotalItemCost is computed once at creation and stored alongside the inputs,
// so payloads written earlier keep the cost they were saved with.
type LineItem struct {
	ID            id.ItemID       `json:"id"`
	Name          string          `json:"name"`
	CostPerUnit   decimal.Decimal `json:"costPerUnit"`
	QuantityUsed  decimal.Decimal `json:"quantityUsed"`
	Unit          string          `json:"unit"`
	TotalItemCost decimal.Decimal `json:"totalItemCost"`
}

// Input carries raw, unvalidated values as a form would collect them.
type Input struct {
	Name         string
	CostPerUnit  string
	QuantityUsed string
	Unit         string
}

// Cost is the line cost rule: cost per unit times quantity used.
func Cost(costPerUnit, quantityUsed decimal.Decimal) decimal.Decimal {
	return costPerUnit.Mul(quantityUsed)
}

// New builds a line item with a fresh ID and its derived cost.
// It performs no validation.
func New(name string, costPerUnit, quantityUsed decimal.Decimal, unit string) *LineItem {
	return &LineItem{
		ID:            id.NewItemID(),
		Name:          name,
		CostPerUnit:   costPerUnit,
		QuantityUsed:  quantityUsed,
		Unit:          unit,
		TotalItemCost: Cost(costPerUnit, quantityUsed),
	}
}

// Stale reports whether the stored TotalItemCost no longer matches
// CostPerUnit * QuantityUsed.
func (li LineItem) Stale() bool {
	return !li.TotalItemCost.Equal(Cost(li.CostPerUnit, li.QuantityUsed))
}

// Equal reports whether two line items carry the same identity and values.
// Decimal fields compare numerically.
func (li LineItem) Equal(other LineItem) bool {
	return li.ID.String() == other.ID.String() &&
		li.Name == other.Name &&
		li.CostPerUnit.Equal(other.CostPerUnit) &&
		li.QuantityUsed.Equal(other.QuantityUsed) &&
		li.Unit == other.Unit &&
		li.TotalItemCost.Equal(other.TotalItemCost)
}
