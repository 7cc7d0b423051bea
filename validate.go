package costing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xraph/costing/item"
)

// Field names reported by ValidationError.
const (
	FieldName         = "name"
	FieldCostPerUnit  = "costPerUnit"
	FieldQuantityUsed = "quantityUsed"
	FieldUnit         = "unit"
)

// ValidationMessage is the single user-facing message presentation layers
// show for any rejected add.
const ValidationMessage = "Please enter a valid Name, Cost, and Quantity."

// parseInput converts raw form values into a line item. Every invalid field
// is reported; the returned error is a MultiError of ValidationErrors.
func parseInput(in item.Input) (*item.LineItem, error) {
	var errs MultiError

	if strings.TrimSpace(in.Name) == "" {
		errs.Add(ValidationError{Field: FieldName, Message: "is required"})
	}
	cost, err := parseAmount(FieldCostPerUnit, in.CostPerUnit)
	errs.Add(err)
	qty, err := parseAmount(FieldQuantityUsed, in.QuantityUsed)
	errs.Add(err)

	if errs.HasErrors() {
		return nil, errs
	}

	return checkItem(in.Name, cost, qty, in.Unit)
}

// checkItem applies the line item rules to typed values and builds the item.
func checkItem(name string, cost, qty decimal.Decimal, unit string) (*item.LineItem, error) {
	var errs MultiError

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add(ValidationError{Field: FieldName, Message: "is required"})
	}
	if cost.IsNegative() {
		errs.Add(ValidationError{Field: FieldCostPerUnit, Message: "must not be negative"})
	}
	if !qty.IsPositive() {
		errs.Add(ValidationError{Field: FieldQuantityUsed, Message: "must be greater than zero"})
	}
	if errs.HasErrors() {
		return nil, errs
	}

	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = item.DefaultUnit
	}

	return item.New(name, cost, qty, unit), nil
}

// parseAmount parses a trimmed decimal string. Empty input is rejected.
func parseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ValidationError{Field: field, Message: "is required"}
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ValidationError{Field: field, Message: "must be a number"}
	}
	switch field {
	case FieldCostPerUnit:
		if v.IsNegative() {
			return decimal.Zero, ValidationError{Field: field, Message: "must not be negative"}
		}
	case FieldQuantityUsed:
		if !v.IsPositive() {
			return decimal.Zero, ValidationError{Field: field, Message: "must be greater than zero"}
		}
	}
	return v, nil
}
