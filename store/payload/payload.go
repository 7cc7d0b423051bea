// Package payload encodes and decodes the JSON document every costing store
// keeps in a slot:
//
//	[
//	  {"id": "item_01h...", "name": "Flour", "costPerUnit": 20.00,
//	   "quantityUsed": 2.5, "unit": "kg", "totalItemCost": 50.00},
//	  ...
//	]
//
// Amounts are written as exact JSON numbers. Decoding is defensive: numeric
// ids from older sheets are kept as legacy ids, a missing unit falls back to
// item.DefaultUnit, a missing totalItemCost is recomputed, and unknown fields
// are ignored. Anything else that does not fit the shape is reported as a
// *costing.CorruptStateError.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	costing "github.com/xraph/costing"
	"github.com/xraph/costing/id"
	"github.com/xraph/costing/item"
)

type record struct {
	ID            json.RawMessage `json:"id"`
	Name          string          `json:"name"`
	CostPerUnit   json.Number     `json:"costPerUnit"`
	QuantityUsed  json.Number     `json:"quantityUsed"`
	Unit          string          `json:"unit"`
	TotalItemCost json.Number     `json:"totalItemCost"`
}

type rawRecord struct {
	ID            json.RawMessage `json:"id"`
	Name          string          `json:"name"`
	CostPerUnit   json.Number     `json:"costPerUnit"`
	QuantityUsed  json.Number     `json:"quantityUsed"`
	Unit          string          `json:"unit"`
	TotalItemCost json.Number     `json:"totalItemCost"`
}

// Encode serializes items, in order, into the slot payload.
func Encode(items []*item.LineItem) ([]byte, error) {
	records := make([]record, 0, len(items))
	for i, li := range items {
		if li == nil {
			return nil, fmt.Errorf("payload: encode: nil item at index %d", i)
		}
		if li.ID.IsNil() {
			return nil, fmt.Errorf("payload: encode: item %q at index %d has no id", li.Name, i)
		}
		rawID, err := encodeID(li.ID)
		if err != nil {
			return nil, fmt.Errorf("payload: encode: item %q at index %d: %w", li.Name, i, err)
		}
		records = append(records, record{
			ID:            rawID,
			Name:          li.Name,
			CostPerUnit:   json.Number(li.CostPerUnit.String()),
			QuantityUsed:  json.Number(li.QuantityUsed.String()),
			Unit:          li.Unit,
			TotalItemCost: json.Number(li.TotalItemCost.String()),
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("payload: encode: %w", err)
	}
	return data, nil
}

// Decode parses a slot payload. Empty data and a JSON null decode to an
// empty slice. slot is only used to label errors.
func Decode(slot string, data []byte) ([]*item.LineItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []*item.LineItem{}, nil
	}

	var raws []rawRecord
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, &costing.CorruptStateError{Slot: slot, Err: err}
	}

	items := make([]*item.LineItem, 0, len(raws))
	seen := make(map[string]int, len(raws))
	for i, raw := range raws {
		li, err := decodeRecord(raw)
		if err != nil {
			return nil, &costing.CorruptStateError{Slot: slot, Err: fmt.Errorf("item %d: %w", i, err)}
		}
		key := li.ID.String()
		if prev, dup := seen[key]; dup {
			return nil, &costing.CorruptStateError{
				Slot: slot,
				Err:  fmt.Errorf("item %d: duplicate id %q (first seen at item %d)", i, key, prev),
			}
		}
		seen[key] = i
		items = append(items, li)
	}
	return items, nil
}

func decodeRecord(raw rawRecord) (*item.LineItem, error) {
	itemID, err := decodeID(raw.ID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return nil, errors.New("empty name")
	}

	cost, err := decodeNumber("costPerUnit", raw.CostPerUnit)
	if err != nil {
		return nil, err
	}
	if cost.IsNegative() {
		return nil, fmt.Errorf("negative costPerUnit %s", cost)
	}

	qty, err := decodeNumber("quantityUsed", raw.QuantityUsed)
	if err != nil {
		return nil, err
	}
	if !qty.IsPositive() {
		return nil, fmt.Errorf("non-positive quantityUsed %s", qty)
	}

	unit := strings.TrimSpace(raw.Unit)
	if unit == "" {
		unit = item.DefaultUnit
	}

	total := item.Cost(cost, qty)
	if raw.TotalItemCost != "" {
		total, err = decodeNumber("totalItemCost", raw.TotalItemCost)
		if err != nil {
			return nil, err
		}
	}

	return &item.LineItem{
		ID:            itemID,
		Name:          name,
		CostPerUnit:   cost,
		QuantityUsed:  qty,
		Unit:          unit,
		TotalItemCost: total,
	}, nil
}

func decodeID(raw json.RawMessage) (id.ID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return id.Nil, errors.New("missing id")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return id.Nil, fmt.Errorf("id: %w", err)
		}
		return id.ParseItemID(s)
	}

	return id.Legacy(string(raw))
}

// encodeID writes legacy ids as JSON numbers, the form older sheets use,
// and TypeIDs as strings.
func encodeID(itemID id.ID) (json.RawMessage, error) {
	s := itemID.String()
	if itemID.IsLegacy() && (s == "0" || s[0] != '0') {
		return json.RawMessage(s), nil
	}
	return json.Marshal(s)
}

func decodeNumber(field string, n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, fmt.Errorf("missing %s", field)
	}
	v, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}
