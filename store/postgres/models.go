package postgres

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"
)

// slotModel is one saved costing sheet. The payload is stored as JSONB so
// sheets can be inspected with Postgres JSON operators.
type slotModel struct {
	grove.BaseModel `grove:"table:costing_slots"`

	Slot      string          `grove:"slot,pk"`
	Payload   json.RawMessage `grove:"payload,type:jsonb"`
	ItemCount int             `grove:"item_count"`
	CreatedAt time.Time       `grove:"created_at"`
	UpdatedAt time.Time       `grove:"updated_at"`
}

func toSlotModel(slot string, data []byte, count int) *slotModel {
	t := now()
	return &slotModel{
		Slot:      slot,
		Payload:   json.RawMessage(data),
		ItemCount: count,
		CreatedAt: t,
		UpdatedAt: t,
	}
}
