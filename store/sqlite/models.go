package sqlite

import (
	"time"

	"github.com/xraph/grove"
)

// slotModel is one saved costing sheet. The payload column holds the JSON
// document produced by package payload.
type slotModel struct {
	grove.BaseModel `grove:"table:costing_slots"`

	Slot      string    `grove:"slot,pk"`
	Payload   string    `grove:"payload"`
	ItemCount int       `grove:"item_count"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toSlotModel(slot string, data []byte, count int) *slotModel {
	t := now()
	return &slotModel{
		Slot:      slot,
		Payload:   string(data),
		ItemCount: count,
		CreatedAt: t,
		UpdatedAt: t,
	}
}
