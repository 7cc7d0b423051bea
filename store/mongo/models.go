package mongo

import (
	"time"

	"github.com/xraph/grove"
)

// slotModel is one saved costing sheet. The payload is kept as the exact
// JSON text so amounts round-trip without float conversion.
type slotModel struct {
	grove.BaseModel `grove:"table:costing_slots"`

	Slot      string    `grove:"slot,pk"    bson:"_id"`
	Payload   string    `grove:"payload"    bson:"payload"`
	ItemCount int       `grove:"item_count" bson:"item_count"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
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
