package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/costing/item"
	costingstore "github.com/xraph/costing/store"
	"github.com/xraph/costing/store/payload"
)

// Collection name constants.
const (
	colSlots = "costing_slots"
)

// compile-time interface check
var _ costingstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all costing collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("costing/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Slot Store ====================

func (s *Store) Load(ctx context.Context, slot string) ([]*item.LineItem, error) {
	var m slotModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": slot}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return []*item.LineItem{}, nil
		}
		return nil, fmt.Errorf("costing/mongo: load slot: %w", err)
	}
	return payload.Decode(slot, []byte(m.Payload))
}

// Save replaces the slot document with a single upsert.
func (s *Store) Save(ctx context.Context, slot string, items []*item.LineItem) error {
	data, err := payload.Encode(items)
	if err != nil {
		return err
	}
	m := toSlotModel(slot, data, len(items))

	_, err = s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Slot}).
		SetUpdate(bson.M{
			"$set": bson.M{
				"payload":    m.Payload,
				"item_count": m.ItemCount,
				"updated_at": m.UpdatedAt,
			},
			"$setOnInsert": bson.M{
				"created_at": m.CreatedAt,
			},
		}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("costing/mongo: save slot: %w", err)
	}
	return nil
}

func (s *Store) Erase(ctx context.Context, slot string) error {
	_, err := s.mdb.NewDelete((*slotModel)(nil)).
		Filter(bson.M{"_id": slot}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("costing/mongo: erase slot: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all costing collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colSlots: {
			{Keys: bson.D{{Key: "updated_at", Value: -1}}},
		},
	}
}
