package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	_ "github.com/xraph/grove/drivers/sqlitedriver/sqlitemigrate"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/costing/item"
	costingstore "github.com/xraph/costing/store"
	"github.com/xraph/costing/store/payload"
)

// compile-time interface check
var _ costingstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("costing/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("costing/sqlite: migration failed: %w", err)
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
	m := new(slotModel)
	err := s.sdb.NewSelect(m).
		Where("slot = ?", slot).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return []*item.LineItem{}, nil
		}
		return nil, err
	}
	return payload.Decode(slot, []byte(m.Payload))
}

// Save replaces the slot row with a single upsert.
func (s *Store) Save(ctx context.Context, slot string, items []*item.LineItem) error {
	data, err := payload.Encode(items)
	if err != nil {
		return err
	}
	m := toSlotModel(slot, data, len(items))
	_, err = s.sdb.NewInsert(m).
		OnConflict("(slot) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("item_count = EXCLUDED.item_count").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) Erase(ctx context.Context, slot string) error {
	_, err := s.sdb.NewDelete((*slotModel)(nil)).
		Where("slot = ?", slot).
		Exec(ctx)
	return err
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
