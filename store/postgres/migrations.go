package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the costing store.
var Migrations = migrate.NewGroup("costing")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_costing_slots",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS costing_slots (
    slot       TEXT PRIMARY KEY,
    payload    JSONB NOT NULL DEFAULT '[]',
    item_count INT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS costing_slots`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "index_costing_slots_updated",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE INDEX IF NOT EXISTS idx_costing_slots_updated_at ON costing_slots (updated_at DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP INDEX IF EXISTS idx_costing_slots_updated_at`)
				return err
			},
		},
	)
}
