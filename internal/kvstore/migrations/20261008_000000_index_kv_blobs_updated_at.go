package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Indexing kv_blobs.updated_at...")
		if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_kv_blobs_updated_at ON kv_blobs (updated_at)`); err != nil {
			return fmt.Errorf("failed to create kv_blobs updated_at index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.ExecContext(ctx, `DROP INDEX IF EXISTS idx_kv_blobs_updated_at`); err != nil {
			return fmt.Errorf("failed to drop kv_blobs updated_at index: %w", err)
		}
		return nil
	})
}
