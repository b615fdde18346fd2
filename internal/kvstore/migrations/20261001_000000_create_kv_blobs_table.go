package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating kv_blobs table...")
		_, err := db.NewCreateTable().Model((*kvstore.Blob)(nil)).IfNotExists().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create kv_blobs table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping kv_blobs table...")
		_, err := db.NewDropTable().Model((*kvstore.Blob)(nil)).IfExists().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop kv_blobs table: %w", err)
		}
		return nil
	})
}
