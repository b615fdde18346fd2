package kvstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/golf-stableford/config"
)

// Open builds the backend selected in cfg. The postgres backend expects its schema to
// have been migrated with "stableford migrate migrate".
func Open(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (Store, error) {
	logger.InfoContext(ctx, "Opening key-value store", slog.String("backend", cfg.Backend))

	switch cfg.Backend {
	case "", config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StorePostgres:
		db := OpenPostgres(cfg.PostgresDSN)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to reach postgres: %w", err)
		}
		return NewBunStore(db), nil
	case config.StoreSQLite:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreNATS:
		s, err := OpenNATS(ctx, cfg.NATSURL, cfg.NATSBucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
