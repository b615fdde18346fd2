package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Blob is a row of the kv_blobs table.
type Blob struct {
	bun.BaseModel `bun:"table:kv_blobs,alias:kv"`

	Key       string    `bun:"key,pk"`
	Value     []byte    `bun:"value,type:bytea,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// BunStore stores blobs in Postgres through bun.
type BunStore struct {
	db     bun.IDB
	closer func() error
}

// OpenPostgres connects to dsn with pgdriver.
func OpenPostgres(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// NewBunStore wraps db. The kv_blobs table is created by the migrations package.
func NewBunStore(db bun.IDB) *BunStore {
	s := &BunStore{db: db}
	if closer, ok := db.(*bun.DB); ok {
		s.closer = closer.Close
	}
	return s
}

func (s *BunStore) Get(ctx context.Context, key string) ([]byte, error) {
	blob := new(Blob)
	err := s.db.NewSelect().
		Model(blob).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return blob.Value, nil
}

func (s *BunStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	blob := &Blob{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.db.NewInsert().
		Model(blob).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*Blob)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *BunStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.NewSelect().
		Model((*Blob)(nil)).
		Column("key").
		Where("starts_with(key, ?)", prefix).
		OrderExpr(`key COLLATE "C" ASC`).
		Scan(ctx, &keys)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys with prefix %q: %w", prefix, err)
	}
	return keys, nil
}

func (s *BunStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
