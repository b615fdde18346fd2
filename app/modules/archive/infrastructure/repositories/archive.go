package archivedb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

// ErrNotFound is returned when an archive entry does not exist.
var ErrNotFound = errors.New("archived round not found")

const keyPrefix = "archive"

// Impl implements the Repository interface on the key-value store.
type Impl struct {
	store kvstore.Store
}

// NewRepository creates a new archive repository.
func NewRepository(store kvstore.Store) Repository {
	return &Impl{store: store}
}

func key(id string) string {
	return kvstore.Key(keyPrefix, id)
}

func (r *Impl) Get(ctx context.Context, id string) (*SavedRound, error) {
	saved, err := kvstore.GetJSON[SavedRound](ctx, r.store, key(id))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) || errors.Is(err, kvstore.ErrInvalidKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get archived round: %w", err)
	}
	return saved, nil
}

func (r *Impl) Save(ctx context.Context, saved *SavedRound) error {
	if saved == nil || saved.ID == "" {
		return errors.New("archive id is required")
	}
	if err := kvstore.PutJSON(ctx, r.store, key(saved.ID), saved); err != nil {
		return fmt.Errorf("failed to save archived round: %w", err)
	}
	return nil
}

func (r *Impl) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("failed to delete archived round: %w", err)
	}
	return nil
}

// List returns every archived round, newest first.
func (r *Impl) List(ctx context.Context) ([]SavedRound, error) {
	keys, err := r.store.Keys(ctx, keyPrefix+".")
	if err != nil {
		return nil, fmt.Errorf("failed to list archived rounds: %w", err)
	}
	out := make([]SavedRound, 0, len(keys))
	for _, k := range keys {
		saved, err := r.Get(ctx, strings.TrimPrefix(k, keyPrefix+"."))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *saved)
	}
	slices.SortStableFunc(out, func(a, b SavedRound) int {
		return b.CompletedAt.Compare(a.CompletedAt)
	})
	return out, nil
}
