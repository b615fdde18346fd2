package rounddb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

// ErrNotFound is returned when a round session does not exist.
var ErrNotFound = errors.New("round not found")

const keyPrefix = "round"

// Impl implements the Repository interface on the key-value store.
type Impl struct {
	store kvstore.Store
	now   func() time.Time
}

// NewRepository creates a new round repository.
func NewRepository(store kvstore.Store) Repository {
	return &Impl{store: store, now: time.Now}
}

func key(id string) string {
	return kvstore.Key(keyPrefix, id)
}

// Get retrieves a session by round id.
func (r *Impl) Get(ctx context.Context, id string) (*Session, error) {
	session, err := kvstore.GetJSON[Session](ctx, r.store, key(id))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) || errors.Is(err, kvstore.ErrInvalidKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return session, nil
}

// Save writes the session, stamping its timestamps.
func (r *Impl) Save(ctx context.Context, session *Session) error {
	if session == nil || session.ID() == "" {
		return errors.New("round id is required")
	}
	now := r.now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	if err := kvstore.PutJSON(ctx, r.store, key(session.ID()), session); err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}
	return nil
}

// List returns every stored session in key order.
func (r *Impl) List(ctx context.Context) ([]Session, error) {
	keys, err := r.store.Keys(ctx, keyPrefix+".")
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	sessions := make([]Session, 0, len(keys))
	for _, k := range keys {
		session, err := r.Get(ctx, strings.TrimPrefix(k, keyPrefix+"."))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}
