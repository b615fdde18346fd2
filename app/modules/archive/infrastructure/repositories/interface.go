package archivedb

import "context"

// Repository persists completed rounds.
type Repository interface {
	Get(ctx context.Context, id string) (*SavedRound, error)
	Save(ctx context.Context, saved *SavedRound) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]SavedRound, error)
}
