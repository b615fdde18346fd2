package rounddb

import "context"

// Repository persists round sessions.
type Repository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	List(ctx context.Context) ([]Session, error)
}
