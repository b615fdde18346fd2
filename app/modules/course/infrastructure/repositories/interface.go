package coursedb

import (
	"context"
)

// Repository defines the contract for custom course persistence.
type Repository interface {
	// Get retrieves a custom course by id.
	Get(ctx context.Context, id string) (*Course, error)

	// List returns all custom courses.
	List(ctx context.Context) ([]Course, error)

	// Save creates or replaces a custom course.
	Save(ctx context.Context, course *Course) error

	// Delete removes a custom course.
	Delete(ctx context.Context, id string) error
}
