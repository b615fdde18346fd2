package coursedb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

// ErrNotFound is returned when a course is not found.
var ErrNotFound = errors.New("course not found")

const keyPrefix = "course"

// Impl implements the Repository interface on the key-value store.
type Impl struct {
	store kvstore.Store
}

// NewRepository creates a new course repository.
func NewRepository(store kvstore.Store) Repository {
	return &Impl{store: store}
}

func key(id string) string {
	return kvstore.Key(keyPrefix, id)
}

// Get retrieves a custom course by id.
func (r *Impl) Get(ctx context.Context, id string) (*Course, error) {
	course, err := kvstore.GetJSON[Course](ctx, r.store, key(id))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// List returns all custom courses in key order.
func (r *Impl) List(ctx context.Context) ([]Course, error) {
	keys, err := r.store.Keys(ctx, keyPrefix+".")
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := make([]Course, 0, len(keys))
	for _, k := range keys {
		course, err := kvstore.GetJSON[Course](ctx, r.store, k)
		if err != nil {
			// Deleted between Keys and Get.
			if errors.Is(err, kvstore.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", k, err)
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

// Save creates or replaces a custom course.
func (r *Impl) Save(ctx context.Context, course *Course) error {
	if strings.TrimSpace(course.ID) == "" {
		return fmt.Errorf("failed to save course: empty id")
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	if err := kvstore.PutJSON(ctx, r.store, key(course.ID), course); err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}
	return nil
}

// Delete removes a custom course.
func (r *Impl) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}
