package courseservice

import (
	"context"

	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// Service defines the course catalog operations.
type Service interface {
	// ListCourses returns the built-in courses followed by custom courses sorted by name.
	ListCourses(ctx context.Context) ([]scoringdomain.Course, error)

	// GetCourse resolves a built-in or custom course.
	GetCourse(ctx context.Context, id string) (scoringdomain.Course, error)

	// CreateCustomCourse validates and stores a new course.
	CreateCustomCourse(ctx context.Context, req CreateCourseRequest) (scoringdomain.Course, error)

	// UpdateHole applies a single hole edit to a custom course.
	UpdateHole(ctx context.Context, courseID string, number int, update scoringdomain.HoleUpdate) (scoringdomain.Course, error)

	// DeleteCourse removes a custom course.
	DeleteCourse(ctx context.Context, id string) error
}

// CreateCourseRequest describes a custom course. When Holes is empty the course is
// generated with HoleCount par-4 holes.
type CreateCourseRequest struct {
	Name      string               `json:"name"`
	Location  string               `json:"location"`
	HoleCount int                  `json:"hole_count"`
	Holes     []scoringdomain.Hole `json:"holes,omitempty"`
}
