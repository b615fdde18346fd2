package coursehandlers

import (
	"context"

	courseservice "github.com/Black-And-White-Club/golf-stableford/app/modules/course/application"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// FakeService implements courseservice.Service for handler tests.
type FakeService struct {
	ListCoursesFunc        func(ctx context.Context) ([]scoringdomain.Course, error)
	GetCourseFunc          func(ctx context.Context, id string) (scoringdomain.Course, error)
	CreateCustomCourseFunc func(ctx context.Context, req courseservice.CreateCourseRequest) (scoringdomain.Course, error)
	UpdateHoleFunc         func(ctx context.Context, courseID string, number int, update scoringdomain.HoleUpdate) (scoringdomain.Course, error)
	DeleteCourseFunc       func(ctx context.Context, id string) error
}

func (f *FakeService) ListCourses(ctx context.Context) ([]scoringdomain.Course, error) {
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeService) GetCourse(ctx context.Context, id string) (scoringdomain.Course, error) {
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, id)
	}
	return scoringdomain.Course{}, courseservice.ErrCourseNotFound
}

func (f *FakeService) CreateCustomCourse(ctx context.Context, req courseservice.CreateCourseRequest) (scoringdomain.Course, error) {
	if f.CreateCustomCourseFunc != nil {
		return f.CreateCustomCourseFunc(ctx, req)
	}
	return scoringdomain.Course{}, nil
}

func (f *FakeService) UpdateHole(ctx context.Context, courseID string, number int, update scoringdomain.HoleUpdate) (scoringdomain.Course, error) {
	if f.UpdateHoleFunc != nil {
		return f.UpdateHoleFunc(ctx, courseID, number, update)
	}
	return scoringdomain.Course{}, nil
}

func (f *FakeService) DeleteCourse(ctx context.Context, id string) error {
	if f.DeleteCourseFunc != nil {
		return f.DeleteCourseFunc(ctx, id)
	}
	return nil
}

var _ courseservice.Service = (*FakeService)(nil)
