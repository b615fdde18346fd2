package courseservice

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	coursedb "github.com/Black-And-White-Club/golf-stableford/app/modules/course/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/results"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/telemetry"
)

// Default hole values for generated custom courses.
const (
	defaultPar            = 4
	defaultMensDistance   = 350
	defaultWomensDistance = 300
)

// CourseService implements the Service interface.
type CourseService struct {
	repo  coursedb.Repository
	inst  telemetry.Instrumentation
	newID func() string
}

// NewCourseService creates a new CourseService.
func NewCourseService(repo coursedb.Repository, inst telemetry.Instrumentation) *CourseService {
	inst.Service = "CourseService"
	return &CourseService{
		repo:  repo,
		inst:  inst,
		newID: func() string { return uuid.NewString() },
	}
}

type courseResult = results.OperationResult[scoringdomain.Course, error]

// ListCourses returns the built-in courses followed by custom courses sorted by name.
func (s *CourseService) ListCourses(ctx context.Context) ([]scoringdomain.Course, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "ListCourses", "", func(ctx context.Context) (results.OperationResult[[]scoringdomain.Course, error], error) {
		custom, err := s.repo.List(ctx)
		if err != nil {
			return results.OperationResult[[]scoringdomain.Course, error]{}, err
		}
		slices.SortStableFunc(custom, func(a, b coursedb.Course) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})

		courses := BuiltInCourses()
		for i := range custom {
			courses = append(courses, custom[i].ToDomain())
		}
		return results.SuccessResult[[]scoringdomain.Course, error](courses), nil
	})
	return telemetry.Unwrap(result, err)
}

// GetCourse resolves a built-in or custom course.
func (s *CourseService) GetCourse(ctx context.Context, id string) (scoringdomain.Course, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "GetCourse", id, func(ctx context.Context) (courseResult, error) {
		return s.getCourseLogic(ctx, id)
	})
	return telemetry.Unwrap(result, err)
}

func (s *CourseService) getCourseLogic(ctx context.Context, id string) (courseResult, error) {
	if c, ok := builtIn(id); ok {
		return results.SuccessResult[scoringdomain.Course, error](c), nil
	}
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, coursedb.ErrNotFound) {
			return results.FailureResult[scoringdomain.Course, error](fmt.Errorf("%w: %s", ErrCourseNotFound, id)), nil
		}
		return courseResult{}, err
	}
	return results.SuccessResult[scoringdomain.Course, error](stored.ToDomain()), nil
}

// CreateCustomCourse validates and stores a new course.
func (s *CourseService) CreateCustomCourse(ctx context.Context, req CreateCourseRequest) (scoringdomain.Course, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "CreateCustomCourse", req.Name, func(ctx context.Context) (courseResult, error) {
		return s.createCustomCourseLogic(ctx, req)
	})
	return telemetry.Unwrap(result, err)
}

func (s *CourseService) createCustomCourseLogic(ctx context.Context, req CreateCourseRequest) (courseResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return results.FailureResult[scoringdomain.Course, error](fmt.Errorf("%w: name is required", ErrInvalidCourseRequest)), nil
	}

	holes := req.Holes
	if len(holes) == 0 {
		if req.HoleCount != 9 && req.HoleCount != 18 {
			return results.FailureResult[scoringdomain.Course, error](fmt.Errorf("%w: hole count must be 9 or 18, got %d", ErrInvalidCourseRequest, req.HoleCount)), nil
		}
		holes = DefaultHoles(req.HoleCount)
	} else if len(holes) != 9 && len(holes) != 18 {
		return results.FailureResult[scoringdomain.Course, error](fmt.Errorf("%w: a course has 9 or 18 holes, got %d", ErrInvalidCourseRequest, len(holes))), nil
	}

	course := scoringdomain.Course{
		ID:       s.newID(),
		Name:     name,
		Location: strings.TrimSpace(req.Location),
		Holes:    slices.Clone(holes),
	}
	slices.SortFunc(course.Holes, func(a, b scoringdomain.Hole) int { return cmp.Compare(a.Number, b.Number) })
	if err := scoringdomain.ValidateCourse(course); err != nil {
		return results.FailureResult[scoringdomain.Course, error](err), nil
	}

	if err := s.repo.Save(ctx, &coursedb.Course{
		ID:       course.ID,
		Name:     course.Name,
		Location: course.Location,
		Holes:    course.Holes,
	}); err != nil {
		return courseResult{}, err
	}
	return results.SuccessResult[scoringdomain.Course, error](course), nil
}

// DefaultHoles builds n par-4 holes with stroke index equal to the hole number.
func DefaultHoles(n int) []scoringdomain.Hole {
	holes := make([]scoringdomain.Hole, n)
	for i := range holes {
		holes[i] = scoringdomain.Hole{
			Number:      i + 1,
			Par:         defaultPar,
			StrokeIndex: i + 1,
			Distance:    scoringdomain.Distance{Men: defaultMensDistance, Women: defaultWomensDistance},
		}
	}
	return holes
}

// UpdateHole applies a single hole edit to a custom course.
func (s *CourseService) UpdateHole(ctx context.Context, courseID string, number int, update scoringdomain.HoleUpdate) (scoringdomain.Course, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "UpdateHole", courseID, func(ctx context.Context) (courseResult, error) {
		return s.updateHoleLogic(ctx, courseID, number, update)
	})
	return telemetry.Unwrap(result, err)
}

func (s *CourseService) updateHoleLogic(ctx context.Context, courseID string, number int, update scoringdomain.HoleUpdate) (courseResult, error) {
	if _, ok := builtIn(courseID); ok {
		return results.FailureResult[scoringdomain.Course, error](fmt.Errorf("%w: %s", ErrCourseReadOnly, courseID)), nil
	}

	stored, err := s.repo.Get(ctx, courseID)
	if err != nil {
		if errors.Is(err, coursedb.ErrNotFound) {
			return results.FailureResult[scoringdomain.Course, error](fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)), nil
		}
		return courseResult{}, err
	}

	updated, err := scoringdomain.ApplyHoleUpdate(stored.ToDomain(), number, update)
	if err != nil {
		return results.FailureResult[scoringdomain.Course, error](err), nil
	}

	stored.Holes = updated.Holes
	if err := s.repo.Save(ctx, stored); err != nil {
		return courseResult{}, err
	}
	return results.SuccessResult[scoringdomain.Course, error](updated), nil
}

// DeleteCourse removes a custom course.
func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "DeleteCourse", id, func(ctx context.Context) (results.OperationResult[string, error], error) {
		if _, ok := builtIn(id); ok {
			return results.FailureResult[string, error](fmt.Errorf("%w: %s", ErrCourseReadOnly, id)), nil
		}
		if _, err := s.repo.Get(ctx, id); err != nil {
			if errors.Is(err, coursedb.ErrNotFound) {
				return results.FailureResult[string, error](fmt.Errorf("%w: %s", ErrCourseNotFound, id)), nil
			}
			return results.OperationResult[string, error]{}, err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return results.OperationResult[string, error]{}, err
		}
		return results.SuccessResult[string, error](id), nil
	})
	_, err = telemetry.Unwrap(result, err)
	return err
}
