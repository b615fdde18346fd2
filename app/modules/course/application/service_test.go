package courseservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	coursedb "github.com/Black-And-White-Club/golf-stableford/app/modules/course/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/telemetry"
)

func newTestService(repo coursedb.Repository) *CourseService {
	s := NewCourseService(repo, telemetry.Instrumentation{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: observability.NoOpMetrics{},
		Tracer:  noop.NewTracerProvider().Tracer("test"),
	})
	s.newID = func() string { return "custom-1" }
	return s
}

func TestBuiltInCoursesArePar72(t *testing.T) {
	courses := BuiltInCourses()
	require.Len(t, courses, 4)
	for _, c := range courses {
		assert.Equal(t, 72, c.Par(), c.Name)
		assert.Equal(t, 18, c.HoleCount(), c.Name)
		assert.NoError(t, scoringdomain.ValidateCourse(c), c.Name)
		for _, h := range c.Holes {
			assert.Positive(t, h.Distance.Men)
			assert.Positive(t, h.Distance.Women)
		}
	}
	assert.Equal(t, courses, BuiltInCourses(), "catalog must be deterministic")
}

func TestCourseService_ListCourses(t *testing.T) {
	repo := NewFakeCourseRepo()
	repo.ListFunc = func(ctx context.Context) ([]coursedb.Course, error) {
		return []coursedb.Course{
			{ID: "z", Name: "zebra park", Holes: DefaultHoles(9)},
			{ID: "a", Name: "Alder Links", Holes: DefaultHoles(18)},
		}, nil
	}

	courses, err := newTestService(repo).ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 6)
	assert.Equal(t, "pine-valley", courses[0].ID)
	assert.Equal(t, "a", courses[4].ID)
	assert.Equal(t, "z", courses[5].ID)
}

func TestCourseService_ListCoursesRepoError(t *testing.T) {
	repo := NewFakeCourseRepo()
	repo.ListFunc = func(ctx context.Context) ([]coursedb.Course, error) {
		return nil, errors.New("store offline")
	}
	_, err := newTestService(repo).ListCourses(context.Background())
	assert.Error(t, err)
}

func TestCourseService_GetCourse(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupRepo func(*FakeCourseRepo)
		wantErr   error
		wantTrace []string
	}{
		{name: "built-in", id: "pebble-beach", wantTrace: []string{}},
		{
			name: "custom",
			id:   "custom-1",
			setupRepo: func(r *FakeCourseRepo) {
				r.GetFunc = func(ctx context.Context, id string) (*coursedb.Course, error) {
					return &coursedb.Course{ID: id, Name: "Mine", Holes: DefaultHoles(9)}, nil
				}
			},
			wantTrace: []string{"Get"},
		},
		{name: "unknown", id: "nope", wantErr: ErrCourseNotFound, wantTrace: []string{"Get"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeCourseRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			course, err := newTestService(repo).GetCourse(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, course.ID)
			}
			assert.Equal(t, tt.wantTrace, repo.Trace())
		})
	}
}

func TestCourseService_CreateCustomCourse(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCourseRequest
		wantErr error
		check   func(t *testing.T, c scoringdomain.Course)
	}{
		{
			name: "generated nine",
			req:  CreateCourseRequest{Name: "  Muni  ", Location: "Here", HoleCount: 9},
			check: func(t *testing.T, c scoringdomain.Course) {
				assert.Equal(t, "custom-1", c.ID)
				assert.Equal(t, "Muni", c.Name)
				assert.Equal(t, 9, c.HoleCount())
				assert.Equal(t, 36, c.Par())
				h, _ := c.Hole(5)
				assert.Equal(t, scoringdomain.Hole{Number: 5, Par: 4, StrokeIndex: 5, Distance: scoringdomain.Distance{Men: 350, Women: 300}}, h)
			},
		},
		{
			name: "explicit holes are sorted",
			req: CreateCourseRequest{Name: "Explicit", Holes: func() []scoringdomain.Hole {
				h := DefaultHoles(9)
				h[0], h[8] = h[8], h[0]
				h[0].Par = 3
				return h
			}()},
			check: func(t *testing.T, c scoringdomain.Course) {
				assert.Equal(t, 1, c.Holes[0].Number)
				assert.Equal(t, 3, c.Holes[8].Par)
			},
		},
		{name: "missing name", req: CreateCourseRequest{HoleCount: 18}, wantErr: ErrInvalidCourseRequest},
		{name: "bad hole count", req: CreateCourseRequest{Name: "x", HoleCount: 12}, wantErr: ErrInvalidCourseRequest},
		{name: "bad explicit count", req: CreateCourseRequest{Name: "x", Holes: DefaultHoles(4)}, wantErr: ErrInvalidCourseRequest},
		{
			name: "duplicate stroke index",
			req: CreateCourseRequest{Name: "x", Holes: func() []scoringdomain.Hole {
				h := DefaultHoles(9)
				h[1].StrokeIndex = 1
				return h
			}()},
			wantErr: scoringdomain.ErrInvalidCourse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeCourseRepo()
			var saved *coursedb.Course
			repo.SaveFunc = func(ctx context.Context, c *coursedb.Course) error {
				saved = c
				return nil
			}

			course, err := newTestService(repo).CreateCustomCourse(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, saved)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.Equal(t, course.ID, saved.ID)
			tt.check(t, course)
		})
	}
}

func TestCourseService_UpdateHole(t *testing.T) {
	stored := &coursedb.Course{ID: "custom-1", Name: "Mine", Holes: DefaultHoles(9)}

	t.Run("applies update and saves", func(t *testing.T) {
		repo := NewFakeCourseRepo()
		repo.GetFunc = func(ctx context.Context, id string) (*coursedb.Course, error) {
			c := *stored
			c.Holes = DefaultHoles(9)
			return &c, nil
		}
		var saved *coursedb.Course
		repo.SaveFunc = func(ctx context.Context, c *coursedb.Course) error {
			saved = c
			return nil
		}

		course, err := newTestService(repo).UpdateHole(context.Background(), "custom-1", 2, scoringdomain.SetPar{Par: 5})
		require.NoError(t, err)
		h, _ := course.Hole(2)
		assert.Equal(t, 5, h.Par)
		require.NotNil(t, saved)
		assert.Equal(t, 5, saved.Holes[1].Par)
		assert.Equal(t, []string{"Get", "Save"}, repo.Trace())
	})

	t.Run("built-in is read-only", func(t *testing.T) {
		repo := NewFakeCourseRepo()
		_, err := newTestService(repo).UpdateHole(context.Background(), "pine-valley", 1, scoringdomain.SetPar{Par: 3})
		assert.ErrorIs(t, err, ErrCourseReadOnly)
		assert.Empty(t, repo.Trace())
	})

	t.Run("invalid update is not saved", func(t *testing.T) {
		repo := NewFakeCourseRepo()
		repo.GetFunc = func(ctx context.Context, id string) (*coursedb.Course, error) {
			return &coursedb.Course{ID: id, Holes: DefaultHoles(9)}, nil
		}
		_, err := newTestService(repo).UpdateHole(context.Background(), "custom-1", 1, scoringdomain.SetStrokeIndex{StrokeIndex: 10})
		assert.ErrorIs(t, err, scoringdomain.ErrInvalidHoleUpdate)
		assert.Equal(t, []string{"Get"}, repo.Trace())
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := newTestService(NewFakeCourseRepo()).UpdateHole(context.Background(), "missing", 1, scoringdomain.SetPar{Par: 3})
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseService_DeleteCourse(t *testing.T) {
	t.Run("custom", func(t *testing.T) {
		repo := NewFakeCourseRepo()
		repo.GetFunc = func(ctx context.Context, id string) (*coursedb.Course, error) {
			return &coursedb.Course{ID: id}, nil
		}
		require.NoError(t, newTestService(repo).DeleteCourse(context.Background(), "custom-1"))
		assert.Equal(t, []string{"Get", "Delete"}, repo.Trace())
	})

	t.Run("built-in", func(t *testing.T) {
		err := newTestService(NewFakeCourseRepo()).DeleteCourse(context.Background(), "augusta-national")
		assert.ErrorIs(t, err, ErrCourseReadOnly)
	})

	t.Run("missing", func(t *testing.T) {
		err := newTestService(NewFakeCourseRepo()).DeleteCourse(context.Background(), "gone")
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}
