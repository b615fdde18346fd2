package courseservice

import (
	"context"

	coursedb "github.com/Black-And-White-Club/golf-stableford/app/modules/course/infrastructure/repositories"
)

// ------------------------
// Fake Course Repo
// ------------------------

type FakeCourseRepo struct {
	trace []string

	GetFunc    func(ctx context.Context, id string) (*coursedb.Course, error)
	ListFunc   func(ctx context.Context) ([]coursedb.Course, error)
	SaveFunc   func(ctx context.Context, course *coursedb.Course) error
	DeleteFunc func(ctx context.Context, id string) error
}

func NewFakeCourseRepo() *FakeCourseRepo {
	return &FakeCourseRepo{trace: []string{}}
}

func (f *FakeCourseRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCourseRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeCourseRepo) Get(ctx context.Context, id string) (*coursedb.Course, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeCourseRepo) List(ctx context.Context) ([]coursedb.Course, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	return nil, nil
}

func (f *FakeCourseRepo) Save(ctx context.Context, course *coursedb.Course) error {
	f.record("Save")
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, course)
	}
	return nil
}

func (f *FakeCourseRepo) Delete(ctx context.Context, id string) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

var _ coursedb.Repository = (*FakeCourseRepo)(nil)
