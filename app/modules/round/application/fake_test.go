package roundservice

import (
	"context"
	"fmt"
	"sync"

	courseservice "github.com/Black-And-White-Club/golf-stableford/app/modules/course/application"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// ------------------------
// Fake Course Lookup
// ------------------------

type FakeCourseLookup struct {
	GetCourseFunc func(ctx context.Context, id string) (scoringdomain.Course, error)
}

func (f *FakeCourseLookup) GetCourse(ctx context.Context, id string) (scoringdomain.Course, error) {
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, id)
	}
	for _, c := range courseservice.BuiltInCourses() {
		if c.ID == id {
			return c, nil
		}
	}
	return scoringdomain.Course{}, fmt.Errorf("%w: %s", courseservice.ErrCourseNotFound, id)
}

// ------------------------
// Fake Archiver
// ------------------------

type FakeArchiver struct {
	mu       sync.Mutex
	archived []scoringdomain.RoundSummary

	ArchiveFunc func(ctx context.Context, round scoringdomain.Round, summary scoringdomain.RoundSummary) (string, error)
}

func (f *FakeArchiver) Archive(ctx context.Context, round scoringdomain.Round, summary scoringdomain.RoundSummary) (string, error) {
	if f.ArchiveFunc != nil {
		return f.ArchiveFunc(ctx, round, summary)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archived = append(f.archived, summary)
	return fmt.Sprintf("archive-%d", len(f.archived)), nil
}

func (f *FakeArchiver) Archived() []scoringdomain.RoundSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]scoringdomain.RoundSummary(nil), f.archived...)
}

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent

	PublishEventFunc func(ctx context.Context, topic string, payload any) error
}

func (f *FakePublisher) PublishEvent(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
	f.mu.Unlock()
	if f.PublishEventFunc != nil {
		return f.PublishEventFunc(ctx, topic, payload)
	}
	return nil
}

func (f *FakePublisher) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	topics := make([]string, 0, len(f.events))
	for _, e := range f.events {
		topics = append(topics, e.Topic)
	}
	return topics
}

func (f *FakePublisher) Last() publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[len(f.events)-1]
}

var (
	_ CourseLookup   = (*FakeCourseLookup)(nil)
	_ Archiver       = (*FakeArchiver)(nil)
	_ EventPublisher = (*FakePublisher)(nil)
)
