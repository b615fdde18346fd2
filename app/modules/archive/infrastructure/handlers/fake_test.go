package archivehandlers

import (
	"context"

	archiveservice "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/application"
	archivedb "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// FakeService implements archiveservice.Service for handler tests.
type FakeService struct {
	trace []string

	ArchiveFunc       func(ctx context.Context, round scoringdomain.Round, summary scoringdomain.RoundSummary) (string, error)
	GetArchiveFunc    func(ctx context.Context, id string) (archivedb.SavedRound, error)
	ListArchivesFunc  func(ctx context.Context, since string) ([]archivedb.SavedRound, error)
	DeleteArchiveFunc func(ctx context.Context, id string) error
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) Archive(ctx context.Context, round scoringdomain.Round, summary scoringdomain.RoundSummary) (string, error) {
	f.record("Archive")
	if f.ArchiveFunc != nil {
		return f.ArchiveFunc(ctx, round, summary)
	}
	return "", nil
}

func (f *FakeService) GetArchive(ctx context.Context, id string) (archivedb.SavedRound, error) {
	f.record("GetArchive")
	if f.GetArchiveFunc != nil {
		return f.GetArchiveFunc(ctx, id)
	}
	return archivedb.SavedRound{}, archiveservice.ErrArchiveNotFound
}

func (f *FakeService) ListArchives(ctx context.Context, since string) ([]archivedb.SavedRound, error) {
	f.record("ListArchives")
	if f.ListArchivesFunc != nil {
		return f.ListArchivesFunc(ctx, since)
	}
	return nil, nil
}

func (f *FakeService) DeleteArchive(ctx context.Context, id string) error {
	f.record("DeleteArchive")
	if f.DeleteArchiveFunc != nil {
		return f.DeleteArchiveFunc(ctx, id)
	}
	return nil
}

var _ archiveservice.Service = (*FakeService)(nil)
