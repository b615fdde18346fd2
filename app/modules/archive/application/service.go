package archiveservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	archivedb "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/results"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/telemetry"
)

// ArchiveService implements the Service interface.
type ArchiveService struct {
	repo  archivedb.Repository
	inst  telemetry.Instrumentation
	now   func() time.Time
	newID func() string
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(repo archivedb.Repository, inst telemetry.Instrumentation) *ArchiveService {
	inst.Service = "ArchiveService"
	return &ArchiveService{
		repo:  repo,
		inst:  inst,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

type savedResult = results.OperationResult[archivedb.SavedRound, error]

func (s *ArchiveService) Archive(ctx context.Context, round scoringdomain.Round, summary scoringdomain.RoundSummary) (string, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "Archive", round.ID, func(ctx context.Context) (results.OperationResult[string, error], error) {
		if round.ID == "" {
			return results.FailureResult[string, error](fmt.Errorf("%w: round id is required", ErrInvalidArchive)), nil
		}
		completedAt := summary.CompletedAt
		if completedAt.IsZero() {
			completedAt = s.now().UTC()
		}
		saved := &archivedb.SavedRound{
			ID:          s.newID(),
			Round:       round,
			Summary:     summary,
			CompletedAt: completedAt,
		}
		if err := s.repo.Save(ctx, saved); err != nil {
			return results.OperationResult[string, error]{}, err
		}
		return results.SuccessResult[string, error](saved.ID), nil
	})
	return telemetry.Unwrap(result, err)
}

func (s *ArchiveService) GetArchive(ctx context.Context, id string) (archivedb.SavedRound, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "GetArchive", id, func(ctx context.Context) (savedResult, error) {
		saved, err := s.repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, archivedb.ErrNotFound) {
				return results.FailureResult[archivedb.SavedRound, error](fmt.Errorf("%w: %s", ErrArchiveNotFound, id)), nil
			}
			return savedResult{}, err
		}
		return results.SuccessResult[archivedb.SavedRound, error](*saved), nil
	})
	return telemetry.Unwrap(result, err)
}

func (s *ArchiveService) ListArchives(ctx context.Context, since string) ([]archivedb.SavedRound, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "ListArchives", since, func(ctx context.Context) (results.OperationResult[[]archivedb.SavedRound, error], error) {
		cutoff, err := parseSince(since, s.now())
		if err != nil {
			return results.FailureResult[[]archivedb.SavedRound, error](err), nil
		}
		all, err := s.repo.List(ctx)
		if err != nil {
			return results.OperationResult[[]archivedb.SavedRound, error]{}, err
		}
		out := make([]archivedb.SavedRound, 0, len(all))
		for _, saved := range all {
			if saved.CompletedAt.Before(cutoff) {
				continue
			}
			out = append(out, saved)
		}
		return results.SuccessResult[[]archivedb.SavedRound, error](out), nil
	})
	return telemetry.Unwrap(result, err)
}

func (s *ArchiveService) DeleteArchive(ctx context.Context, id string) error {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "DeleteArchive", id, func(ctx context.Context) (results.OperationResult[string, error], error) {
		if _, err := s.repo.Get(ctx, id); err != nil {
			if errors.Is(err, archivedb.ErrNotFound) {
				return results.FailureResult[string, error](fmt.Errorf("%w: %s", ErrArchiveNotFound, id)), nil
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
