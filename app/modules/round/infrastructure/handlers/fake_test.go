package roundhandlers

import (
	"context"

	roundservice "github.com/Black-And-White-Club/golf-stableford/app/modules/round/application"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// FakeService implements roundservice.Service for handler tests.
type FakeService struct {
	trace []string

	StartRoundFunc       func(ctx context.Context, setup roundservice.RoundSetup) (roundservice.RoundSession, error)
	GetRoundFunc         func(ctx context.Context, roundID string) (roundservice.RoundSession, error)
	ListRoundsFunc       func(ctx context.Context) ([]roundservice.RoundSession, error)
	RecordScoreFunc      func(ctx context.Context, roundID, playerID string, hole, strokes int) (scoringdomain.Score, error)
	RecordHoleScoresFunc func(ctx context.Context, roundID string, hole int, strokes map[string]int) (map[string]int, error)
	GoToHoleFunc         func(ctx context.Context, roundID string, hole int) (roundservice.RoundSession, error)
	LeaderboardFunc      func(ctx context.Context, roundID string) (scoringdomain.RoundSummary, error)
	FinishRoundFunc      func(ctx context.Context, roundID string) (roundservice.FinishResult, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) StartRound(ctx context.Context, setup roundservice.RoundSetup) (roundservice.RoundSession, error) {
	f.record("StartRound")
	if f.StartRoundFunc != nil {
		return f.StartRoundFunc(ctx, setup)
	}
	return roundservice.RoundSession{}, nil
}

func (f *FakeService) GetRound(ctx context.Context, roundID string) (roundservice.RoundSession, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, roundID)
	}
	return roundservice.RoundSession{}, roundservice.ErrRoundNotFound
}

func (f *FakeService) ListRounds(ctx context.Context) ([]roundservice.RoundSession, error) {
	f.record("ListRounds")
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeService) RecordScore(ctx context.Context, roundID, playerID string, hole, strokes int) (scoringdomain.Score, error) {
	f.record("RecordScore")
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, roundID, playerID, hole, strokes)
	}
	return scoringdomain.Score{}, nil
}

func (f *FakeService) RecordHoleScores(ctx context.Context, roundID string, hole int, strokes map[string]int) (map[string]int, error) {
	f.record("RecordHoleScores")
	if f.RecordHoleScoresFunc != nil {
		return f.RecordHoleScoresFunc(ctx, roundID, hole, strokes)
	}
	return map[string]int{}, nil
}

func (f *FakeService) GoToHole(ctx context.Context, roundID string, hole int) (roundservice.RoundSession, error) {
	f.record("GoToHole")
	if f.GoToHoleFunc != nil {
		return f.GoToHoleFunc(ctx, roundID, hole)
	}
	return roundservice.RoundSession{}, nil
}

func (f *FakeService) Leaderboard(ctx context.Context, roundID string) (scoringdomain.RoundSummary, error) {
	f.record("Leaderboard")
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx, roundID)
	}
	return scoringdomain.RoundSummary{}, nil
}

func (f *FakeService) FinishRound(ctx context.Context, roundID string) (roundservice.FinishResult, error) {
	f.record("FinishRound")
	if f.FinishRoundFunc != nil {
		return f.FinishRoundFunc(ctx, roundID)
	}
	return roundservice.FinishResult{}, nil
}

var _ roundservice.Service = (*FakeService)(nil)
