package roundservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Black-And-White-Club/golf-stableford/app/eventbus"
	rounddb "github.com/Black-And-White-Club/golf-stableford/app/modules/round/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/telemetry"
	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

var testStart = time.Date(2026, 7, 4, 8, 30, 0, 0, time.UTC)

type testEnv struct {
	svc       *RoundService
	repo      rounddb.Repository
	archiver  *FakeArchiver
	publisher *FakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:      rounddb.NewRepository(kvstore.NewMemoryStore()),
		archiver:  &FakeArchiver{},
		publisher: &FakePublisher{},
	}
	env.svc = NewRoundService(env.repo, &FakeCourseLookup{}, env.archiver, env.publisher, telemetry.Instrumentation{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: observability.NoOpMetrics{},
		Tracer:  noop.NewTracerProvider().Tracer("test"),
	}, Options{})

	var mu sync.Mutex
	n := 0
	env.svc.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
	env.svc.now = func() time.Time { return testStart }
	return env
}

// start begins an 18-hole individual handicap round on Pine Valley, where hole n has
// stroke index n and holes 1-3 are par 5, 3, 4.
func (e *testEnv) start(t *testing.T, mode scoringdomain.GameMode, players ...PlayerSetup) RoundSession {
	t.Helper()
	session, err := e.svc.StartRound(context.Background(), RoundSetup{
		CourseID:    "pine-valley",
		Players:     players,
		Mode:        mode,
		RoundLength: 18,
	})
	require.NoError(t, err)
	return session
}

func TestStartRound(t *testing.T) {
	env := newTestEnv(t)
	session := env.start(t, scoringdomain.ModeIndividual,
		PlayerSetup{Name: "  Ann ", Handicap: 60},
		PlayerSetup{ID: "bob", Name: "Bob", Handicap: -3},
	)

	assert.Equal(t, "id-2", session.ID, "player ids are generated before the round id")
	assert.Equal(t, rounddb.StatusInProgress, session.Status)
	assert.Equal(t, 1, session.CurrentHole)
	assert.Equal(t, scoringdomain.VariantHandicap, session.Variant)
	assert.Equal(t, "pine-valley", session.Course.ID)
	assert.Equal(t, testStart, session.StartedAt)
	assert.Empty(t, session.Teams)
	assert.Equal(t, []scoringdomain.Player{
		{ID: "id-1", Name: "Ann", Handicap: 54},
		{ID: "bob", Name: "Bob", Handicap: 0},
	}, session.Players)

	stored, err := env.repo.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Round, stored.Round)

	assert.Equal(t, []string{eventbus.RoundStartedV1}, env.publisher.Topics())
	assert.Equal(t, eventbus.RoundStartedPayloadV1{RoundID: "id-2", CourseID: "pine-valley", Mode: "individual", Players: 2}, env.publisher.Last().Payload)
}

func TestStartRoundBetterballFormsTeams(t *testing.T) {
	env := newTestEnv(t)
	session := env.start(t, scoringdomain.ModeBetterball,
		PlayerSetup{ID: "a", Name: "A"}, PlayerSetup{ID: "b", Name: "B"},
		PlayerSetup{ID: "c", Name: "C"}, PlayerSetup{ID: "d", Name: "D"},
	)
	require.Len(t, session.Teams, 2)
	assert.Equal(t, "Team 1", session.Teams[0].Name)
	assert.Equal(t, "a", session.Teams[0].Players[0].ID)
	assert.Equal(t, "d", session.Teams[1].Players[1].ID)
}

func TestStartRoundValidation(t *testing.T) {
	ann := []PlayerSetup{{Name: "Ann"}}
	tests := []struct {
		name  string
		setup RoundSetup
	}{
		{name: "unknown mode", setup: RoundSetup{CourseID: "pine-valley", Players: ann, Mode: "skins", RoundLength: 18}},
		{name: "unknown variant", setup: RoundSetup{CourseID: "pine-valley", Players: ann, Mode: scoringdomain.ModeIndividual, RoundLength: 18, Variant: "net"}},
		{name: "no course", setup: RoundSetup{Players: ann, Mode: scoringdomain.ModeIndividual, RoundLength: 18}},
		{name: "unknown course", setup: RoundSetup{CourseID: "nowhere", Players: ann, Mode: scoringdomain.ModeIndividual, RoundLength: 18}},
		{name: "bad round length", setup: RoundSetup{CourseID: "pine-valley", Players: ann, Mode: scoringdomain.ModeIndividual, RoundLength: 12}},
		{name: "empty roster", setup: RoundSetup{CourseID: "pine-valley", Mode: scoringdomain.ModeIndividual, RoundLength: 9}},
		{name: "blank name", setup: RoundSetup{CourseID: "pine-valley", Players: []PlayerSetup{{Name: "  "}}, Mode: scoringdomain.ModeIndividual, RoundLength: 9}},
		{name: "duplicate ids", setup: RoundSetup{CourseID: "pine-valley", Players: []PlayerSetup{{ID: "x", Name: "A"}, {ID: "x", Name: "B"}}, Mode: scoringdomain.ModeIndividual, RoundLength: 9}},
		{name: "odd betterball", setup: RoundSetup{CourseID: "pine-valley", Players: []PlayerSetup{{Name: "A"}, {Name: "B"}, {Name: "C"}}, Mode: scoringdomain.ModeBetterball, RoundLength: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.svc.StartRound(context.Background(), tt.setup)
			assert.ErrorIs(t, err, ErrInvalidSetup)
			assert.Empty(t, env.publisher.Topics())
			rounds, listErr := env.svc.ListRounds(context.Background())
			require.NoError(t, listErr)
			assert.Empty(t, rounds)
		})
	}
}

func TestStartRoundCourseLookupFailure(t *testing.T) {
	env := newTestEnv(t)
	env.svc.courses = &FakeCourseLookup{GetCourseFunc: func(ctx context.Context, id string) (scoringdomain.Course, error) {
		return scoringdomain.Course{}, errors.New("store offline")
	}}
	_, err := env.svc.StartRound(context.Background(), RoundSetup{
		CourseID: "pine-valley", Players: []PlayerSetup{{Name: "Ann"}}, Mode: scoringdomain.ModeIndividual, RoundLength: 18,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSetup)
}

func TestRecordScore(t *testing.T) {
	env := newTestEnv(t)
	session := env.start(t, scoringdomain.ModeIndividual,
		PlayerSetup{ID: "scratch", Name: "Scratch", Handicap: 0},
		PlayerSetup{ID: "eighteen", Name: "Eighteen", Handicap: 18},
		PlayerSetup{ID: "twenty", Name: "Twenty", Handicap: 20},
	)
	ctx := context.Background()

	// Hole 1: par 5, stroke index 1. A five is par gross, one under net for 18 and
	// two under net for 20.
	for id, want := range map[string]int{"scratch": 2, "eighteen": 3, "twenty": 4} {
		score, err := env.svc.RecordScore(ctx, session.ID, id, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, want, score.Points, id)
	}

	// Overwrite replaces the earlier entry.
	score, err := env.svc.RecordScore(ctx, session.ID, "scratch", 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, score.Points)

	stored, err := env.svc.GetRound(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Scores, 3)

	event := env.publisher.Last()
	assert.Equal(t, eventbus.RoundScoreRecordedV1, event.Topic)
	assert.Equal(t, eventbus.ScoreRecordedPayloadV1{RoundID: session.ID, PlayerID: "scratch", HoleNumber: 1, Strokes: 8, Points: 0}, event.Payload)
}

func TestRecordScoreGrossVariant(t *testing.T) {
	env := newTestEnv(t)
	session, err := env.svc.StartRound(context.Background(), RoundSetup{
		CourseID:    "pine-valley",
		Players:     []PlayerSetup{{ID: "p", Name: "P", Handicap: 18}},
		Mode:        scoringdomain.ModeIndividual,
		RoundLength: 9,
		Variant:     scoringdomain.VariantGross,
	})
	require.NoError(t, err)

	score, err := env.svc.RecordScore(context.Background(), session.ID, "p", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, score.Points)
}

func TestRecordScoreRejections(t *testing.T) {
	env := newTestEnv(t)
	session, err := env.svc.StartRound(context.Background(), RoundSetup{
		CourseID: "pine-valley", Players: []PlayerSetup{{ID: "p", Name: "P"}}, Mode: scoringdomain.ModeIndividual, RoundLength: 9,
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		roundID  string
		playerID string
		hole     int
		strokes  int
		wantErrs []error
	}{
		{name: "unknown round", roundID: "nope", playerID: "p", hole: 1, strokes: 4, wantErrs: []error{ErrRoundNotFound}},
		{name: "hole zero", playerID: "p", hole: 0, strokes: 4, wantErrs: []error{ErrInvalidScore, ErrHoleOutOfRange}},
		{name: "beyond round length", playerID: "p", hole: 10, strokes: 4, wantErrs: []error{ErrInvalidScore, ErrHoleOutOfRange}},
		{name: "unknown player", playerID: "q", hole: 1, strokes: 4, wantErrs: []error{ErrInvalidScore, ErrPlayerNotInRound}},
		{name: "zero strokes", playerID: "p", hole: 1, strokes: 0, wantErrs: []error{ErrInvalidScore, scoringdomain.ErrInvalidStrokes}},
		{name: "too many strokes", playerID: "p", hole: 1, strokes: DefaultMaxStrokes + 1, wantErrs: []error{ErrInvalidScore, scoringdomain.ErrInvalidStrokes}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundID := tt.roundID
			if roundID == "" {
				roundID = session.ID
			}
			_, err := env.svc.RecordScore(context.Background(), roundID, tt.playerID, tt.hole, tt.strokes)
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}

	stored, err := env.svc.GetRound(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Scores)
}

func TestRecordHoleScores(t *testing.T) {
	env := newTestEnv(t)
	session, err := env.svc.StartRound(context.Background(), RoundSetup{
		CourseID:    "pine-valley",
		Players:     []PlayerSetup{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}},
		Mode:        scoringdomain.ModeIndividual,
		RoundLength: 9,
	})
	require.NoError(t, err)
	ctx := context.Background()

	// Hole 2 is a par 3.
	points, err := env.svc.RecordHoleScores(ctx, session.ID, 2, map[string]int{"a": 2, "b": 4, "c": 0})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 3, "b": 1}, points)

	round, err := env.svc.GetRound(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, round.CurrentHole)
	assert.Len(t, round.Scores, 2)

	// The last hole does not advance past the round.
	_, err = env.svc.RecordHoleScores(ctx, session.ID, 9, map[string]int{"a": 4})
	require.NoError(t, err)
	round, err = env.svc.GetRound(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, round.CurrentHole)

	// One bad entry rejects the whole hole.
	_, err = env.svc.RecordHoleScores(ctx, session.ID, 4, map[string]int{"a": 4, "b": -1})
	assert.ErrorIs(t, err, ErrInvalidScore)
	_, err = env.svc.RecordHoleScores(ctx, session.ID, 4, map[string]int{"a": 4, "zed": 4})
	assert.ErrorIs(t, err, ErrPlayerNotInRound)
	_, err = env.svc.RecordHoleScores(ctx, session.ID, 10, map[string]int{"a": 4})
	assert.ErrorIs(t, err, ErrHoleOutOfRange)

	round, err = env.svc.GetRound(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, round.Scores, 3)
	assert.Equal(t, 9, round.CurrentHole)
}

func TestGoToHole(t *testing.T) {
	env := newTestEnv(t)
	session := env.start(t, scoringdomain.ModeIndividual, PlayerSetup{Name: "Ann"})

	moved, err := env.svc.GoToHole(context.Background(), session.ID, 18)
	require.NoError(t, err)
	assert.Equal(t, 18, moved.CurrentHole)

	_, err = env.svc.GoToHole(context.Background(), session.ID, 19)
	assert.ErrorIs(t, err, ErrHoleOutOfRange)
	_, err = env.svc.GoToHole(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestLeaderboardAndFinish(t *testing.T) {
	env := newTestEnv(t)
	session := env.start(t, scoringdomain.ModeBetterball,
		PlayerSetup{ID: "a", Name: "A"}, PlayerSetup{ID: "b", Name: "B"},
		PlayerSetup{ID: "c", Name: "C"}, PlayerSetup{ID: "d", Name: "D"},
	)
	ctx := context.Background()

	// Hole 1 par 5: a birdies, b doubles, c and d par.
	_, err := env.svc.RecordHoleScores(ctx, session.ID, 1, map[string]int{"a": 4, "b": 7, "c": 5, "d": 5})
	require.NoError(t, err)

	board, err := env.svc.Leaderboard(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", board.Winner)
	assert.Equal(t, "Team 1", board.WinningTeam)
	assert.Equal(t, 3, board.Teams[0].TotalPoints)
	assert.True(t, board.CompletedAt.IsZero())

	env.svc.now = func() time.Time { return testStart.Add(4 * time.Hour) }
	result, err := env.svc.FinishRound(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "archive-1", result.ArchiveID)
	assert.Equal(t, testStart.Add(4*time.Hour), result.Summary.CompletedAt)
	assert.Equal(t, []scoringdomain.RoundSummary{result.Summary}, env.archiver.Archived())

	event := env.publisher.Last()
	assert.Equal(t, eventbus.RoundCompletedV1, event.Topic)
	assert.Equal(t, eventbus.RoundCompletedPayloadV1{
		RoundID:     session.ID,
		ArchiveID:   "archive-1",
		Winner:      "A",
		WinningTeam: "Team 1",
		CompletedAt: testStart.Add(4 * time.Hour),
	}, event.Payload)

	closed, err := env.svc.GetRound(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, rounddb.StatusCompleted, closed.Status)
	assert.Equal(t, "archive-1", closed.ArchiveID)

	_, err = env.svc.RecordScore(ctx, session.ID, "a", 2, 3)
	assert.ErrorIs(t, err, ErrRoundCompleted)
	_, err = env.svc.FinishRound(ctx, session.ID)
	assert.ErrorIs(t, err, ErrRoundCompleted)
	assert.Len(t, env.archiver.Archived(), 1)
}

func TestFinishRoundArchiveFailureKeepsRoundOpen(t *testing.T) {
	env := newTestEnv(t)
	session := env.start(t, scoringdomain.ModeIndividual, PlayerSetup{Name: "Ann"})
	env.archiver.ArchiveFunc = func(ctx context.Context, round scoringdomain.Round, summary scoringdomain.RoundSummary) (string, error) {
		return "", errors.New("archive store offline")
	}

	_, err := env.svc.FinishRound(context.Background(), session.ID)
	require.Error(t, err)

	still, err := env.svc.GetRound(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, rounddb.StatusInProgress, still.Status)
}

func TestPublishFailureDoesNotFailScore(t *testing.T) {
	env := newTestEnv(t)
	session := env.start(t, scoringdomain.ModeIndividual, PlayerSetup{ID: "p", Name: "P"})
	env.publisher.PublishEventFunc = func(ctx context.Context, topic string, payload any) error {
		return errors.New("nats down")
	}
	_, err := env.svc.RecordScore(context.Background(), session.ID, "p", 1, 5)
	assert.NoError(t, err)
}

func TestListRounds(t *testing.T) {
	env := newTestEnv(t)
	first := env.start(t, scoringdomain.ModeIndividual, PlayerSetup{Name: "Ann"})
	env.svc.now = func() time.Time { return testStart.Add(time.Hour) }
	second := env.start(t, scoringdomain.ModeIndividual, PlayerSetup{Name: "Bob"})
	env.svc.now = func() time.Time { return testStart.Add(2 * time.Hour) }
	finished := env.start(t, scoringdomain.ModeIndividual, PlayerSetup{Name: "Cy"})
	_, err := env.svc.FinishRound(context.Background(), finished.ID)
	require.NoError(t, err)

	rounds, err := env.svc.ListRounds(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, second.ID, rounds[0].ID)
	assert.Equal(t, first.ID, rounds[1].ID)
}

func TestConcurrentScoresOnOneRoundAreNotLost(t *testing.T) {
	env := newTestEnv(t)
	players := []PlayerSetup{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}, {ID: "d", Name: "D"}}
	session := env.start(t, scoringdomain.ModeIndividual, players...)

	var wg sync.WaitGroup
	for _, p := range players {
		for hole := 1; hole <= 18; hole++ {
			wg.Add(1)
			go func(playerID string, hole int) {
				defer wg.Done()
				_, err := env.svc.RecordScore(context.Background(), session.ID, playerID, hole, 4)
				assert.NoError(t, err)
			}(p.ID, hole)
		}
	}
	wg.Wait()

	board, err := env.svc.Leaderboard(context.Background(), session.ID)
	require.NoError(t, err)
	for _, ps := range board.Players {
		assert.Equal(t, 18, ps.HolesPlayed, ps.Player.Name)
		assert.Equal(t, 72, ps.TotalStrokes, ps.Player.Name)
	}
	assert.Equal(t, 0, env.svc.locks.size())
}
