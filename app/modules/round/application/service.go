package roundservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Black-And-White-Club/golf-stableford/app/eventbus"
	courseservice "github.com/Black-And-White-Club/golf-stableford/app/modules/course/application"
	rounddb "github.com/Black-And-White-Club/golf-stableford/app/modules/round/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/results"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/telemetry"
)

// DefaultMaxStrokes caps a single hole score when no limit is configured.
const DefaultMaxStrokes = 15

// RoundService implements the Service interface.
type RoundService struct {
	repo      rounddb.Repository
	courses   CourseLookup
	archiver  Archiver
	publisher EventPublisher
	inst      telemetry.Instrumentation
	opts      Options
	locks     *roundLocks
	now       func() time.Time
	newID     func() string
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	repo rounddb.Repository,
	courses CourseLookup,
	archiver Archiver,
	publisher EventPublisher,
	inst telemetry.Instrumentation,
	opts Options,
) *RoundService {
	inst.Service = "RoundService"
	if inst.Logger == nil {
		inst.Logger = slog.Default()
	}
	if inst.Metrics == nil {
		inst.Metrics = observability.NoOpMetrics{}
	}
	if !opts.DefaultVariant.Valid() {
		opts.DefaultVariant = scoringdomain.VariantHandicap
	}
	if opts.MaxHandicap <= 0 || opts.MaxHandicap > scoringdomain.MaxHandicap {
		opts.MaxHandicap = scoringdomain.MaxHandicap
	}
	if opts.MaxStrokes <= 0 {
		opts.MaxStrokes = DefaultMaxStrokes
	}
	return &RoundService{
		repo:      repo,
		courses:   courses,
		archiver:  archiver,
		publisher: publisher,
		inst:      inst,
		opts:      opts,
		locks:     newRoundLocks(),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

type sessionResult = results.OperationResult[RoundSession, error]

func toSession(s *rounddb.Session) RoundSession {
	return RoundSession{
		Round:     s.Round,
		Status:    s.Status,
		ArchiveID: s.ArchiveID,
		UpdatedAt: s.UpdatedAt,
	}
}

var domainErrors = []error{
	ErrRoundNotFound,
	ErrRoundCompleted,
	ErrInvalidSetup,
	ErrInvalidScore,
	ErrPlayerNotInRound,
	ErrHoleOutOfRange,
}

// failOrError turns domain errors into failure results and passes infrastructure
// errors through.
func failOrError[S any](err error) (results.OperationResult[S, error], error) {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return results.FailureResult[S, error](err), nil
		}
	}
	return results.OperationResult[S, error]{}, err
}

func (s *RoundService) load(ctx context.Context, roundID string) (*rounddb.Session, error) {
	session, err := s.repo.Get(ctx, roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
		}
		return nil, err
	}
	return session, nil
}

func (s *RoundService) loadActive(ctx context.Context, roundID string) (*rounddb.Session, error) {
	session, err := s.load(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if session.Status != rounddb.StatusInProgress {
		return nil, fmt.Errorf("%w: %s", ErrRoundCompleted, roundID)
	}
	return session, nil
}

// publish logs failures instead of returning them; the state change is already stored.
func (s *RoundService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, topic, payload); err != nil {
		s.inst.Logger.WarnContext(ctx, "Failed to publish round event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// StartRound validates the setup and creates a session on hole 1.
func (s *RoundService) StartRound(ctx context.Context, setup RoundSetup) (RoundSession, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "StartRound", setup.CourseID, func(ctx context.Context) (sessionResult, error) {
		return s.startRoundLogic(ctx, setup)
	})
	return telemetry.Unwrap(result, err)
}

func (s *RoundService) startRoundLogic(ctx context.Context, setup RoundSetup) (sessionResult, error) {
	invalid := func(err error) (sessionResult, error) {
		return results.FailureResult[RoundSession, error](fmt.Errorf("%w: %w", ErrInvalidSetup, err)), nil
	}

	if err := scoringdomain.ValidateMode(setup.Mode); err != nil {
		return invalid(err)
	}
	variant := setup.Variant
	if variant == "" {
		variant = s.opts.DefaultVariant
	}
	if !variant.Valid() {
		return invalid(fmt.Errorf("%w: %q", scoringdomain.ErrInvalidVariant, variant))
	}
	if strings.TrimSpace(setup.CourseID) == "" {
		return invalid(errors.New("course id is required"))
	}

	course, err := s.courses.GetCourse(ctx, setup.CourseID)
	if err != nil {
		if errors.Is(err, courseservice.ErrCourseNotFound) {
			return invalid(err)
		}
		return sessionResult{}, err
	}
	if err := scoringdomain.ValidateCourse(course); err != nil {
		return invalid(err)
	}
	if err := scoringdomain.ValidateRoundLength(setup.RoundLength, course); err != nil {
		return invalid(err)
	}

	players := make([]scoringdomain.Player, 0, len(setup.Players))
	for _, p := range setup.Players {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = s.newID()
		}
		players = append(players, scoringdomain.Player{
			ID:       id,
			Name:     strings.TrimSpace(p.Name),
			Handicap: scoringdomain.NormalizeHandicap(p.Handicap, s.opts.MaxHandicap),
		})
	}
	if err := scoringdomain.ValidateRoster(players, setup.Mode); err != nil {
		return invalid(err)
	}

	var teams []scoringdomain.Team
	if setup.Mode == scoringdomain.ModeBetterball {
		if teams, err = scoringdomain.FormTeams(players); err != nil {
			return invalid(err)
		}
	}

	session := &rounddb.Session{
		Round: scoringdomain.Round{
			ID:          s.newID(),
			Course:      course,
			Players:     players,
			Teams:       teams,
			Mode:        setup.Mode,
			Variant:     variant,
			RoundLength: setup.RoundLength,
			Scores:      []scoringdomain.Score{},
			CurrentHole: 1,
			StartedAt:   s.now().UTC(),
		},
		Status: rounddb.StatusInProgress,
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return sessionResult{}, err
	}

	s.inst.Metrics.RecordRoundStarted(ctx, string(setup.Mode))
	s.publish(ctx, eventbus.RoundStartedV1, eventbus.RoundStartedPayloadV1{
		RoundID:  session.Round.ID,
		CourseID: course.ID,
		Mode:     string(setup.Mode),
		Players:  len(players),
	})
	return results.SuccessResult[RoundSession, error](toSession(session)), nil
}

func (s *RoundService) GetRound(ctx context.Context, roundID string) (RoundSession, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "GetRound", roundID, func(ctx context.Context) (sessionResult, error) {
		session, err := s.load(ctx, roundID)
		if err != nil {
			return failOrError[RoundSession](err)
		}
		return results.SuccessResult[RoundSession, error](toSession(session)), nil
	})
	return telemetry.Unwrap(result, err)
}

func (s *RoundService) ListRounds(ctx context.Context) ([]RoundSession, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "ListRounds", "", func(ctx context.Context) (results.OperationResult[[]RoundSession, error], error) {
		stored, err := s.repo.List(ctx)
		if err != nil {
			return results.OperationResult[[]RoundSession, error]{}, err
		}
		active := make([]RoundSession, 0, len(stored))
		for i := range stored {
			if stored[i].Status == rounddb.StatusInProgress {
				active = append(active, toSession(&stored[i]))
			}
		}
		slices.SortStableFunc(active, func(a, b RoundSession) int {
			return b.StartedAt.Compare(a.StartedAt)
		})
		return results.SuccessResult[[]RoundSession, error](active), nil
	})
	return telemetry.Unwrap(result, err)
}

// scoreFor validates an entry against the round and computes its points.
func (s *RoundService) scoreFor(round scoringdomain.Round, playerID string, holeNumber, strokes int) (scoringdomain.Score, error) {
	if holeNumber < 1 || holeNumber > round.RoundLength {
		return scoringdomain.Score{}, fmt.Errorf("%w: %w: %d not in 1..%d", ErrInvalidScore, ErrHoleOutOfRange, holeNumber, round.RoundLength)
	}
	hole, ok := round.Course.Hole(holeNumber)
	if !ok {
		return scoringdomain.Score{}, fmt.Errorf("%w: %w: course has no hole %d", ErrInvalidScore, ErrHoleOutOfRange, holeNumber)
	}
	player, ok := round.Player(playerID)
	if !ok {
		return scoringdomain.Score{}, fmt.Errorf("%w: %w: %s", ErrInvalidScore, ErrPlayerNotInRound, playerID)
	}
	if err := scoringdomain.ValidateStrokes(strokes); err != nil {
		return scoringdomain.Score{}, fmt.Errorf("%w: %w", ErrInvalidScore, err)
	}
	if strokes > s.opts.MaxStrokes {
		return scoringdomain.Score{}, fmt.Errorf("%w: %w: %d exceeds the maximum of %d", ErrInvalidScore, scoringdomain.ErrInvalidStrokes, strokes, s.opts.MaxStrokes)
	}

	return scoringdomain.Score{
		PlayerID:   player.ID,
		HoleNumber: holeNumber,
		Strokes:    strokes,
		Points:     round.Variant.Points(strokes, hole.Par, player.Handicap, hole.StrokeIndex, round.Course.HoleCount()),
	}, nil
}

func (s *RoundService) recorded(ctx context.Context, round scoringdomain.Round, score scoringdomain.Score) {
	s.inst.Metrics.RecordScoreRecorded(ctx, string(round.Variant), score.Points)
	s.publish(ctx, eventbus.RoundScoreRecordedV1, eventbus.ScoreRecordedPayloadV1{
		RoundID:    round.ID,
		PlayerID:   score.PlayerID,
		HoleNumber: score.HoleNumber,
		Strokes:    score.Strokes,
		Points:     score.Points,
	})
}

func (s *RoundService) RecordScore(ctx context.Context, roundID, playerID string, hole, strokes int) (scoringdomain.Score, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "RecordScore", roundID, func(ctx context.Context) (results.OperationResult[scoringdomain.Score, error], error) {
		unlock := s.locks.lock(roundID)
		defer unlock()

		session, err := s.loadActive(ctx, roundID)
		if err != nil {
			return failOrError[scoringdomain.Score](err)
		}
		score, err := s.scoreFor(session.Round, playerID, hole, strokes)
		if err != nil {
			return failOrError[scoringdomain.Score](err)
		}

		session.Round.Scores = scoringdomain.UpsertScore(session.Round.Scores, score)
		if err := s.repo.Save(ctx, session); err != nil {
			return results.OperationResult[scoringdomain.Score, error]{}, err
		}
		s.recorded(ctx, session.Round, score)
		return results.SuccessResult[scoringdomain.Score, error](score), nil
	})
	return telemetry.Unwrap(result, err)
}

func (s *RoundService) RecordHoleScores(ctx context.Context, roundID string, hole int, strokes map[string]int) (map[string]int, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "RecordHoleScores", roundID, func(ctx context.Context) (results.OperationResult[map[string]int, error], error) {
		unlock := s.locks.lock(roundID)
		defer unlock()

		session, err := s.loadActive(ctx, roundID)
		if err != nil {
			return failOrError[map[string]int](err)
		}
		round := session.Round
		if hole < 1 || hole > round.RoundLength {
			return failOrError[map[string]int](fmt.Errorf("%w: %w: %d not in 1..%d", ErrInvalidScore, ErrHoleOutOfRange, hole, round.RoundLength))
		}
		for playerID := range strokes {
			if _, ok := round.Player(playerID); !ok {
				return failOrError[map[string]int](fmt.Errorf("%w: %w: %s", ErrInvalidScore, ErrPlayerNotInRound, playerID))
			}
		}

		// Validate every entry before applying any, in roster order.
		accepted := make([]scoringdomain.Score, 0, len(strokes))
		for _, p := range round.Players {
			n, ok := strokes[p.ID]
			if !ok || n == 0 {
				continue
			}
			score, err := s.scoreFor(round, p.ID, hole, n)
			if err != nil {
				return failOrError[map[string]int](err)
			}
			accepted = append(accepted, score)
		}

		points := make(map[string]int, len(accepted))
		for _, score := range accepted {
			session.Round.Scores = scoringdomain.UpsertScore(session.Round.Scores, score)
			points[score.PlayerID] = score.Points
		}
		session.Round.CurrentHole = min(hole+1, round.RoundLength)
		if err := s.repo.Save(ctx, session); err != nil {
			return results.OperationResult[map[string]int, error]{}, err
		}
		for _, score := range accepted {
			s.recorded(ctx, session.Round, score)
		}
		return results.SuccessResult[map[string]int, error](points), nil
	})
	return telemetry.Unwrap(result, err)
}

func (s *RoundService) GoToHole(ctx context.Context, roundID string, hole int) (RoundSession, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "GoToHole", roundID, func(ctx context.Context) (sessionResult, error) {
		unlock := s.locks.lock(roundID)
		defer unlock()

		session, err := s.loadActive(ctx, roundID)
		if err != nil {
			return failOrError[RoundSession](err)
		}
		if hole < 1 || hole > session.Round.RoundLength {
			return failOrError[RoundSession](fmt.Errorf("%w: %d not in 1..%d", ErrHoleOutOfRange, hole, session.Round.RoundLength))
		}
		session.Round.CurrentHole = hole
		if err := s.repo.Save(ctx, session); err != nil {
			return sessionResult{}, err
		}
		return results.SuccessResult[RoundSession, error](toSession(session)), nil
	})
	return telemetry.Unwrap(result, err)
}

func (s *RoundService) Leaderboard(ctx context.Context, roundID string) (scoringdomain.RoundSummary, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "Leaderboard", roundID, func(ctx context.Context) (results.OperationResult[scoringdomain.RoundSummary, error], error) {
		session, err := s.load(ctx, roundID)
		if err != nil {
			return failOrError[scoringdomain.RoundSummary](err)
		}
		return results.SuccessResult[scoringdomain.RoundSummary, error](scoringdomain.BuildRoundSummary(session.Round, time.Time{})), nil
	})
	return telemetry.Unwrap(result, err)
}

func (s *RoundService) FinishRound(ctx context.Context, roundID string) (FinishResult, error) {
	result, err := telemetry.WithTelemetry(s.inst, ctx, "FinishRound", roundID, func(ctx context.Context) (results.OperationResult[FinishResult, error], error) {
		unlock := s.locks.lock(roundID)
		defer unlock()

		session, err := s.loadActive(ctx, roundID)
		if err != nil {
			return failOrError[FinishResult](err)
		}

		summary := scoringdomain.BuildRoundSummary(session.Round, s.now().UTC())
		archiveID, err := s.archiver.Archive(ctx, session.Round, summary)
		if err != nil {
			return results.OperationResult[FinishResult, error]{}, fmt.Errorf("failed to archive round: %w", err)
		}

		session.Status = rounddb.StatusCompleted
		session.ArchiveID = archiveID
		if err := s.repo.Save(ctx, session); err != nil {
			s.inst.Logger.ErrorContext(ctx, "Round archived but session not closed",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID(roundID),
				attr.String("archive_id", archiveID),
				attr.Error(err),
			)
			return results.OperationResult[FinishResult, error]{}, err
		}

		s.publish(ctx, eventbus.RoundCompletedV1, eventbus.RoundCompletedPayloadV1{
			RoundID:     roundID,
			ArchiveID:   archiveID,
			Winner:      summary.Winner,
			WinningTeam: summary.WinningTeam,
			CompletedAt: summary.CompletedAt,
		})
		return results.SuccessResult[FinishResult, error](FinishResult{ArchiveID: archiveID, Summary: summary}), nil
	})
	return telemetry.Unwrap(result, err)
}
