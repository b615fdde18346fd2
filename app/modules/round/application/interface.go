package roundservice

import (
	"context"
	"time"

	rounddb "github.com/Black-And-White-Club/golf-stableford/app/modules/round/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// Service runs round sessions from setup to archive.
type Service interface {
	StartRound(ctx context.Context, setup RoundSetup) (RoundSession, error)
	GetRound(ctx context.Context, roundID string) (RoundSession, error)
	// ListRounds returns the rounds still in progress, most recently started first.
	ListRounds(ctx context.Context) ([]RoundSession, error)
	// RecordScore records or overwrites one player's strokes on one hole.
	RecordScore(ctx context.Context, roundID, playerID string, hole, strokes int) (scoringdomain.Score, error)
	// RecordHoleScores records a hole for several players and advances the current hole.
	// Entries with zero strokes are treated as not entered. The result maps player id to points.
	RecordHoleScores(ctx context.Context, roundID string, hole int, strokes map[string]int) (map[string]int, error)
	GoToHole(ctx context.Context, roundID string, hole int) (RoundSession, error)
	// Leaderboard recomputes the standings from every recorded score.
	Leaderboard(ctx context.Context, roundID string) (scoringdomain.RoundSummary, error)
	// FinishRound freezes the summary, archives the round and closes the session.
	FinishRound(ctx context.Context, roundID string) (FinishResult, error)
}

// CourseLookup resolves course ids at setup.
type CourseLookup interface {
	GetCourse(ctx context.Context, id string) (scoringdomain.Course, error)
}

// Archiver stores finished rounds.
type Archiver interface {
	Archive(ctx context.Context, round scoringdomain.Round, summary scoringdomain.RoundSummary) (string, error)
}

// EventPublisher publishes round events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, payload any) error
}

// PlayerSetup is a roster entry. ID is generated when empty.
type PlayerSetup struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string `json:"name" yaml:"name"`
	Handicap int    `json:"handicap" yaml:"handicap"`
}

// RoundSetup describes a round to start. Variant defaults to the configured variant.
type RoundSetup struct {
	CourseID    string                      `json:"course_id"`
	Players     []PlayerSetup               `json:"players"`
	Mode        scoringdomain.GameMode      `json:"mode"`
	RoundLength int                         `json:"round_length"`
	Variant     scoringdomain.PointsVariant `json:"variant,omitempty"`
}

// RoundSession is a round with its lifecycle state.
type RoundSession struct {
	scoringdomain.Round
	Status    rounddb.Status `json:"status"`
	ArchiveID string         `json:"archive_id,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// FinishResult is returned by FinishRound.
type FinishResult struct {
	ArchiveID string                     `json:"archive_id"`
	Summary   scoringdomain.RoundSummary `json:"summary"`
}

// Options carries the configured scoring defaults.
type Options struct {
	DefaultVariant scoringdomain.PointsVariant
	MaxHandicap    int
	MaxStrokes     int
}
