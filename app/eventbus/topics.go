package eventbus

import "time"

// Topics.
const (
	RoundStartedV1       = "round.started.v1"
	RoundScoreRecordedV1 = "round.score.recorded.v1"
	RoundCompletedV1     = "round.completed.v1"
)

// RoundStartedPayloadV1 is published when a round session is created.
type RoundStartedPayloadV1 struct {
	RoundID  string `json:"round_id"`
	CourseID string `json:"course_id"`
	Mode     string `json:"mode"`
	Players  int    `json:"players"`
}

// ScoreRecordedPayloadV1 is published for every accepted score, including overwrites.
type ScoreRecordedPayloadV1 struct {
	RoundID    string `json:"round_id"`
	PlayerID   string `json:"player_id"`
	HoleNumber int    `json:"hole_number"`
	Strokes    int    `json:"strokes"`
	Points     int    `json:"points"`
}

// RoundCompletedPayloadV1 is published after a round has been archived.
type RoundCompletedPayloadV1 struct {
	RoundID     string    `json:"round_id"`
	ArchiveID   string    `json:"archive_id"`
	Winner      string    `json:"winner"`
	WinningTeam string    `json:"winning_team,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
