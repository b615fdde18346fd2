package rounddb

import (
	"time"

	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Session is the stored form of a round in play. The round carries its own copy of the
// course so later course edits do not change scoring.
type Session struct {
	Round     scoringdomain.Round `json:"round"`
	Status    Status              `json:"status"`
	ArchiveID string              `json:"archive_id,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ID returns the round id.
func (s Session) ID() string {
	return s.Round.ID
}
