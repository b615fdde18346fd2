package archivedb

import (
	"time"

	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// SavedRound is a finished round with the summary computed when it was finished. The
// summary is authoritative and is never recomputed from the scores.
type SavedRound struct {
	ID          string                     `json:"id"`
	Round       scoringdomain.Round        `json:"round"`
	Summary     scoringdomain.RoundSummary `json:"summary"`
	CompletedAt time.Time                  `json:"completed_at"`
}
