package archiveservice

import (
	"context"

	archivedb "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// Service manages finished rounds.
type Service interface {
	// Archive stores a finished round with its summary and returns the archive id.
	Archive(ctx context.Context, round scoringdomain.Round, summary scoringdomain.RoundSummary) (string, error)
	GetArchive(ctx context.Context, id string) (archivedb.SavedRound, error)
	// ListArchives returns saved rounds newest first. since may be empty, a date
	// (2006-01-02 or RFC 3339) or a phrase such as "yesterday" or "3 days ago".
	ListArchives(ctx context.Context, since string) ([]archivedb.SavedRound, error)
	DeleteArchive(ctx context.Context, id string) error
}
