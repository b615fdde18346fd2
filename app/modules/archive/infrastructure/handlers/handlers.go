package archivehandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/golf-stableford/app/eventbus"
	archiveservice "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/application"
	archivedb "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/httpx"
)

// ArchiveHandlers serves the archive HTTP API and consumes round completion events.
type ArchiveHandlers struct {
	service archiveservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics observability.Metrics
}

// NewArchiveHandlers creates a new ArchiveHandlers instance.
func NewArchiveHandlers(service archiveservice.Service, logger *slog.Logger, tracer trace.Tracer, metrics observability.Metrics) *ArchiveHandlers {
	return &ArchiveHandlers{service: service, logger: logger, tracer: tracer, metrics: metrics}
}

// Routes mounts the handlers on r. Paths are flat so that scorecard routes can share
// the same /{archiveID} prefix.
func (h *ArchiveHandlers) Routes(r chi.Router) {
	r.Get("/", h.HandleListArchives)
	r.Get("/{archiveID}", h.HandleGetArchive)
	r.Delete("/{archiveID}", h.HandleDeleteArchive)
}

// ArchiveEntry is the list view of a saved round.
type ArchiveEntry struct {
	ID          string                 `json:"id"`
	RoundID     string                 `json:"round_id"`
	CourseName  string                 `json:"course_name"`
	Mode        scoringdomain.GameMode `json:"mode"`
	Players     int                    `json:"players"`
	Winner      string                 `json:"winner"`
	WinningTeam string                 `json:"winning_team,omitempty"`
	CompletedAt time.Time              `json:"completed_at"`
}

func toEntry(saved archivedb.SavedRound) ArchiveEntry {
	return ArchiveEntry{
		ID:          saved.ID,
		RoundID:     saved.Summary.RoundID,
		CourseName:  saved.Summary.CourseName,
		Mode:        saved.Summary.Mode,
		Players:     len(saved.Summary.Players),
		Winner:      saved.Summary.Winner,
		WinningTeam: saved.Summary.WinningTeam,
		CompletedAt: saved.CompletedAt,
	}
}

func (h *ArchiveHandlers) HandleListArchives(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ArchiveHandlers.HandleListArchives")
	defer span.End()

	list, err := h.service.ListArchives(ctx, r.URL.Query().Get("since"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	out := make([]ArchiveEntry, 0, len(list))
	for _, saved := range list {
		out = append(out, toEntry(saved))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ArchiveHandlers) HandleGetArchive(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ArchiveHandlers.HandleGetArchive")
	defer span.End()

	saved, err := h.service.GetArchive(ctx, chi.URLParam(r, "archiveID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, saved)
}

func (h *ArchiveHandlers) HandleDeleteArchive(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ArchiveHandlers.HandleDeleteArchive")
	defer span.End()

	if err := h.service.DeleteArchive(ctx, chi.URLParam(r, "archiveID")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRoundCompleted records a finished round in logs and metrics. Archival itself
// happens synchronously when the round is finished.
func (h *ArchiveHandlers) HandleRoundCompleted(ctx context.Context, payload *eventbus.RoundCompletedPayloadV1) error {
	saved, err := h.service.GetArchive(ctx, payload.ArchiveID)
	if err != nil {
		if errors.Is(err, archiveservice.ErrArchiveNotFound) {
			h.logger.WarnContext(ctx, "Completed round has no archive entry",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID(payload.RoundID),
				attr.String("archive_id", payload.ArchiveID),
			)
			return nil
		}
		return err
	}

	h.metrics.RecordRoundCompleted(ctx, string(saved.Summary.Mode))
	h.logger.InfoContext(ctx, "Round completed",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID(payload.RoundID),
		attr.String("archive_id", saved.ID),
		attr.String("course", saved.Summary.CourseName),
		attr.String("winner", saved.Summary.Winner),
		attr.Int("players", len(saved.Summary.Players)),
	)
	return nil
}

func (h *ArchiveHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, archiveservice.ErrArchiveNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, archiveservice.ErrInvalidSince):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Archive request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
