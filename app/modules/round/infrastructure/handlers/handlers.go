package roundhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	roundservice "github.com/Black-And-White-Club/golf-stableford/app/modules/round/application"
	scorecardservice "github.com/Black-And-White-Club/golf-stableford/app/modules/scorecard/application"
	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/httpx"
)

// RoundHandlers serves the round session HTTP API.
type RoundHandlers struct {
	service       roundservice.Service
	logger        *slog.Logger
	tracer        trace.Tracer
	publicBaseURL string
}

// NewRoundHandlers creates a new RoundHandlers instance. publicBaseURL prefixes the
// share links encoded in round QR codes.
func NewRoundHandlers(service roundservice.Service, logger *slog.Logger, tracer trace.Tracer, publicBaseURL string) *RoundHandlers {
	return &RoundHandlers{service: service, logger: logger, tracer: tracer, publicBaseURL: publicBaseURL}
}

// Routes mounts the handlers on r.
func (h *RoundHandlers) Routes(r chi.Router) {
	r.Get("/", h.HandleListRounds)
	r.Post("/", h.HandleStartRound)
	r.Route("/{roundID}", func(r chi.Router) {
		r.Get("/", h.HandleGetRound)
		r.Get("/leaderboard", h.HandleLeaderboard)
		r.Get("/qr.png", h.HandleShareQR)
		r.Put("/holes/{hole}/scores", h.HandleRecordHoleScores)
		r.Put("/players/{playerID}/holes/{hole}", h.HandleRecordScore)
		r.Post("/current-hole", h.HandleGoToHole)
		r.Post("/finish", h.HandleFinishRound)
	})
}

// ShareURL is the public leaderboard link for a round.
func (h *RoundHandlers) ShareURL(roundID string) string {
	return h.publicBaseURL + "/api/rounds/" + roundID + "/leaderboard"
}

func (h *RoundHandlers) HandleStartRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleStartRound")
	defer span.End()

	var setup roundservice.RoundSetup
	if err := httpx.DecodeJSON(w, r, &setup); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := h.service.StartRound(ctx, setup)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/rounds/"+session.ID)
	httpx.WriteJSON(w, http.StatusCreated, session)
}

func (h *RoundHandlers) HandleListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleListRounds")
	defer span.End()

	rounds, err := h.service.ListRounds(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rounds)
}

func (h *RoundHandlers) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleGetRound")
	defer span.End()

	session, err := h.service.GetRound(ctx, chi.URLParam(r, "roundID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session)
}

func (h *RoundHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleLeaderboard")
	defer span.End()

	summary, err := h.service.Leaderboard(ctx, chi.URLParam(r, "roundID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}

// HoleScoresRequest is the body of a whole-hole entry, keyed by player id.
type HoleScoresRequest struct {
	Scores map[string]int `json:"scores"`
}

// HoleScoresResponse reports the points awarded per player.
type HoleScoresResponse struct {
	Hole   int            `json:"hole"`
	Points map[string]int `json:"points"`
}

func (h *RoundHandlers) HandleRecordHoleScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleRecordHoleScores")
	defer span.End()

	hole, err := httpx.IntParam(r, "hole")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req HoleScoresRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := h.service.RecordHoleScores(ctx, chi.URLParam(r, "roundID"), hole, req.Scores)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, HoleScoresResponse{Hole: hole, Points: points})
}

// ScoreRequest is the body of a single score entry.
type ScoreRequest struct {
	Strokes int `json:"strokes"`
}

func (h *RoundHandlers) HandleRecordScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleRecordScore")
	defer span.End()

	hole, err := httpx.IntParam(r, "hole")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req ScoreRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	score, err := h.service.RecordScore(ctx, chi.URLParam(r, "roundID"), chi.URLParam(r, "playerID"), hole, req.Strokes)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, score)
}

// GoToHoleRequest is the body of a navigation request.
type GoToHoleRequest struct {
	Hole int `json:"hole"`
}

func (h *RoundHandlers) HandleGoToHole(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleGoToHole")
	defer span.End()

	var req GoToHoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := h.service.GoToHole(ctx, chi.URLParam(r, "roundID"), req.Hole)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session)
}

func (h *RoundHandlers) HandleFinishRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleFinishRound")
	defer span.End()

	result, err := h.service.FinishRound(ctx, chi.URLParam(r, "roundID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/archive/"+result.ArchiveID)
	httpx.WriteJSON(w, http.StatusOK, result)
}

func (h *RoundHandlers) HandleShareQR(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleShareQR")
	defer span.End()

	roundID := chi.URLParam(r, "roundID")
	if _, err := h.service.GetRound(ctx, roundID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	png, err := scorecardservice.RenderQRCode(h.ShareURL(roundID))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *RoundHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roundservice.ErrRoundNotFound), errors.Is(err, roundservice.ErrPlayerNotInRound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, roundservice.ErrRoundCompleted):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, roundservice.ErrInvalidSetup),
		errors.Is(err, roundservice.ErrInvalidScore),
		errors.Is(err, roundservice.ErrHoleOutOfRange):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Round request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
