package livehandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/golf-stableford/app/eventbus"
	livehub "github.com/Black-And-White-Club/golf-stableford/app/modules/live/hub"
	roundservice "github.com/Black-And-White-Club/golf-stableford/app/modules/round/application"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/httpx"
)

// LeaderboardSource recomputes a round's standings.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, roundID string) (scoringdomain.RoundSummary, error)
}

// LiveHandlers connects websocket clients and pushes round events to them.
type LiveHandlers struct {
	hub      *livehub.Hub
	source   LeaderboardSource
	upgrader *websocket.Upgrader
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewLiveHandlers creates a new LiveHandlers instance.
func NewLiveHandlers(hub *livehub.Hub, source LeaderboardSource, upgrader *websocket.Upgrader, logger *slog.Logger, tracer trace.Tracer) *LiveHandlers {
	return &LiveHandlers{hub: hub, source: source, upgrader: upgrader, logger: logger, tracer: tracer}
}

// Routes mounts the websocket endpoint on r.
func (h *LiveHandlers) Routes(r chi.Router) {
	r.Get("/{roundID}", h.HandleConnect)
}

// HandleConnect upgrades the request and sends the current leaderboard as the first frame.
func (h *LiveHandlers) HandleConnect(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LiveHandlers.HandleConnect")
	defer span.End()

	roundID := chi.URLParam(r, "roundID")
	summary, err := h.source.Leaderboard(ctx, roundID)
	if err != nil {
		if errors.Is(err, roundservice.ErrRoundNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load live leaderboard",
			attr.RoundID(roundID),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.WarnContext(ctx, "WebSocket upgrade failed", attr.RoundID(roundID), attr.Error(err))
		return
	}
	h.hub.Serve(conn, roundID, &livehub.Message{Type: livehub.TypeLeaderboard, Payload: summary})
}

// HandleScoreRecorded pushes the recomputed leaderboard to the round's clients.
func (h *LiveHandlers) HandleScoreRecorded(ctx context.Context, payload *eventbus.ScoreRecordedPayloadV1) error {
	if h.hub.Clients(payload.RoundID) == 0 {
		return nil
	}
	summary, err := h.source.Leaderboard(ctx, payload.RoundID)
	if err != nil {
		if errors.Is(err, roundservice.ErrRoundNotFound) {
			h.logger.WarnContext(ctx, "Score recorded for unknown round",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID(payload.RoundID),
			)
			return nil
		}
		return err
	}
	h.hub.Broadcast(payload.RoundID, livehub.Message{Type: livehub.TypeLeaderboard, Payload: summary})
	return nil
}

// HandleRoundCompleted tells the round's clients that the round has been archived.
func (h *LiveHandlers) HandleRoundCompleted(ctx context.Context, payload *eventbus.RoundCompletedPayloadV1) error {
	h.hub.Broadcast(payload.RoundID, livehub.Message{Type: livehub.TypeRoundCompleted, Payload: payload})
	h.logger.DebugContext(ctx, "Round completion pushed to live clients",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID(payload.RoundID),
		attr.Int("clients", h.hub.Clients(payload.RoundID)),
	)
	return nil
}
