package scorecardhandlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	archiveservice "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/application"
	archivedb "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/infrastructure/repositories"
	scorecardservice "github.com/Black-And-White-Club/golf-stableford/app/modules/scorecard/application"
	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/httpx"
)

// ArchiveReader loads archived rounds.
type ArchiveReader interface {
	GetArchive(ctx context.Context, id string) (archivedb.SavedRound, error)
}

// ScorecardHandlers serves scorecard exports for archived rounds.
type ScorecardHandlers struct {
	archives ArchiveReader
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewScorecardHandlers creates a new ScorecardHandlers instance.
func NewScorecardHandlers(archives ArchiveReader, logger *slog.Logger, tracer trace.Tracer) *ScorecardHandlers {
	return &ScorecardHandlers{archives: archives, logger: logger, tracer: tracer}
}

// Routes registers the export routes on a router mounted at /api/archive.
func (h *ScorecardHandlers) Routes(r chi.Router) {
	r.Get("/{archiveID}/scorecard.csv", h.HandleCSV)
	r.Get("/{archiveID}/scorecard.xlsx", h.HandleXLSX)
	r.Get("/{archiveID}/scorecard.html", h.HandleHTML)
	r.Get("/{archiveID}/points.png", h.HandlePointsChart)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9.-]+`)

// filename follows golf-scorecard-<course>-<date>.<ext>.
func filename(sc scorecardservice.Scorecard, ext string) string {
	course := strings.Trim(unsafeFilename.ReplaceAllString(sc.CourseName, "-"), "-")
	return fmt.Sprintf("golf-scorecard-%s-%s.%s", course, sc.Date, ext)
}

func (h *ScorecardHandlers) load(w http.ResponseWriter, r *http.Request) (scorecardservice.Scorecard, bool) {
	saved, err := h.archives.GetArchive(r.Context(), chi.URLParam(r, "archiveID"))
	if err != nil {
		if errors.Is(err, archiveservice.ErrArchiveNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return scorecardservice.Scorecard{}, false
		}
		h.fail(w, r, err)
		return scorecardservice.Scorecard{}, false
	}
	return scorecardservice.NewScorecard(saved), true
}

func (h *ScorecardHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "Scorecard export failed",
		attr.ExtractCorrelationID(r.Context()),
		attr.String("path", r.URL.Path),
		attr.Error(err),
	)
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}

func (h *ScorecardHandlers) HandleCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleCSV")
	r = r.WithContext(ctx)
	defer span.End()

	sc, ok := h.load(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := scorecardservice.WriteCSV(&buf, sc); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename(sc, "csv")+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *ScorecardHandlers) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleXLSX")
	r = r.WithContext(ctx)
	defer span.End()

	sc, ok := h.load(w, r)
	if !ok {
		return
	}
	data, err := scorecardservice.RenderXLSX(sc)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename(sc, "xlsx")+`"`)
	_, _ = w.Write(data)
}

func (h *ScorecardHandlers) HandleHTML(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleHTML")
	r = r.WithContext(ctx)
	defer span.End()

	sc, ok := h.load(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := scorecardservice.WriteHTML(&buf, sc); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *ScorecardHandlers) HandlePointsChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandlePointsChart")
	r = r.WithContext(ctx)
	defer span.End()

	sc, ok := h.load(w, r)
	if !ok {
		return
	}
	data, err := scorecardservice.RenderPointsChart(sc)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}
