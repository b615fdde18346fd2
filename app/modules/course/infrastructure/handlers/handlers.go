package coursehandlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	courseservice "github.com/Black-And-White-Club/golf-stableford/app/modules/course/application"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/httpx"
)

// womensDistanceRatio derives the forward tee distance when only the men's is given.
const womensDistanceRatio = 0.85

// CourseHandlers serves the course HTTP API.
type CourseHandlers struct {
	service courseservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCourseHandlers creates a new CourseHandlers instance.
func NewCourseHandlers(service courseservice.Service, logger *slog.Logger, tracer trace.Tracer) *CourseHandlers {
	return &CourseHandlers{service: service, logger: logger, tracer: tracer}
}

// Routes mounts the handlers on r.
func (h *CourseHandlers) Routes(r chi.Router) {
	r.Get("/", h.HandleListCourses)
	r.Post("/", h.HandleCreateCourse)
	r.Route("/{courseID}", func(r chi.Router) {
		r.Get("/", h.HandleGetCourse)
		r.Delete("/", h.HandleDeleteCourse)
		r.Patch("/holes/{number}", h.HandleUpdateHole)
	})
}

// CourseResponse adds derived totals to a course.
type CourseResponse struct {
	scoringdomain.Course
	Par     int  `json:"par"`
	BuiltIn bool `json:"built_in"`
}

func toResponse(c scoringdomain.Course) CourseResponse {
	_, builtIn := builtInIDs[c.ID]
	return CourseResponse{Course: c, Par: c.Par(), BuiltIn: builtIn}
}

var builtInIDs = func() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, c := range courseservice.BuiltInCourses() {
		ids[c.ID] = struct{}{}
	}
	return ids
}()

func (h *CourseHandlers) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleListCourses")
	defer span.End()

	courses, err := h.service.ListCourses(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *CourseHandlers) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleGetCourse")
	defer span.End()

	course, err := h.service.GetCourse(ctx, chi.URLParam(r, "courseID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(course))
}

func (h *CourseHandlers) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleCreateCourse")
	defer span.End()

	var req courseservice.CreateCourseRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.service.CreateCustomCourse(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/courses/"+course.ID)
	httpx.WriteJSON(w, http.StatusCreated, toResponse(course))
}

func (h *CourseHandlers) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleDeleteCourse")
	defer span.End()

	if err := h.service.DeleteCourse(ctx, chi.URLParam(r, "courseID")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HoleUpdateRequest is the PATCH body; Kind selects which field is read.
type HoleUpdateRequest struct {
	Kind        string                  `json:"kind"`
	Par         int                     `json:"par,omitempty"`
	StrokeIndex int                     `json:"stroke_index,omitempty"`
	Distance    *scoringdomain.Distance `json:"distance,omitempty"`
}

// ToUpdate converts the request into a domain HoleUpdate.
func (req HoleUpdateRequest) ToUpdate() (scoringdomain.HoleUpdate, error) {
	switch req.Kind {
	case "par":
		return scoringdomain.SetPar{Par: req.Par}, nil
	case "stroke_index":
		return scoringdomain.SetStrokeIndex{StrokeIndex: req.StrokeIndex}, nil
	case "distance":
		if req.Distance == nil {
			return nil, errors.New("distance is required")
		}
		d := *req.Distance
		if d.Women == 0 && d.Men > 0 {
			d.Women = int(math.Round(float64(d.Men) * womensDistanceRatio))
		}
		return scoringdomain.SetDistance{Distance: d}, nil
	default:
		return nil, errors.New(`kind must be one of "par", "stroke_index", "distance"`)
	}
}

func (h *CourseHandlers) HandleUpdateHole(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleUpdateHole")
	defer span.End()

	number, err := httpx.IntParam(r, "number")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req HoleUpdateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	update, err := req.ToUpdate()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.service.UpdateHole(ctx, chi.URLParam(r, "courseID"), number, update)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(course))
}

func (h *CourseHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, courseservice.ErrCourseNotFound), errors.Is(err, scoringdomain.ErrHoleNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, courseservice.ErrCourseReadOnly):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, courseservice.ErrInvalidCourseRequest),
		errors.Is(err, scoringdomain.ErrInvalidCourse),
		errors.Is(err, scoringdomain.ErrInvalidHoleUpdate):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Course request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
