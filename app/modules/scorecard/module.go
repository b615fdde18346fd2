package scorecard

import (
	"github.com/go-chi/chi/v5"

	scorecardhandlers "github.com/Black-And-White-Club/golf-stableford/app/modules/scorecard/infrastructure/handlers"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
)

// Module serves scorecard exports for archived rounds.
type Module struct {
	handlers *scorecardhandlers.ScorecardHandlers
}

// NewScorecardModule creates the scorecard module.
func NewScorecardModule(obs observability.Observability, archives scorecardhandlers.ArchiveReader) *Module {
	return &Module{handlers: scorecardhandlers.NewScorecardHandlers(archives, obs.Logger, obs.Tracer)}
}

// Routes registers the export routes on a router mounted at /api/archive.
func (m *Module) Routes(r chi.Router) {
	m.handlers.Routes(r)
}
