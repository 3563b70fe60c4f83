// Package http assembles the service's HTTP surface: feature routers,
// middleware, and operational endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	govhandler "sovereign/internal/governance/handler"
	identityhandler "sovereign/internal/identity/handler"
	markethandler "sovereign/internal/market/handler"
	resolutionhandler "sovereign/internal/resolution/handler"
	"sovereign/pkg/platform/middleware/auth"
	"sovereign/pkg/platform/middleware/request"
)

// Handlers carries the feature handlers the router mounts.
type Handlers struct {
	Identity   *identityhandler.Handler
	Governance *govhandler.Handler
	Market     *markethandler.Handler
	Resolution *resolutionhandler.Handler
}

// NewRouter mounts the full API under /v1 behind bearer authentication.
// Health stays outside the authenticated tree so probes need no token.
func NewRouter(h Handlers, verifier *auth.Verifier, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(request.ID)
	r.Use(request.Time)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(auth.RequireCaller(verifier, logger))

		r.Mount("/identities", h.Identity.Routes())
		r.Get("/surfacing-scores/{wallet}", h.Identity.SurfacingScore)
		r.Get("/leaderboard", h.Identity.Leaderboard)

		r.Mount("/daos", h.Governance.DAORoutes())
		r.Mount("/nominations", h.Governance.NominationRoutes())
		r.Mount("/markets", h.Market.Routes())
		r.Mount("/resolutions", h.Resolution.Routes())
	})

	return r
}
