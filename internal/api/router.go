package api

import (
	"delivery-simulation-service/internal/api/handlers"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps are the adapters the HTTP surface needs.
type Deps struct {
	Packages  ports.PackageRepository
	Locations ports.LocationRepository
	Scenario  domain.Scenario
	Log       zerolog.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	runs := &handlers.RunStore{}

	simHandler := &handlers.SimulationHandler{
		Packages:  deps.Packages,
		Locations: deps.Locations,
		Scenario:  deps.Scenario,
		Runs:      runs,
	}
	pkgHandler := &handlers.PackageHandler{
		Packages:  deps.Packages,
		Locations: deps.Locations,
		Scenario:  deps.Scenario,
		Runs:      runs,
	}

	r := chi.NewRouter()
	r.Use(requestContext(deps.Log))
	r.Use(loggingMiddleware)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/simulations", simHandler.Run)

	r.Route("/packages", func(r chi.Router) {
		r.Get("/", pkgHandler.List)
		r.Get("/{id}", pkgHandler.Get)
		r.Get("/{id}/history", pkgHandler.History)
	})
	r.Get("/statuses", pkgHandler.Statuses)

	return r
}
