package api

import (
	"net/http"

	"vehicle-route-optimizer/internal/api/handlers"
	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/ports"
	"vehicle-route-optimizer/internal/services"
)

// Deps are the collaborators the HTTP layer needs. Repo may be nil.
type Deps struct {
	Repo      ports.RunRepository
	Locations ports.LocationSource
	Providers map[string]ports.MatrixProvider
	Defaults  services.Options
	System    *domain.SysInfo
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{Defaults: deps.Defaults}
	runHandler := &handlers.RunHandler{
		Repo:      deps.Repo,
		Locations: deps.Locations,
		Providers: deps.Providers,
		Defaults:  deps.Defaults,
		System:    deps.System,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/runs", runHandler.Runs)
	mux.HandleFunc("/runs/{id}", runHandler.Get)

	return requestIDMiddleware(loggingMiddleware(mux))
}
