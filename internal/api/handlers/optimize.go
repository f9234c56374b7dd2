package handlers

import (
	"fmt"
	"net/http"
	"time"

	"vehicle-route-optimizer/internal/api/dto"
	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/services"
)

const (
	maxTimeBudget = 60 * time.Second
	maxWorkers    = 16
)

// OptimizeHandler solves caller-supplied distance matrices.
type OptimizeHandler struct {
	Defaults services.Options
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	opts := h.Defaults
	budget, ok := timeBudget(req.TimeBudgetMS, h.Defaults.TimeBudget, maxTimeBudget)
	if !ok {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("time_budget_ms must be between 0 and %d", maxTimeBudget.Milliseconds()))
		return
	}
	opts.TimeBudget = budget

	if req.Workers < 0 || req.Workers > maxWorkers {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("workers must be between 1 and %d", maxWorkers))
		return
	}
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}

	res, err := services.Optimize(r.Context(), domain.DistanceMatrix(req.DistanceMatrix), req.NumVehicles, req.Depot, opts)
	if err != nil {
		writeServiceError(w, r, "optimize", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		Routes:          routeLists(res.Routes),
		TotalDistance:   res.TotalDistance,
		InitialDistance: res.InitialDistance,
		Stats: dto.OptimizeStatsResponse{
			Workers:     res.Stats.Workers,
			BestWorker:  res.Stats.BestWorker,
			Moves:       res.Stats.Moves,
			LocalOptima: res.Stats.LocalOptima,
			ElapsedMS:   res.Stats.Elapsed.Milliseconds(),
		},
	})
}
