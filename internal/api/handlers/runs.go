package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"vehicle-route-optimizer/internal/api/dto"
	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/obs"
	"vehicle-route-optimizer/internal/ports"
	"vehicle-route-optimizer/internal/services"
)

const (
	maxLocations    = 2000
	maxListLimit    = 500
	defaultSource   = "euclidean"
	defaultVehicles = 5
)

// RunHandler creates experiment runs and reads them back.
// Repo may be nil, in which case runs are computed but not stored.
type RunHandler struct {
	Repo      ports.RunRepository
	Locations ports.LocationSource
	// Matrix providers keyed by the distance_source request field.
	Providers map[string]ports.MatrixProvider
	Defaults  services.Options
	System    *domain.SysInfo
}

// Runs serves POST (create) and GET (list) on the collection.
func (h *RunHandler) Runs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RunHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.RunRequest
	if !decodeBody(w, r, &req) {
		return
	}

	source := strings.TrimSpace(req.DistanceSource)
	if source == "" {
		source = defaultSource
	}
	provider, ok := h.Providers[source]
	if !ok {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("distance_source %q is not configured", source))
		return
	}

	if req.NumVehicles == 0 {
		req.NumVehicles = defaultVehicles
	}
	if len(req.Points) == 0 && (req.NumLocations < 2 || req.NumLocations > maxLocations) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("num_locations must be between 2 and %d", maxLocations))
		return
	}
	if len(req.Points) > maxLocations {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("points must contain at most %d entries", maxLocations))
		return
	}

	opts := h.Defaults
	budget, ok := timeBudget(req.TimeBudgetMS, h.Defaults.TimeBudget, maxTimeBudget)
	if !ok {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("time_budget_ms must be between 0 and %d", maxTimeBudget.Milliseconds()))
		return
	}
	opts.TimeBudget = budget

	svcReq := services.RunExperimentRequest{
		NumLocations: req.NumLocations,
		NumVehicles:  req.NumVehicles,
		Seed:         req.Seed,
		Optimize:     opts,
		System:       h.System,
	}
	for _, p := range req.Points {
		svcReq.Points = append(svcReq.Points, domain.Point{X: p.X, Y: p.Y})
	}

	run, err := services.RunExperiment(r.Context(), svcReq, h.Locations, provider, h.Repo)
	if err != nil {
		writeServiceError(w, r, "run experiment", err)
		return
	}

	log.Printf("run created: req_id=%s run_id=%s source=%s naive=%d optimized=%d",
		obs.RequestID(r.Context()), run.ID, run.DistanceSource, run.NaiveTotal, run.OptimizedTotal)

	writeJSON(w, r, http.StatusCreated, runResponse(run))
}

func (h *RunHandler) list(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "run storage is not configured")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
			return
		}
		limit = n
	}

	runs, err := h.Repo.ListRuns(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, "list runs", err)
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunSummaryResponse, 0, len(runs))}
	for _, s := range runs {
		res.Runs = append(res.Runs, summaryResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one stored run with its points and routes.
func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "run storage is not configured")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "run id is required")
		return
	}

	run, err := h.Repo.GetRun(r.Context(), id)
	if errors.Is(err, domain.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeServiceError(w, r, "get run", err)
		return
	}

	writeJSON(w, r, http.StatusOK, runResponse(run))
}

func summaryResponse(s domain.RunSummary) dto.RunSummaryResponse {
	return dto.RunSummaryResponse{
		RunID:                     s.ID,
		CreatedAt:                 s.CreatedAt,
		NumLocations:              s.NumLocations,
		NumVehicles:               s.NumVehicles,
		Seed:                      s.Seed,
		DistanceSource:            s.DistanceSource,
		NaiveTotalDistance:        s.NaiveTotal,
		OptimizedTotalDistance:    s.OptimizedTotal,
		PercentImprovementVsNaive: s.ImprovementPercent,
	}
}

func runResponse(run *domain.Run) dto.RunResponse {
	return dto.RunResponse{
		RunSummaryResponse: summaryResponse(run.Summary()),
		Points:             pointDTOs(run.Points),
		NaiveRoutes:        routeLists(run.NaiveRoutes),
		OptimizedRoutes:    routeLists(run.OptimizedRoutes),
	}
}
