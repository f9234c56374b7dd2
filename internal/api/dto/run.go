package dto

import "time"

type PointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RunRequest struct {
	NumLocations   int    `json:"num_locations"`
	NumVehicles    int    `json:"num_vehicles"`
	Seed           int64  `json:"seed"`
	TimeBudgetMS   *int64 `json:"time_budget_ms"`
	DistanceSource string `json:"distance_source"`
	// Optional explicit instance, depot first. Required for road distances,
	// where x/y are longitude/latitude.
	Points []PointDTO `json:"points"`
}

type RunSummaryResponse struct {
	RunID                     string    `json:"run_id"`
	CreatedAt                 time.Time `json:"created_at"`
	NumLocations              int       `json:"num_locations"`
	NumVehicles               int       `json:"num_vehicles"`
	Seed                      int64     `json:"seed"`
	DistanceSource            string    `json:"distance_source"`
	NaiveTotalDistance        int       `json:"naive_total_distance"`
	OptimizedTotalDistance    int       `json:"optimized_total_distance"`
	PercentImprovementVsNaive *float64  `json:"percent_improvement_vs_naive"`
}

type RunResponse struct {
	RunSummaryResponse
	Points          []PointDTO `json:"points"`
	NaiveRoutes     [][]int    `json:"naive_routes"`
	OptimizedRoutes [][]int    `json:"optimized_routes"`
}

type ListRunsResponse struct {
	Runs []RunSummaryResponse `json:"runs"`
}
