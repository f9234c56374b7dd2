package dto

type OptimizeRequest struct {
	DistanceMatrix [][]int `json:"distance_matrix"`
	NumVehicles    int     `json:"num_vehicles"`
	Depot          int     `json:"depot"`
	// Absent means the server default; 0 stops at the first local optimum.
	TimeBudgetMS *int64 `json:"time_budget_ms"`
	Workers      int    `json:"workers"`
}

type OptimizeStatsResponse struct {
	Workers     int   `json:"workers"`
	BestWorker  int   `json:"best_worker"`
	Moves       int64 `json:"moves"`
	LocalOptima int64 `json:"local_optima"`
	ElapsedMS   int64 `json:"elapsed_ms"`
}

type OptimizeResponse struct {
	Routes          [][]int               `json:"routes"`
	TotalDistance   int                   `json:"total_distance"`
	InitialDistance int                   `json:"initial_distance"`
	Stats           OptimizeStatsResponse `json:"stats"`
}
