package services

import "vehicle-route-optimizer/internal/domain"

// RouteCost sums the distances of consecutive node pairs along the route.
func RouteCost(route domain.Route, m domain.DistanceMatrix) int {
	total := 0
	for i := 0; i+1 < len(route); i++ {
		total += m[route[i]][route[i+1]]
	}
	return total
}

// TotalCost sums RouteCost over every route of the solution.
func TotalCost(s *domain.Solution, m domain.DistanceMatrix) int {
	total := 0
	for _, r := range s.Routes {
		total += RouteCost(r, m)
	}
	return total
}

// TotalRoutesCost is TotalCost for a bare route list.
func TotalRoutesCost(routes []domain.Route, m domain.DistanceMatrix) int {
	return TotalCost(&domain.Solution{Routes: routes}, m)
}
