package services

import (
	"errors"
	"fmt"

	"vehicle-route-optimizer/internal/domain"
)

// NaivePartition splits customers 1..numNodes-1 into contiguous chunks, one
// per vehicle, without any optimization. Node 0 is the depot.
//
// The chunk size is ceil((numNodes-1)/numVehicles), so later vehicles may
// receive shorter chunks or the depot-only route. It is a comparison
// baseline for the optimizer, not a planning strategy.
func NaivePartition(numNodes, numVehicles int) ([]domain.Route, error) {
	if numVehicles < 1 {
		return nil, fmt.Errorf("naive partition: num_vehicles=%d must be at least 1: %w", numVehicles, domain.ErrInvalidInput)
	}
	if numNodes < 1 {
		return nil, errors.New("naive partition: at least the depot node is required")
	}

	const depot = 0
	nCustomers := numNodes - 1

	// Ceiling division: distribute customers as evenly as possible across vehicles.
	chunkSize := max(1, (nCustomers+numVehicles-1)/numVehicles)

	routes := make([]domain.Route, 0, numVehicles)
	for start := 1; start <= nCustomers; start += chunkSize {
		end := min(start+chunkSize, nCustomers+1)

		route := make(domain.Route, 0, end-start+2)
		route = append(route, depot)
		for c := start; c < end; c++ {
			route = append(route, c)
		}
		route = append(route, depot)
		routes = append(routes, route)
	}

	// If there are fewer chunks than vehicles, the rest stay at the depot.
	for len(routes) < numVehicles {
		routes = append(routes, domain.EmptyRoute(depot))
	}

	return routes, nil
}
