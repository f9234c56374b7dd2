package domain

import (
	"fmt"
	"slices"
)

// Route is an ordered node sequence that starts and ends at the depot.
// [depot, depot] is the empty route of an unused vehicle.
type Route []int

// EmptyRoute returns the depot-only route.
func EmptyRoute(depot int) Route { return Route{depot, depot} }

// Customers returns the nodes strictly between the depot endpoints.
func (r Route) Customers() []int {
	if len(r) <= 2 {
		return nil
	}
	return r[1 : len(r)-1]
}

// IsEmpty reports whether the route visits no customer.
func (r Route) IsEmpty() bool { return len(r) <= 2 }

// Solution is one route per vehicle. Together the routes visit every
// customer exactly once.
type Solution struct {
	Routes []Route
}

// NewEmptySolution returns numVehicles depot-only routes.
func NewEmptySolution(numVehicles, depot int) *Solution {
	routes := make([]Route, numVehicles)
	for i := range routes {
		routes[i] = EmptyRoute(depot)
	}
	return &Solution{Routes: routes}
}

// Clone returns a deep copy whose routes share no backing arrays with s.
func (s *Solution) Clone() *Solution {
	routes := make([]Route, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = slices.Clone(r)
	}
	return &Solution{Routes: routes}
}

// CustomerCount returns the number of customer visits across all routes.
func (s *Solution) CustomerCount() int {
	total := 0
	for _, r := range s.Routes {
		total += len(r.Customers())
	}
	return total
}

// CheckPartition verifies that the routes are depot-bookended and that every
// node except the depot is visited exactly once.
func (s *Solution) CheckPartition(numNodes, depot int) error {
	seen := make([]bool, numNodes)

	for ri, r := range s.Routes {
		if len(r) < 2 || r[0] != depot || r[len(r)-1] != depot {
			return fmt.Errorf("check partition: route %d is not bookended by depot %d: %v", ri, depot, r)
		}

		for _, node := range r.Customers() {
			if node < 0 || node >= numNodes {
				return fmt.Errorf("check partition: route %d visits unknown node %d", ri, node)
			}
			if node == depot {
				return fmt.Errorf("check partition: route %d visits the depot mid-route", ri)
			}
			if seen[node] {
				return fmt.Errorf("check partition: node %d visited more than once", node)
			}
			seen[node] = true
		}
	}

	for node, ok := range seen {
		if !ok && node != depot {
			return fmt.Errorf("check partition: node %d is not visited", node)
		}
	}

	return nil
}
