package services

import (
	"fmt"
	"math"

	"vehicle-route-optimizer/internal/domain"

	"github.com/yourbasic/bit"
)

// BuildInitialSolution builds a first feasible solution with a greedy
// cheapest-arc insertion.
//
// At each step every unrouted customer is priced at its cheapest position:
// appended to the end of a route already in use, or opened as a new
// single-customer route while unused vehicles remain. The customer with the
// smallest marginal distance is placed there. Ties go to the lowest customer
// index, then the lowest route index, with existing routes before a new one.
// Unused vehicles keep the depot-only route. No randomness is involved.
func BuildInitialSolution(m domain.DistanceMatrix, numVehicles, depot int) (*domain.Solution, error) {
	if err := domain.ValidateProblem(m, numVehicles, depot); err != nil {
		return nil, fmt.Errorf("build initial solution: %w", err)
	}

	n := m.Size()
	sol := domain.NewEmptySolution(numVehicles, depot)

	unrouted := new(bit.Set).AddRange(0, n).Delete(depot)

	// Routes [0, used) carry customers; the rest are still depot-only.
	used := 0

	for !unrouted.Empty() {
		bestCustomer := -1
		bestRoute := -1
		bestDelta := math.MaxInt

		unrouted.Visit(func(c int) (skip bool) {
			for ri := 0; ri < used; ri++ {
				r := sol.Routes[ri]
				last := r[len(r)-2]
				delta := m[last][c] + m[c][depot] - m[last][depot]
				// Strict comparison keeps the lowest customer and route index on ties.
				if delta < bestDelta {
					bestDelta = delta
					bestCustomer = c
					bestRoute = ri
				}
			}

			if used < numVehicles {
				delta := m[depot][c] + m[c][depot]
				if delta < bestDelta {
					bestDelta = delta
					bestCustomer = c
					bestRoute = used
				}
			}
			return false
		})

		if bestCustomer < 0 {
			return nil, fmt.Errorf("build initial solution: no insertion position found with %d customers unrouted", unrouted.Size())
		}

		if bestRoute == used {
			used++
		}

		r := sol.Routes[bestRoute]
		r = append(r[:len(r)-1], bestCustomer, depot)
		sol.Routes[bestRoute] = r

		unrouted.Delete(bestCustomer)
	}

	return sol, nil
}
