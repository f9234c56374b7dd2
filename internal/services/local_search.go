package services

import (
	"context"
	"math"
	"time"

	"vehicle-route-optimizer/internal/domain"

	"go.uber.org/atomic"
)

// DefaultLambdaCoefficient scales the guided local search penalty term
// relative to the average edge cost of the starting solution.
const DefaultLambdaCoefficient = 0.1

// SearchOptions configures one guided local search.
type SearchOptions struct {
	// Wall-clock budget. Zero or negative means the search stops at the first local optimum.
	TimeBudget time.Duration
	// Penalty scale relative to the average edge cost. Zero selects DefaultLambdaCoefficient.
	LambdaCoefficient float64
	// Stop after this many local optima. Zero means no limit.
	MaxLocalOptima int
}

// SearchStats describes the work done by a search.
type SearchStats struct {
	Moves         int
	LocalOptima   int
	Improvements  int
	Lambda        int
	InitialCost   int
	BestCost      int
	Elapsed       time.Duration
	StoppedByTime bool
}

// searchCounters aggregates progress across concurrent searches.
type searchCounters struct {
	moves       atomic.Int64
	localOptima atomic.Int64
}

// Improve runs guided local search from initial and returns the best solution
// found by true distance. The result never costs more than initial, which is
// left untouched.
//
// Moves are applied best-improvement under the augmented edge cost
// d(i,j) + λ·penalty(i,j). At each local optimum the edges of the current
// solution with maximal utility d(i,j)/(1+penalty(i,j)) are penalized and the
// search resumes from the same solution. The deadline is checked before every
// neighbourhood scan.
func Improve(
	ctx context.Context,
	initial *domain.Solution,
	m domain.DistanceMatrix,
	opts SearchOptions,
) (*domain.Solution, SearchStats) {
	return improve(ctx, initial, m, opts, nil)
}

func improve(
	ctx context.Context,
	initial *domain.Solution,
	m domain.DistanceMatrix,
	opts SearchOptions,
	counters *searchCounters,
) (*domain.Solution, SearchStats) {
	start := time.Now()
	var deadline time.Time
	if opts.TimeBudget > 0 {
		deadline = start.Add(opts.TimeBudget)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	expired := func() bool {
		return ctx.Err() != nil || (!deadline.IsZero() && !time.Now().Before(deadline))
	}

	cur := initial.Clone()
	curCost := TotalCost(cur, m)
	best := cur.Clone()
	bestCost := curCost

	stats := SearchStats{InitialCost: curCost}
	finish := func() (*domain.Solution, SearchStats) {
		stats.BestCost = bestCost
		stats.Elapsed = time.Since(start)
		return best, stats
	}

	// Zero cost is optimal, and with fewer than two customers every
	// feasible solution has the same cost.
	if curCost == 0 || cur.CustomerCount() < 2 {
		return finish()
	}

	coef := opts.LambdaCoefficient
	if coef <= 0 {
		coef = DefaultLambdaCoefficient
	}
	lambda := penaltyLambda(cur, m, curCost, coef)
	stats.Lambda = lambda

	penalties := newEdgePenalties(m.Size())
	augmented := func(i, j int) int { return m[i][j] + lambda*penalties.get(i, j) }
	distance := func(i, j int) int { return m[i][j] }

	for {
		if expired() {
			stats.StoppedByTime = true
			break
		}

		mv, ok := bestMove(cur, augmented)
		if ok {
			trueDelta := mv.eval(cur, distance)
			mv.apply(cur)
			curCost += trueDelta
			stats.Moves++
			if counters != nil {
				counters.moves.Inc()
			}

			if curCost < bestCost {
				best = cur.Clone()
				bestCost = curCost
				stats.Improvements++
			}
			continue
		}

		stats.LocalOptima++
		if counters != nil {
			counters.localOptima.Inc()
		}

		if bestCost == 0 {
			break
		}
		if opts.MaxLocalOptima > 0 && stats.LocalOptima >= opts.MaxLocalOptima {
			break
		}
		if opts.TimeBudget <= 0 {
			break
		}

		penalizeMaxUtility(cur, m, penalties)
	}

	return finish()
}

// penaltyLambda returns coef × average edge cost of s, rounded and at least 1.
func penaltyLambda(s *domain.Solution, m domain.DistanceMatrix, cost int, coef float64) int {
	edges := 0
	for _, r := range s.Routes {
		for i := 0; i+1 < len(r); i++ {
			if r[i] != r[i+1] {
				edges++
			}
		}
	}
	if edges == 0 {
		return 1
	}

	lambda := int(math.Round(coef * float64(cost) / float64(edges)))
	return max(lambda, 1)
}

// penalizeMaxUtility increments the penalty of every edge of s whose utility
// d/(1+p) is maximal. Utilities are compared by cross multiplication to stay
// in integers.
func penalizeMaxUtility(s *domain.Solution, m domain.DistanceMatrix, penalties edgePenalties) {
	type edge struct{ i, j int }

	var top []edge
	bestD, bestP := 0, 0

	for _, r := range s.Routes {
		for k := 0; k+1 < len(r); k++ {
			i, j := r[k], r[k+1]
			if i == j {
				continue
			}
			d := m[i][j]
			p := penalties.get(i, j)

			// d/(1+p) vs bestD/(1+bestP)
			lhs := d * (1 + bestP)
			rhs := bestD * (1 + p)
			switch {
			case len(top) == 0 || lhs > rhs:
				top = append(top[:0], edge{i, j})
				bestD, bestP = d, p
			case lhs == rhs:
				top = append(top, edge{i, j})
			}
		}
	}

	seen := make(map[edgeKey]struct{}, len(top))
	for _, e := range top {
		k := newEdgeKey(e.i, e.j)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		penalties.inc(e.i, e.j)
	}
}
