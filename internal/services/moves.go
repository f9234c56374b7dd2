package services

import (
	"slices"

	"vehicle-route-optimizer/internal/domain"
)

// weightFunc returns the cost of the undirected edge (i, j).
type weightFunc func(i, j int) int

type moveKind int

const (
	// Move one customer to another position, in the same or another route.
	moveRelocate moveKind = iota
	// Exchange two customers, in the same or different routes.
	moveSwap
	// Reverse the segment [i..j] of one route.
	moveTwoOpt
	// Exchange the tails of two routes after positions i and j.
	moveCross
)

func (k moveKind) String() string {
	switch k {
	case moveRelocate:
		return "relocate"
	case moveSwap:
		return "swap"
	case moveTwoOpt:
		return "2-opt"
	case moveCross:
		return "cross"
	}
	return "unknown"
}

// move is a candidate transformation of a solution.
//
//	relocate: customer r1[i] is inserted between r2[j-1] and r2[j] (indices of the unmodified route).
//	swap:     customers r1[i] and r2[j] trade places.
//	2-opt:    r1[i..j] is reversed; r1 == r2.
//	cross:    r1[i+1:] and r2[j+1:] are exchanged.
type move struct {
	kind   moveKind
	r1, i  int
	r2, j  int
	delta  int
	scored bool
}

// eval prices the move under w. The solution is not modified.
func (mv move) eval(s *domain.Solution, w weightFunc) int {
	switch mv.kind {
	case moveRelocate:
		return relocateDelta(s, mv.r1, mv.i, mv.r2, mv.j, w)
	case moveSwap:
		return swapDelta(s, mv.r1, mv.i, mv.r2, mv.j, w)
	case moveTwoOpt:
		return twoOptDelta(s.Routes[mv.r1], mv.i, mv.j, w)
	case moveCross:
		return crossDelta(s, mv.r1, mv.i, mv.r2, mv.j, w)
	}
	return 0
}

// apply performs the move in place. Each move keeps every route
// depot-bookended and every customer in exactly one position.
func (mv move) apply(s *domain.Solution) {
	switch mv.kind {
	case moveRelocate:
		c := s.Routes[mv.r1][mv.i]
		s.Routes[mv.r1] = slices.Delete(s.Routes[mv.r1], mv.i, mv.i+1)
		j := mv.j
		if mv.r1 == mv.r2 && j > mv.i {
			j--
		}
		s.Routes[mv.r2] = slices.Insert(s.Routes[mv.r2], j, c)

	case moveSwap:
		s.Routes[mv.r1][mv.i], s.Routes[mv.r2][mv.j] = s.Routes[mv.r2][mv.j], s.Routes[mv.r1][mv.i]

	case moveTwoOpt:
		slices.Reverse(s.Routes[mv.r1][mv.i : mv.j+1])

	case moveCross:
		a, b := s.Routes[mv.r1], s.Routes[mv.r2]
		na := make(domain.Route, 0, mv.i+1+len(b)-mv.j-1)
		na = append(append(na, a[:mv.i+1]...), b[mv.j+1:]...)
		nb := make(domain.Route, 0, mv.j+1+len(a)-mv.i-1)
		nb = append(append(nb, b[:mv.j+1]...), a[mv.i+1:]...)
		s.Routes[mv.r1], s.Routes[mv.r2] = na, nb
	}
}

func relocateDelta(s *domain.Solution, r1, i, r2, j int, w weightFunc) int {
	from := s.Routes[r1]
	to := s.Routes[r2]

	p, c, q := from[i-1], from[i], from[i+1]
	removeGain := w(p, c) + w(c, q) - w(p, q)

	a, b := to[j-1], to[j]
	insertCost := w(a, c) + w(c, b) - w(a, b)

	return insertCost - removeGain
}

func swapDelta(s *domain.Solution, r1, i, r2, j int, w weightFunc) int {
	ra := s.Routes[r1]
	rb := s.Routes[r2]
	a, b := ra[i], rb[j]

	if r1 == r2 && j == i+1 {
		p, q := ra[i-1], ra[j+1]
		return w(p, b) + w(a, q) - w(p, a) - w(b, q)
	}

	pa, na := ra[i-1], ra[i+1]
	pb, nb := rb[j-1], rb[j+1]
	return w(pa, b) + w(b, na) - w(pa, a) - w(a, na) +
		w(pb, a) + w(a, nb) - w(pb, b) - w(b, nb)
}

// twoOptDelta assumes w is symmetric so the reversed inner edges keep their cost.
func twoOptDelta(r domain.Route, i, k int, w weightFunc) int {
	a, b := r[i-1], r[i]
	c, d := r[k], r[k+1]
	return w(a, c) + w(b, d) - w(a, b) - w(c, d)
}

func crossDelta(s *domain.Solution, r1, i, r2, j int, w weightFunc) int {
	ra := s.Routes[r1]
	rb := s.Routes[r2]
	return w(ra[i], rb[j+1]) + w(rb[j], ra[i+1]) - w(ra[i], ra[i+1]) - w(rb[j], rb[j+1])
}

// bestMove scans the full neighbourhood of s and returns the move with the
// most negative delta under w. ok is false when no move strictly improves.
// Ties keep the first move in scan order, so the scan is deterministic.
func bestMove(s *domain.Solution, w weightFunc) (best move, ok bool) {
	consider := func(mv move) {
		if mv.delta < 0 && (!best.scored || mv.delta < best.delta) {
			mv.scored = true
			best = mv
		}
	}

	routes := s.Routes

	// Relocate.
	for r1, from := range routes {
		for i := 1; i < len(from)-1; i++ {
			for r2, to := range routes {
				for j := 1; j < len(to); j++ {
					if r1 == r2 && (j == i || j == i+1) {
						continue
					}
					consider(move{kind: moveRelocate, r1: r1, i: i, r2: r2, j: j,
						delta: relocateDelta(s, r1, i, r2, j, w)})
				}
			}
		}
	}

	// Swap, ordered pairs (r1, i) < (r2, j).
	for r1, ra := range routes {
		for i := 1; i < len(ra)-1; i++ {
			for r2 := r1; r2 < len(routes); r2++ {
				rb := routes[r2]
				start := 1
				if r2 == r1 {
					start = i + 1
				}
				for j := start; j < len(rb)-1; j++ {
					consider(move{kind: moveSwap, r1: r1, i: i, r2: r2, j: j,
						delta: swapDelta(s, r1, i, r2, j, w)})
				}
			}
		}
	}

	// 2-opt within a route. Segments of two nodes are already covered by swap.
	for r, route := range routes {
		for i := 1; i < len(route)-2; i++ {
			for k := i + 2; k < len(route)-1; k++ {
				consider(move{kind: moveTwoOpt, r1: r, i: i, r2: r, j: k,
					delta: twoOptDelta(route, i, k, w)})
			}
		}
	}

	// Cross exchange between two routes.
	for r1 := 0; r1 < len(routes); r1++ {
		ra := routes[r1]
		for r2 := r1 + 1; r2 < len(routes); r2++ {
			rb := routes[r2]
			for i := 0; i < len(ra)-1; i++ {
				for j := 0; j < len(rb)-1; j++ {
					consider(move{kind: moveCross, r1: r1, i: i, r2: r2, j: j,
						delta: crossDelta(s, r1, i, r2, j, w)})
				}
			}
		}
	}

	return best, best.scored
}
