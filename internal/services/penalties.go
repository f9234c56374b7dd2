package services

// denseEdgePenaltyLimit is the largest node count for which penalties are
// kept in a flat n×n slice. Larger instances use a map keyed by edge.
const denseEdgePenaltyLimit = 1024

// edgePenalties counts how often each undirected edge has been penalized
// by guided local search.
type edgePenalties interface {
	get(i, j int) int
	inc(i, j int)
}

func newEdgePenalties(n int) edgePenalties {
	if n <= denseEdgePenaltyLimit {
		return &denseEdgePenalties{n: n, p: make([]int32, n*n)}
	}
	return sparseEdgePenalties{}
}

type denseEdgePenalties struct {
	n int
	p []int32
}

func (d *denseEdgePenalties) get(i, j int) int { return int(d.p[i*d.n+j]) }

func (d *denseEdgePenalties) inc(i, j int) {
	d.p[i*d.n+j]++
	if i != j {
		d.p[j*d.n+i]++
	}
}

type edgeKey struct{ lo, hi int }

func newEdgeKey(i, j int) edgeKey {
	if i > j {
		i, j = j, i
	}
	return edgeKey{lo: i, hi: j}
}

type sparseEdgePenalties map[edgeKey]int

func (s sparseEdgePenalties) get(i, j int) int { return s[newEdgeKey(i, j)] }

func (s sparseEdgePenalties) inc(i, j int) { s[newEdgeKey(i, j)]++ }
