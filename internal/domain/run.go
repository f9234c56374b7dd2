package domain

import (
	"errors"
	"math"
	"time"
)

// ErrRunNotFound is returned by repositories when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// Represents one optimization experiment: a generated (or loaded) instance,
// the naive baseline, and the optimized routes for the same matrix.
// The depot is always node 0 of Points.
type Run struct {
	ID              string
	CreatedAt       time.Time
	NumLocations    int
	NumVehicles     int
	Seed            int64
	DistanceSource  string
	TimeBudget      time.Duration
	Points          []Point
	NaiveRoutes     []Route
	NaiveTotal      int
	OptimizedRoutes []Route
	OptimizedTotal  int
	System          *SysInfo
}

// Aggregate metrics of a Run, as exported to summary files and the API.
type RunSummary struct {
	ID                 string
	CreatedAt          time.Time
	NumLocations       int
	NumVehicles        int
	Seed               int64
	DistanceSource     string
	NaiveTotal         int
	OptimizedTotal     int
	ImprovementPercent *float64
}

// Host information recorded alongside a run.
type SysInfo struct {
	Platform string
	CPU      string
	Memory   string
}

func (r *Run) Summary() RunSummary {
	return RunSummary{
		ID:                 r.ID,
		CreatedAt:          r.CreatedAt,
		NumLocations:       r.NumLocations,
		NumVehicles:        r.NumVehicles,
		Seed:               r.Seed,
		DistanceSource:     r.DistanceSource,
		NaiveTotal:         r.NaiveTotal,
		OptimizedTotal:     r.OptimizedTotal,
		ImprovementPercent: ImprovementPercent(r.NaiveTotal, r.OptimizedTotal),
	}
}

// ImprovementPercent returns the relative saving of optimized over naive,
// rounded to two decimals. It is nil when the naive total is not positive.
func ImprovementPercent(naiveTotal, optimizedTotal int) *float64 {
	if naiveTotal <= 0 || optimizedTotal < 0 {
		return nil
	}

	pct := 100.0 * float64(naiveTotal-optimizedTotal) / float64(naiveTotal)
	pct = math.Round(pct*100) / 100
	return &pct
}
