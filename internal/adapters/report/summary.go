package report

import (
	"encoding/json"
	"fmt"
	"os"

	"vehicle-route-optimizer/internal/domain"
)

const defaultNotes = "Distances are in scaled units (Euclidean * 100)."

type SystemRecord struct {
	Platform string `json:"platform"`
	CPU      string `json:"cpu"`
	Memory   string `json:"memory"`
}

// SummaryRecord is the JSON shape of summary.json.
type SummaryRecord struct {
	RunID                     string        `json:"run_id,omitempty"`
	NumLocations              int           `json:"num_locations"`
	NumVehicles               int           `json:"num_vehicles"`
	Seed                      int64         `json:"seed"`
	DistanceSource            string        `json:"distance_source"`
	NaiveTotalDistance        int           `json:"naive_total_distance"`
	OptimizedTotalDistance    int           `json:"optimized_total_distance"`
	PercentImprovementVsNaive *float64      `json:"percent_improvement_vs_naive"`
	Notes                     string        `json:"notes"`
	System                    *SystemRecord `json:"system,omitempty"`
}

// NewSummaryRecord maps a run to its exported summary.
func NewSummaryRecord(run *domain.Run) SummaryRecord {
	s := run.Summary()

	notes := defaultNotes
	if s.DistanceSource != "euclidean" {
		notes = fmt.Sprintf("Distances are in meters (%s).", s.DistanceSource)
	}

	rec := SummaryRecord{
		RunID:                     s.ID,
		NumLocations:              s.NumLocations,
		NumVehicles:               s.NumVehicles,
		Seed:                      s.Seed,
		DistanceSource:            s.DistanceSource,
		NaiveTotalDistance:        s.NaiveTotal,
		OptimizedTotalDistance:    s.OptimizedTotal,
		PercentImprovementVsNaive: s.ImprovementPercent,
		Notes:                     notes,
	}
	if run.System != nil {
		rec.System = &SystemRecord{Platform: run.System.Platform, CPU: run.System.CPU, Memory: run.System.Memory}
	}
	return rec
}

// WriteSummaryJSON writes the summary as indented JSON.
func WriteSummaryJSON(path string, rec SummaryRecord) error {
	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("write summary: encode: %w", err)
	}

	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %q: %w", path, err)
	}

	return nil
}
