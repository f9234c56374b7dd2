package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vehicle-route-optimizer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPoints = []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}

func TestWriteRouteCSVs(t *testing.T) {
	dir := t.TempDir()
	routes := []domain.Route{{0, 1, 3, 2, 0}, {0, 0}}

	paths, err := WriteRouteCSVs(dir, "routes_optimized", routes, testPoints)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "routes_optimized_vehicle0.csv"), paths[0])

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"vehicle_id", "step", "node", "x", "y"}, records[0])
	assert.Equal(t, []string{"0", "2", "3", "10", "10"}, records[3])

	empty, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(empty), "\n"), "header plus two depot rows")
}

func TestWriteRouteCSVsRejectsUnknownNode(t *testing.T) {
	_, err := WriteRouteCSVs(t.TempDir(), "bad", []domain.Route{{0, 9, 0}}, testPoints)
	require.Error(t, err)
}

func TestWriteSummaryJSON(t *testing.T) {
	run := &domain.Run{
		ID:             "run-1",
		NumLocations:   4,
		NumVehicles:    1,
		Seed:           42,
		DistanceSource: "euclidean",
		NaiveTotal:     5000,
		OptimizedTotal: 4000,
	}
	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, WriteSummaryJSON(path, NewSummaryRecord(run)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.EqualValues(t, 4, got["num_locations"])
	assert.EqualValues(t, 5000, got["naive_total_distance"])
	assert.EqualValues(t, 4000, got["optimized_total_distance"])
	assert.EqualValues(t, 20, got["percent_improvement_vs_naive"])
	assert.Equal(t, defaultNotes, got["notes"])
	assert.NotContains(t, got, "system")
}

func TestSummaryImprovementIsNullWithoutNaiveDistance(t *testing.T) {
	rec := NewSummaryRecord(&domain.Run{DistanceSource: "ors:driving-car"})
	assert.Nil(t, rec.PercentImprovementVsNaive)
	assert.Contains(t, rec.Notes, "meters")
}

func TestWriteRoutesSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.svg")
	routes := []domain.Route{{0, 1, 3, 2, 0}, {0, 0}}

	require.NoError(t, WriteRoutesSVG(path, "Optimized <GLS>", testPoints, routes))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	svg := string(raw)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, 1, strings.Count(svg, "<polyline"), "empty routes are not drawn")
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, "Optimized &lt;GLS&gt;")
}
