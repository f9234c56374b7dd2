package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"vehicle-route-optimizer/internal/domain"
)

// WriteRouteCSVs writes one file per vehicle, <dir>/<prefix>_vehicle<k>.csv,
// with a row per visited node: vehicle_id, step, node, x, y.
// It returns the written paths in vehicle order.
func WriteRouteCSVs(dir, prefix string, routes []domain.Route, points []domain.Point) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("write route csv: create %q: %w", dir, err)
	}

	paths := make([]string, 0, len(routes))
	for vid, route := range routes {
		path := filepath.Join(dir, fmt.Sprintf("%s_vehicle%d.csv", prefix, vid))
		if err := writeRouteCSV(path, vid, route, points); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func writeRouteCSV(path string, vid int, route domain.Route, points []domain.Point) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write route csv: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write route csv: close %q: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"vehicle_id", "step", "node", "x", "y"}); err != nil {
		return fmt.Errorf("write route csv: header: %w", err)
	}

	for step, node := range route {
		if node < 0 || node >= len(points) {
			return fmt.Errorf("write route csv: vehicle %d step %d: node %d has no coordinates", vid, step, node)
		}
		p := points[node]
		record := []string{
			strconv.Itoa(vid),
			strconv.Itoa(step),
			strconv.Itoa(node),
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write route csv: vehicle %d step %d: %w", vid, step, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write route csv: flush %q: %w", path, err)
	}

	return nil
}
