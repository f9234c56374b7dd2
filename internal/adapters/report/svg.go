package report

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"vehicle-route-optimizer/internal/domain"
)

const (
	svgSize   = 640.0
	svgMargin = 40.0
)

var routeColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// WriteRoutesSVG draws customers, the depot (points[0], a square) and one
// coloured polyline per non-empty route.
func WriteRoutesSVG(path, title string, points []domain.Point, routes []domain.Route) error {
	if len(points) == 0 {
		return fmt.Errorf("write routes svg: no points")
	}

	svg, err := renderRoutesSVG(title, points, routes)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("write routes svg: %q: %w", path, err)
	}
	return nil
}

func renderRoutesSVG(title string, points []domain.Point, routes []domain.Route) (string, error) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	scale := (svgSize - 2*svgMargin) / span

	// SVG y grows downwards.
	project := func(p domain.Point) (float64, float64) {
		return svgMargin + (p.X-minX)*scale, svgSize - svgMargin - (p.Y-minY)*scale
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		svgSize, svgSize, svgSize, svgSize)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="white"/>`+"\n")
	fmt.Fprintf(&b, `<text x="%.0f" y="24" font-family="sans-serif" font-size="16" text-anchor="middle">%s</text>`+"\n",
		svgSize/2, html.EscapeString(title))

	for vid, route := range routes {
		if route.IsEmpty() {
			continue
		}
		coords := make([]string, 0, len(route))
		for _, node := range route {
			if node < 0 || node >= len(points) {
				return "", fmt.Errorf("write routes svg: vehicle %d: node %d has no coordinates", vid, node)
			}
			x, y := project(points[node])
			coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			strings.Join(coords, " "), routeColors[vid%len(routeColors)])
	}

	for i, p := range points[1:] {
		x, y := project(p)
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="4" fill="#333"><title>%d</title></circle>`+"\n", x, y, i+1)
	}

	dx, dy := project(points[0])
	fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="12" height="12" fill="black"><title>depot</title></rect>`+"\n", dx-6, dy-6)

	b.WriteString("</svg>\n")
	return b.String(), nil
}
