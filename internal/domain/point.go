package domain

// Immutable planar coordinates of a location. For road-network providers
// X is the longitude and Y the latitude.
type Point struct {
	X float64
	Y float64
}

// Return the point as [lon, lat] for external API compatibility.
func (p Point) LonLat() []float64 { return []float64{p.X, p.Y} }
