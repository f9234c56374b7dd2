package cache

import (
	"encoding/binary"
	"fmt"
	"math"

	"vehicle-route-optimizer/internal/domain"

	"github.com/cespare/xxhash/v2"
)

// MatrixKey identifies the matrix of a distance source over an ordered
// point set. Identical coordinates in the same order give the same key.
func MatrixKey(source string, points []domain.Point) string {
	h := xxhash.New()
	var buf [16]byte
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Y))
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%s:%d:%016x", source, len(points), h.Sum64())
}
