// Package geometry produces point-cloud geometry: image-driven sampling
// and the procedural sphere used as its fallback distribution.
package geometry

import (
	"math"

	"github.com/jmylchreest/stipple/pkg/pointcloud"
)

// Sphere returns count points evenly distributed on a sphere of the given
// radius, laid out on a golden-angle (Fibonacci) spiral. The distribution
// is fully deterministic. Only positions are populated; the per-point
// attribute slices stay nil. A count of zero or less yields an empty
// result.
func Sphere(count int, radius float64) *pointcloud.GeometryResult {
	goldenAngle := math.Pi * (3 - math.Sqrt(5))

	positions := make([]float32, 0, max(count, 0)*3)
	for i := 0; i < count; i++ {
		// Evenly spaced latitudes, offset by half a step to avoid poles.
		t := (float64(i) + 0.5) / float64(count)
		y := 1 - 2*t
		r := math.Sqrt(1 - y*y)
		theta := goldenAngle * float64(i)

		positions = append(positions,
			float32(math.Cos(theta)*r*radius),
			float32(y*radius),
			float32(math.Sin(theta)*r*radius),
		)
	}

	return &pointcloud.GeometryResult{Positions: positions}
}
