// Package pointcloud defines the wire types for generated point-cloud
// geometry. It has no dependencies on the rest of the module so external
// consumers (renderers, tooling) can import it directly.
package pointcloud

import "fmt"

// GeometryResult holds a fixed-size point cloud produced by the sampler or
// the sphere generator. Positions are interleaved x,y,z triples, so its
// length is always three times the point count. The per-point attribute
// slices are populated by the image sampler only; the sphere generator
// leaves them nil and they are omitted from JSON output.
type GeometryResult struct {
	// Positions holds x,y,z triples for every point.
	Positions []float32 `json:"positions"`

	// Brightness is the normalized per-point brightness in [0,1].
	Brightness []float32 `json:"brightness,omitempty"`

	// EdgeStrength is the per-point edge magnitude in [0,1].
	EdgeStrength []float32 `json:"edgeStrength,omitempty"`

	// IsBackground is 1 for points sampled from background-classified
	// pixels and 0 otherwise. Float-typed so renderers can upload the
	// slice as a vertex attribute without conversion.
	IsBackground []float32 `json:"isBackground,omitempty"`
}

// PointCount returns the number of points in the result.
func (g *GeometryResult) PointCount() int {
	return len(g.Positions) / 3
}

// Validate checks the structural invariants of the result: positions come
// in complete x,y,z triples and every populated attribute slice has exactly
// one entry per point.
func (g *GeometryResult) Validate() error {
	if len(g.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(g.Positions))
	}

	count := g.PointCount()
	if g.Brightness != nil && len(g.Brightness) != count {
		return fmt.Errorf("brightness length %d does not match point count %d", len(g.Brightness), count)
	}
	if g.EdgeStrength != nil && len(g.EdgeStrength) != count {
		return fmt.Errorf("edgeStrength length %d does not match point count %d", len(g.EdgeStrength), count)
	}
	if g.IsBackground != nil && len(g.IsBackground) != count {
		return fmt.Errorf("isBackground length %d does not match point count %d", len(g.IsBackground), count)
	}

	return nil
}
