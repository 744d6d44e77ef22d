// Package segment classifies an image's pixels into background and
// foreground colour classes using a radial-zone histogram. Colours whose
// samples concentrate near the image border are assumed to be backdrop;
// this is a cheap statistical proxy for foreground separation that needs
// no trained model.
package segment

import (
	"fmt"
	"image"
	"slices"
)

// ClassKey is a coarse quantisation bucket identifying pixels of visually
// similar colour. Each channel keeps its top 4 bits, giving 16 levels per
// channel packed into a 12-bit key. Many distinct RGB values share one key;
// that collapse is intentional noise tolerance.
type ClassKey uint16

// KeyOf returns the class key for an RGB triple.
func KeyOf(r, g, b uint8) ClassKey {
	return ClassKey(r>>4)<<8 | ClassKey(g>>4)<<4 | ClassKey(b>>4)
}

// ClassStats holds the accumulated per-key sample counts for one colour
// class. Built once per image and read-only thereafter.
type ClassStats struct {
	// Total is the number of sampled pixels mapped to the key.
	Total int

	// Outer is how many of those samples fell in the outer zone.
	Outer int

	// R, G, B hold the first sampled colour seen for the key, kept as a
	// representative for diagnostics and swatch previews.
	R, G, B uint8
}

// OuterRatio returns the fraction of the class's samples that fell in the
// outer zone.
func (s ClassStats) OuterRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Outer) / float64(s.Total)
}

// Config holds the classifier thresholds. The zone radius and background
// ratio are empirically tuned; they are configuration rather than
// constants so they can be recalibrated without code changes.
type Config struct {
	// SampleStride is the grid step, in pixels, at which the classifier
	// samples the image in both axes. Only the subsampled grid informs
	// classification; key lookups afterwards apply to any pixel.
	SampleStride int

	// MinAlpha is the alpha threshold below which a sampled pixel is
	// treated as transparent and ignored.
	MinAlpha uint8

	// OuterRadiusSq is the squared normalised radius beyond which a pixel
	// counts as part of the outer zone, after mapping its coordinate to
	// [-1,1] on both axes. The default of 0.3 deliberately over-captures
	// border content as potential background.
	OuterRadiusSq float64

	// BackgroundRatio is the outer-to-total sample ratio above which a
	// colour class is classified as background.
	BackgroundRatio float64
}

// DefaultConfig returns the default classifier thresholds.
func DefaultConfig() Config {
	return Config{
		SampleStride:    4,
		MinAlpha:        50,
		OuterRadiusSq:   0.3,
		BackgroundRatio: 0.4,
	}
}

// Validate validates the classifier configuration.
func (c Config) Validate() error {
	if c.SampleStride < 1 {
		return fmt.Errorf("sample stride must be at least 1, got %d", c.SampleStride)
	}
	if c.OuterRadiusSq < 0 {
		return fmt.Errorf("outer radius squared must not be negative, got %g", c.OuterRadiusSq)
	}
	if c.BackgroundRatio < 0 || c.BackgroundRatio > 1 {
		return fmt.Errorf("background ratio must be in [0,1], got %g", c.BackgroundRatio)
	}
	return nil
}

// Classification is the immutable result of classifying one image. It is a
// plain per-call value: nothing is cached or shared across invocations.
type Classification struct {
	background map[ClassKey]struct{}
	stats      map[ClassKey]ClassStats
	samples    int
}

// Classify builds per-class colour statistics on a subsampled grid and
// marks as background every class whose samples concentrate in the outer
// zone. The result is fully deterministic for a given pixel buffer.
func Classify(img *image.NRGBA, cfg Config) (*Classification, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier config: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	stats := make(map[ClassKey]ClassStats)
	samples := 0

	for y := 0; y < h; y += cfg.SampleStride {
		for x := 0; x < w; x += cfg.SampleStride {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
			if a < cfg.MinAlpha {
				continue
			}

			// Map the coordinate to [-1,1] on both axes, centred on the
			// image middle.
			nx := float64(x)/float64(w)*2 - 1
			ny := float64(y)/float64(h)*2 - 1
			outer := nx*nx+ny*ny > cfg.OuterRadiusSq

			key := KeyOf(r, g, b)
			st, ok := stats[key]
			if !ok {
				st = ClassStats{R: r, G: g, B: b}
			}
			st.Total++
			if outer {
				st.Outer++
			}
			stats[key] = st
			samples++
		}
	}

	background := make(map[ClassKey]struct{})
	for key, st := range stats {
		if st.OuterRatio() > cfg.BackgroundRatio {
			background[key] = struct{}{}
		}
	}

	return &Classification{
		background: background,
		stats:      stats,
		samples:    samples,
	}, nil
}

// IsBackground reports whether a colour falls into a class that was
// classified as background.
func (c *Classification) IsBackground(r, g, b uint8) bool {
	_, ok := c.background[KeyOf(r, g, b)]
	return ok
}

// IsBackgroundKey reports whether a class key was classified as background.
func (c *Classification) IsBackgroundKey(key ClassKey) bool {
	_, ok := c.background[key]
	return ok
}

// Keys returns every observed class key in ascending order.
func (c *Classification) Keys() []ClassKey {
	keys := make([]ClassKey, 0, len(c.stats))
	for k := range c.stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// BackgroundKeys returns the background class keys in ascending order.
func (c *Classification) BackgroundKeys() []ClassKey {
	keys := make([]ClassKey, 0, len(c.background))
	for k := range c.background {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Stats returns the accumulated statistics for a class key.
func (c *Classification) Stats(key ClassKey) (ClassStats, bool) {
	st, ok := c.stats[key]
	return st, ok
}

// ClassCount returns the number of distinct colour classes observed.
func (c *Classification) ClassCount() int {
	return len(c.stats)
}

// BackgroundCount returns the number of classes classified as background.
func (c *Classification) BackgroundCount() int {
	return len(c.background)
}

// SampleCount returns the total number of opaque pixels sampled.
func (c *Classification) SampleCount() int {
	return c.samples
}
