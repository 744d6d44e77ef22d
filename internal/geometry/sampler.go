package geometry

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/jmylchreest/stipple/internal/segment"
	"github.com/jmylchreest/stipple/pkg/pointcloud"
)

// ErrNoCandidates is returned when an image contains no pixel opaque
// enough to sample. Callers are expected to fall back to a procedural
// distribution such as Sphere.
var ErrNoCandidates = errors.New("image has no opaque pixels to sample")

// SampleConfig holds the sampler's scoring and layout parameters. The
// defaults are tuned for stylised particle rendering; all of them are
// configuration rather than constants so they can be recalibrated without
// code changes.
type SampleConfig struct {
	// WorkingWidth is the width, in pixels, the source image should be
	// resized to before sampling. Height preserves the aspect ratio.
	// The sampler itself does not resize; callers pass a buffer already
	// at this width.
	WorkingWidth int

	// MinAlpha is the alpha value a pixel must exceed to become a
	// candidate.
	MinAlpha uint8

	// EdgeNormDivisor scales the raw brightness-gradient magnitude down
	// to the [0,1] edge strength.
	EdgeNormDivisor float64

	// EdgeBoostThreshold is the edge strength above which a candidate
	// receives the edge boost.
	EdgeBoostThreshold float64

	// EdgeBoostWeight multiplies the edge strength when it is added to
	// the importance score.
	EdgeBoostWeight float64

	// ForegroundBonus is the flat importance added to every candidate not
	// classified as background.
	ForegroundBonus float64

	// BackgroundEdgeCutoff is the edge strength at or above which a pixel
	// is never classified as background, regardless of its colour class.
	BackgroundEdgeCutoff float64

	// ScanlineSteps is the number of discrete rows the normalised y axis
	// is quantised to, producing visible horizontal banding as a
	// stylistic effect.
	ScanlineSteps int

	// ForegroundLift scales the forward depth offset of foreground
	// points by their normalised brightness.
	ForegroundLift float64

	// BackgroundDrop is the flat backward depth offset applied to
	// background points.
	BackgroundDrop float64

	// BrightnessRelief scales how much a background point's brightness
	// pulls it back toward the viewer.
	BrightnessRelief float64

	// EdgePush scales the small additional forward offset proportional
	// to edge strength.
	EdgePush float64
}

// DefaultSampleConfig returns the default sampler parameters.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		WorkingWidth:         600,
		MinAlpha:             20,
		EdgeNormDivisor:      100,
		EdgeBoostThreshold:   0.2,
		EdgeBoostWeight:      1000,
		ForegroundBonus:      500,
		BackgroundEdgeCutoff: 0.5,
		ScanlineSteps:        240,
		ForegroundLift:       0.1,
		BackgroundDrop:       0.5,
		BrightnessRelief:     0.15,
		EdgePush:             0.05,
	}
}

// Validate validates the sampler configuration.
func (c SampleConfig) Validate() error {
	if c.WorkingWidth < 1 {
		return fmt.Errorf("working width must be at least 1, got %d", c.WorkingWidth)
	}
	if c.EdgeNormDivisor <= 0 {
		return fmt.Errorf("edge norm divisor must be positive, got %g", c.EdgeNormDivisor)
	}
	if c.ScanlineSteps < 1 {
		return fmt.Errorf("scanline steps must be at least 1, got %d", c.ScanlineSteps)
	}
	if c.BackgroundEdgeCutoff < 0 || c.BackgroundEdgeCutoff > 1 {
		return fmt.Errorf("background edge cutoff must be in [0,1], got %g", c.BackgroundEdgeCutoff)
	}
	return nil
}

// candidate is one sufficiently opaque pixel scored for selection.
// Candidates are created per pixel, consumed once during selection, then
// discarded.
type candidate struct {
	x, y       float64
	brightness float64
	edge       float64
	importance float64
	background bool
}

// Sample scores every sufficiently opaque pixel of the working buffer by
// edge strength, foreground bias and randomness, selects the count
// highest-scoring candidates, and emits their normalised 3-D positions
// with depth and per-point metadata. If fewer candidates exist than
// requested, the selection is padded by cyclically duplicating points
// with a small positional jitter, so the output arrays always have
// exactly count entries.
//
// The randomised importance score means repeated calls on the same image
// yield different point sets. Supplying a seeded rng makes a run
// reproducible; a nil rng falls back to a time-seeded source.
func Sample(img *image.NRGBA, cls *segment.Classification, count int, scale float64, cfg SampleConfig, rng *rand.Rand) (*pointcloud.GeometryResult, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if cls == nil {
		return nil, fmt.Errorf("classification cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("point count must be at least 1, got %d", count)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampler config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- sampling randomness is aesthetic, not cryptographic
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, ErrNoCandidates
	}

	// Brightness field over the whole buffer. Transparent pixels still
	// contribute their RGB values here; only candidate selection filters
	// on alpha. Neighbours outside the image read as brightness 0.
	bright := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			bright[y*w+x] = (float64(img.Pix[i]) + float64(img.Pix[i+1]) + float64(img.Pix[i+2])) / 3.0
		}
	}
	brightnessAt := func(x, y int) float64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return bright[y*w+x]
	}

	minB := math.MaxFloat64
	maxB := -math.MaxFloat64
	candidates := make([]candidate, 0, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			if img.Pix[i+3] <= cfg.MinAlpha {
				continue
			}
			r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]

			brightness := bright[y*w+x]
			if brightness < minB {
				minB = brightness
			}
			if brightness > maxB {
				maxB = brightness
			}

			// Central differences of brightness; the magnitude is scaled
			// down and clamped to [0,1].
			gx := brightnessAt(x+1, y) - brightnessAt(x-1, y)
			gy := brightnessAt(x, y+1) - brightnessAt(x, y-1)
			edge := math.Sqrt(gx*gx+gy*gy) / cfg.EdgeNormDivisor
			if edge > 1 {
				edge = 1
			}

			// Hard edges are never background, even when their colour
			// class statistically is.
			background := edge < cfg.BackgroundEdgeCutoff && cls.IsBackground(r, g, b)

			importance := rng.Float64() * 100
			if edge > cfg.EdgeBoostThreshold {
				importance += edge * cfg.EdgeBoostWeight
			}
			if !background {
				importance += cfg.ForegroundBonus
			}

			candidates = append(candidates, candidate{
				x:          float64(x),
				y:          float64(y),
				brightness: brightness,
				edge:       edge,
				importance: importance,
				background: background,
			})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	// Rank by importance; the random component breaks ties between
	// similar pixels differently on every run.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].importance > candidates[j].importance
	})

	selected := candidates
	if len(selected) > count {
		selected = selected[:count]
	}

	// Pad sparse images by cycling through the selected points with a
	// jitter of up to half a pixel, so the output length invariant holds
	// even when far fewer opaque pixels exist than requested.
	base := len(selected)
	for i := 0; len(selected) < count; i++ {
		dup := selected[i%base]
		dup.x += rng.Float64() - 0.5
		dup.y += rng.Float64() - 0.5
		selected = append(selected, dup)
	}

	res := &pointcloud.GeometryResult{
		Positions:    make([]float32, 0, count*3),
		Brightness:   make([]float32, 0, count),
		EdgeStrength: make([]float32, 0, count),
		IsBackground: make([]float32, 0, count),
	}

	rangeB := maxB - minB
	aspect := float64(w) / float64(h)
	steps := float64(cfg.ScanlineSteps)

	for _, c := range selected {
		// Normalise to [-1,1] with y flipped so image-up maps to
		// positive, then quantise y onto the scanline grid.
		nx := c.x/float64(w)*2 - 1
		ny := 1 - c.y/float64(h)*2
		ny = math.Floor(ny*steps) / steps

		nb := 1.0
		if rangeB > 0 {
			nb = (c.brightness - minB) / rangeB
		}

		// Foreground points float slightly forward; background points
		// drop well behind, with brightness pulling them partway back.
		var z float64
		if c.background {
			z = -cfg.BackgroundDrop*scale + nb*cfg.BrightnessRelief*scale + c.edge*cfg.EdgePush*scale
		} else {
			z = nb*cfg.ForegroundLift*scale + c.edge*cfg.EdgePush*scale
		}

		res.Positions = append(res.Positions,
			float32(nx*aspect*scale*2),
			float32(ny*scale*2),
			float32(z),
		)
		res.Brightness = append(res.Brightness, float32(nb))
		res.EdgeStrength = append(res.EdgeStrength, float32(c.edge))
		if c.background {
			res.IsBackground = append(res.IsBackground, 1)
		} else {
			res.IsBackground = append(res.IsBackground, 0)
		}
	}

	return res, nil
}
