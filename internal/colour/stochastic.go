package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sort"
	"time"

	stippleimage "github.com/jmylchreest/stipple/internal/image"
	"github.com/jmylchreest/stipple/internal/segment"
)

// StochasticConfig holds the parameters of the randomised palette
// pipeline.
type StochasticConfig struct {
	// GridSize is the side length of the square analysis grid the image
	// is resized to. Aspect ratio is deliberately not preserved.
	GridSize int

	// PoolMinAlpha is the minimum alpha for a grid pixel to enter either
	// colour pool.
	PoolMinAlpha uint8

	// DistinctMinDistSq is the squared RGB distance a foreground colour
	// must keep from every already-selected candidate.
	DistinctMinDistSq int

	// MaxDistinct caps the number of distinct foreground candidates.
	MaxDistinct int

	// HueJitter, SatJitter and LightJitter are the half-widths of the
	// uniform offsets applied to candidate components.
	HueJitter   float64
	SatJitter   float64
	LightJitter float64

	// ShadowHueWindow is the circular hue distance within which a
	// candidate counts as already complementary to the midtone.
	ShadowHueWindow float64
}

// DefaultStochasticConfig returns the default pipeline parameters.
func DefaultStochasticConfig() StochasticConfig {
	return StochasticConfig{
		GridSize:          64,
		PoolMinAlpha:      128,
		DistinctMinDistSq: 900,
		MaxDistinct:       12,
		HueJitter:         0.05,
		SatJitter:         0.1,
		LightJitter:       0.05,
		ShadowHueWindow:   0.25,
	}
}

// Validate validates the pipeline configuration.
func (c StochasticConfig) Validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("grid size must be at least 1, got %d", c.GridSize)
	}
	if c.DistinctMinDistSq < 0 {
		return fmt.Errorf("distinct distance must not be negative, got %d", c.DistinctMinDistSq)
	}
	if c.MaxDistinct < 1 {
		return fmt.Errorf("max distinct candidates must be at least 1, got %d", c.MaxDistinct)
	}
	if c.HueJitter < 0 || c.SatJitter < 0 || c.LightJitter < 0 {
		return fmt.Errorf("jitter amplitudes must not be negative")
	}
	if c.ShadowHueWindow < 0 || c.ShadowHueWindow > 0.5 {
		return fmt.Errorf("shadow hue window must be in [0,0.5], got %g", c.ShadowHueWindow)
	}
	return nil
}

// fgSample is a coarsely bucketed foreground colour carrying its
// occurrence count and the HSL of its representative. Samples are built
// while scanning the grid, sorted once, and never mutated again.
type fgSample struct {
	rgb     RGB
	count   int
	h, s, l float64
}

// hsl is a working colour for the staged pipeline.
type hsl struct {
	h, s, l float64
}

// StochasticExtractor produces the six-role palette through a multi-stage
// randomised selection pipeline. Re-invocation on identical input is
// expected to yield different results; supplying a seeded rng makes a run
// reproducible.
type StochasticExtractor struct {
	cfg    StochasticConfig
	segCfg segment.Config
	rng    *rand.Rand
}

// NewStochasticExtractor creates the randomised extractor. A nil rng
// falls back to a time-seeded source.
func NewStochasticExtractor(cfg StochasticConfig, segCfg segment.Config, rng *rand.Rand) *StochasticExtractor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- palette variation is aesthetic, not cryptographic
	}
	return &StochasticExtractor{cfg: cfg, segCfg: segCfg, rng: rng}
}

// Extract resizes the image onto the analysis grid, splits its pixels into
// background and foreground pools using the radial-zone classification,
// and runs the staged pipeline to fill all six roles. Degenerate input
// (no qualifying pixels at all) degrades to a neutral-grey foreground and
// a near-black background rather than failing.
func (e *StochasticExtractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor config: %w", err)
	}

	grid := stippleimage.Grid(img, e.cfg.GridSize, e.cfg.GridSize)

	cls, err := segment.Classify(grid, e.segCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to classify analysis grid: %w", err)
	}

	bgPool, fgSamples := buildPools(grid, cls, e.cfg.PoolMinAlpha)
	distinct := distinctCandidates(fgSamples, e.cfg)

	return e.assemble(bgPool, distinct), nil
}

// buildPools splits the grid's qualifying pixels into the raw background
// colour pool and coarsely bucketed foreground samples sorted by
// occurrence. Each pixel lands in exactly one pool.
func buildPools(grid *image.NRGBA, cls *segment.Classification, minAlpha uint8) ([]RGB, []fgSample) {
	bounds := grid.Bounds()
	var bgPool []RGB
	buckets := make(map[[3]uint8]*fgSample)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := grid.PixOffset(x, y)
			r, g, b, a := grid.Pix[i], grid.Pix[i+1], grid.Pix[i+2], grid.Pix[i+3]
			if a < minAlpha {
				continue
			}

			if cls.IsBackground(r, g, b) {
				bgPool = append(bgPool, RGB{R: r, G: g, B: b})
				continue
			}

			key := [3]uint8{r / 10, g / 10, b / 10}
			if s, ok := buckets[key]; ok {
				s.count++
				continue
			}
			rep := RGB{R: key[0] * 10, G: key[1] * 10, B: key[2] * 10}
			h, s, l := rep.HSL()
			buckets[key] = &fgSample{rgb: rep, count: 1, h: h, s: s, l: l}
		}
	}

	samples := make([]fgSample, 0, len(buckets))
	for _, s := range buckets {
		samples = append(samples, *s)
	}

	// Most frequent first; ties break on the representative colour so
	// seeded runs stay reproducible.
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].count != samples[j].count {
			return samples[i].count > samples[j].count
		}
		a, b := samples[i].rgb, samples[j].rgb
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})

	return bgPool, samples
}

// distinctCandidates greedily walks the sorted foreground samples, keeping
// a colour only when its squared RGB distance to every kept colour exceeds
// the configured minimum, so the candidate list spans the image's tonal
// range instead of repeating its dominant hue. An empty pool falls back to
// a single neutral grey.
func distinctCandidates(samples []fgSample, cfg StochasticConfig) []fgSample {
	distinct := make([]fgSample, 0, cfg.MaxDistinct)
	for _, s := range samples {
		if len(distinct) >= cfg.MaxDistinct {
			break
		}
		tooClose := false
		for _, kept := range distinct {
			if rgbDistSq(s.rgb, kept.rgb) <= cfg.DistinctMinDistSq {
				tooClose = true
				break
			}
		}
		if !tooClose {
			distinct = append(distinct, s)
		}
	}

	if len(distinct) == 0 {
		grey := RGB{R: 128, G: 128, B: 128}
		h, s, l := grey.HSL()
		distinct = append(distinct, fgSample{rgb: grey, count: 1, h: h, s: s, l: l})
	}

	return distinct
}

// assemble runs the staged pipeline. Every stage draws from the injected
// rng, so each invocation is independently randomised and a seeded rng
// replays exactly.
func (e *StochasticExtractor) assemble(bgPool []RGB, distinct []fgSample) *Palette {
	rng := e.rng
	var p Palette

	// Background anchor: a 50/50 choice between the pool mean and one
	// random pool sample; near-black when no pool exists.
	anchor := hsl{h: 0, s: 0, l: 0.05}
	if len(bgPool) > 0 {
		var picked RGB
		if rng.Float64() < 0.5 {
			picked = meanRGB(bgPool)
		} else {
			picked = bgPool[rng.Intn(len(bgPool))]
		}
		anchor.h, anchor.s, anchor.l = picked.HSL()
	}

	// Shuffle the leading distinct candidates so the role each colour
	// serves changes run to run.
	shuffled := make([]fgSample, len(distinct))
	copy(shuffled, distinct)
	if len(shuffled) > 6 {
		shuffled = shuffled[:6]
	}
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	// Midtone: first shuffled candidate, lightly jittered, lightness
	// forced into the tonal centre.
	mid := toHSL(shuffled[0])
	mid.h = wrapHue(mid.h + jitter(rng, e.cfg.HueJitter))
	mid.s = clamp01(mid.s + jitter(rng, e.cfg.SatJitter))
	mid.l = clampRange(mid.l, 0.4, 0.6)
	p.Set(RoleMidtone, HSLToRGB(mid.h, mid.s, mid.l))

	// Highlight: the globally lightest candidate or the second shuffled
	// one, lifted to the top of the range.
	var hi hsl
	if rng.Float64() < 0.5 || len(shuffled) < 2 {
		hi = toHSL(lightestOf(distinct))
	} else {
		hi = toHSL(shuffled[1])
	}
	hi.l = math.Max(0.8, clamp01(hi.l+jitter(rng, e.cfg.LightJitter))+0.1)
	p.Set(RoleHighlight, HSLToRGB(hi.h, hi.s, hi.l))

	// Shadow: aim for the midtone's complement. Prefer a candidate whose
	// hue already sits near the target; otherwise take the third shuffled
	// one and force its hue complementary.
	target := wrapHue(mid.h + 0.5)
	sh, found := nearestHue(distinct, target, e.cfg.ShadowHueWindow)
	if !found {
		if len(shuffled) > 2 {
			sh = toHSL(shuffled[2])
		} else {
			sh = toHSL(shuffled[0])
		}
	}
	if d := math.Abs(sh.h - target); d > e.cfg.ShadowHueWindow && d < 1-e.cfg.ShadowHueWindow {
		sh.h = wrapHue(target + jitter(rng, e.cfg.HueJitter))
	}
	sh.s = math.Max(0.6, sh.s)
	sh.l = clampRange(sh.l-0.1, 0.05, 0.25)
	p.Set(RoleShadow, HSLToRGB(sh.h, sh.s, sh.l))

	// Features: fourth shuffled candidate, jitter only, no forcing.
	var ft hsl
	if len(shuffled) > 3 {
		ft = toHSL(shuffled[3])
	} else {
		ft = toHSL(distinct[len(distinct)-1])
	}
	ft.h = wrapHue(ft.h + jitter(rng, e.cfg.HueJitter))
	ft.s = clamp01(ft.s + jitter(rng, e.cfg.SatJitter))
	ft.l = clamp01(ft.l + jitter(rng, e.cfg.LightJitter))
	p.Set(RoleFeatures, HSLToRGB(ft.h, ft.s, ft.l))

	// Details: a fully saturated accent, complementary or triadic to the
	// midtone.
	var dt hsl
	if rng.Float64() < 0.5 {
		dt = hsl{h: wrapHue(mid.h + 0.5), s: 1, l: 0.8}
	} else {
		dt = hsl{h: wrapHue(mid.h + 0.33), s: 1, l: 0.6}
	}
	p.Set(RoleDetails, HSLToRGB(dt.h, dt.s, dt.l))

	// Background: the anchor, desaturated or intensified at random, kept
	// dark with an occasional brightness lift.
	bg := anchor
	bg.h = wrapHue(bg.h + jitter(rng, e.cfg.HueJitter))
	bg.s = clamp01(bg.s * (0.5 + rng.Float64()))
	bg.l = bg.l * (0.8 + rng.Float64()*0.4)
	if rng.Float64() < 0.2 {
		bg.l += 0.15
	}
	bg.l = math.Min(0.25, bg.l)
	p.Set(RoleBackground, HSLToRGB(bg.h, bg.s, clamp01(bg.l)))

	return &p
}

// nearestHue returns the first distinct candidate whose circular hue
// distance to target is within window.
func nearestHue(distinct []fgSample, target, window float64) (hsl, bool) {
	for _, s := range distinct {
		if HueDistance(s.h, target) <= window {
			return toHSL(s), true
		}
	}
	return hsl{}, false
}

// lightestOf returns the distinct candidate with the highest lightness.
func lightestOf(distinct []fgSample) fgSample {
	best := distinct[0]
	for _, s := range distinct[1:] {
		if s.l > best.l {
			best = s
		}
	}
	return best
}

// meanRGB averages a colour pool channel-wise.
func meanRGB(pool []RGB) RGB {
	var r, g, b int
	for _, c := range pool {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(pool)
	return RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

// rgbDistSq returns the squared Euclidean distance between two colours in
// RGB space.
func rgbDistSq(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// jitter returns a uniform offset in (-amount, amount].
func jitter(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}

func toHSL(s fgSample) hsl {
	return hsl{h: s.h, s: s.s, l: s.l}
}
