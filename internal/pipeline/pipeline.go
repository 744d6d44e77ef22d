// Package pipeline orchestrates image analysis: loading, working-scale
// resizes, segmentation, point sampling and palette extraction. It owns
// the public operation contracts, which degrade to well-typed defaults
// instead of failing.
package pipeline

import (
	"context"
	"errors"
	"image"
	"math/rand"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/stipple/internal/colour"
	"github.com/jmylchreest/stipple/internal/geometry"
	stippleimage "github.com/jmylchreest/stipple/internal/image"
	"github.com/jmylchreest/stipple/internal/segment"
	"github.com/jmylchreest/stipple/pkg/pointcloud"
)

// Options configures a Pipeline. Zero-value fields fall back to
// defaults.
type Options struct {
	// Loader resolves and decodes image sources. Defaults to a
	// SmartLoader handling files, URLs and data URIs.
	Loader stippleimage.Loader

	// Logger receives degradation warnings and progress output.
	// Defaults to a no-op logger.
	Logger hclog.Logger

	// Rand is the randomness source shared by point sampling and the
	// stochastic palette pipeline. A nil source is seeded from the
	// clock.
	Rand *rand.Rand

	// Segment, Sample and Stochastic hold the analysis thresholds.
	Segment    segment.Config
	Sample     geometry.SampleConfig
	Stochastic colour.StochasticConfig
}

// Pipeline runs the analysis operations. Each invocation decodes its own
// buffer and holds no state afterwards; the shared randomness source
// makes one instance unsafe for concurrent use.
type Pipeline struct {
	loader     stippleimage.Loader
	logger     hclog.Logger
	rng        *rand.Rand
	segCfg     segment.Config
	sampleCfg  geometry.SampleConfig
	paletteCfg colour.StochasticConfig
}

// New creates a pipeline from the given options.
func New(opts Options) *Pipeline {
	loader := opts.Loader
	if loader == nil {
		loader = stippleimage.NewSmartLoader()
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- analysis randomness is aesthetic, not cryptographic
	}

	segCfg := opts.Segment
	if segCfg == (segment.Config{}) {
		segCfg = segment.DefaultConfig()
	}
	sampleCfg := opts.Sample
	if sampleCfg == (geometry.SampleConfig{}) {
		sampleCfg = geometry.DefaultSampleConfig()
	}
	paletteCfg := opts.Stochastic
	if paletteCfg == (colour.StochasticConfig{}) {
		paletteCfg = colour.DefaultStochasticConfig()
	}

	return &Pipeline{
		loader:     loader,
		logger:     logger,
		rng:        rng,
		segCfg:     segCfg,
		sampleCfg:  sampleCfg,
		paletteCfg: paletteCfg,
	}
}

// GenerateSphere returns count points evenly distributed on a sphere of
// the given radius. Deterministic; used directly and as the fallback for
// ProcessImageToPoints.
func (p *Pipeline) GenerateSphere(count int, radius float64) *pointcloud.GeometryResult {
	if count < 1 {
		p.logger.Warn("clamping point count", "requested", count, "used", 1)
		count = 1
	}
	return geometry.Sphere(count, radius)
}

// ProcessImageToPoints converts an image source into a point cloud of
// exactly count points. It never fails: decode errors, fully transparent
// images and invalid counts all degrade to the sphere distribution, with
// the cause logged.
func (p *Pipeline) ProcessImageToPoints(ctx context.Context, src string, count int, scale float64) *pointcloud.GeometryResult {
	if count < 1 {
		p.logger.Warn("clamping point count", "requested", count, "used", 1)
		count = 1
	}

	img, err := p.load(ctx, src)
	if err != nil {
		p.logger.Warn("falling back to sphere geometry", "source", src, "error", err)
		return geometry.Sphere(count, scale)
	}

	working := stippleimage.WorkingBuffer(img, p.sampleCfg.WorkingWidth)

	cls, err := segment.Classify(working, p.segCfg)
	if err != nil {
		p.logger.Warn("falling back to sphere geometry", "source", src, "error", err)
		return geometry.Sphere(count, scale)
	}

	result, err := geometry.Sample(working, cls, count, scale, p.sampleCfg, p.rng)
	if err != nil {
		if errors.Is(err, geometry.ErrNoCandidates) {
			p.logger.Warn("image has no opaque pixels, falling back to sphere geometry", "source", src)
		} else {
			p.logger.Warn("falling back to sphere geometry", "source", src, "error", err)
		}
		return geometry.Sphere(count, scale)
	}

	return result
}

// ExtractColorsFromImage extracts the six-role palette from an image
// source as lowercase hex strings in the fixed role order. It never
// fails: decode errors return an empty slice, which callers treat as
// "extraction failed, keep prior colors".
func (p *Pipeline) ExtractColorsFromImage(ctx context.Context, src string) []string {
	palette, err := p.ExtractPalette(ctx, src, colour.AlgorithmStochastic)
	if err != nil {
		p.logger.Warn("palette extraction failed", "source", src, "error", err)
		return []string{}
	}
	return palette.Hex()
}

// ExtractPalette runs the named extraction algorithm on an image source
// and returns the full palette. Unlike ExtractColorsFromImage it surfaces
// errors, for diagnostic callers.
func (p *Pipeline) ExtractPalette(ctx context.Context, src string, alg colour.Algorithm) (*colour.Palette, error) {
	img, err := p.load(ctx, src)
	if err != nil {
		return nil, err
	}

	// The stochastic extractor classifies the full analysis grid, so the
	// subsampling stride is forced to 1 regardless of the sampler-scale
	// configuration.
	gridSegCfg := p.segCfg
	gridSegCfg.SampleStride = 1

	opts := colour.ExtractorOptions{
		Rand:       p.rng,
		Segment:    gridSegCfg,
		Stochastic: p.paletteCfg,
		KMeans:     colour.DefaultKMeansConfig(),
	}

	extractor, err := colour.NewExtractor(alg, opts)
	if err != nil {
		return nil, err
	}

	return extractor.Extract(img)
}

// Inspect loads an image, resizes it to the working width and returns the
// segmentation diagnostics along with the working bounds. It is the only
// operation that surfaces errors directly.
func (p *Pipeline) Inspect(ctx context.Context, src string) (*segment.Classification, image.Rectangle, error) {
	img, err := p.load(ctx, src)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	working := stippleimage.WorkingBuffer(img, p.sampleCfg.WorkingWidth)

	cls, err := segment.Classify(working, p.segCfg)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	return cls, working.Bounds(), nil
}

// load resolves a source (directories pick a random member) and decodes
// it.
func (p *Pipeline) load(ctx context.Context, src string) (image.Image, error) {
	resolved, err := stippleimage.ResolveImagePath(src)
	if err != nil {
		return nil, err
	}
	if resolved != src {
		p.logger.Debug("resolved image source", "source", src, "selected", resolved)
	}
	return p.loader.Load(ctx, resolved)
}
