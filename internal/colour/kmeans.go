package colour

import (
	"fmt"
	"image"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// KMeansConfig holds the clustering parameters.
type KMeansConfig struct {
	// Clusters is the number of clusters to partition the samples into.
	// More clusters than roles gives the role mapping a wider choice.
	Clusters int

	// MaxSamples caps how many pixels are fed to the clusterer; large
	// images are grid-subsampled down to roughly this many observations.
	MaxSamples int
}

// DefaultKMeansConfig returns the default clustering parameters.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{
		Clusters:   10,
		MaxSamples: 12000,
	}
}

// Validate validates the clustering configuration.
func (c KMeansConfig) Validate() error {
	if c.Clusters < RoleCount {
		return fmt.Errorf("cluster count must be at least %d, got %d", RoleCount, c.Clusters)
	}
	if c.MaxSamples < 1 {
		return fmt.Errorf("max samples must be at least 1, got %d", c.MaxSamples)
	}
	return nil
}

// KMeansExtractor fills the palette roles from k-means cluster centres.
// Unlike the stochastic pipeline it is deterministic apart from the
// clusterer's own initialisation.
type KMeansExtractor struct {
	cfg KMeansConfig
}

// NewKMeansExtractor creates a clustering extractor.
func NewKMeansExtractor(cfg KMeansConfig) *KMeansExtractor {
	return &KMeansExtractor{cfg: cfg}
}

// Extract grid-samples the image into normalised RGB observations,
// partitions them, and maps the population-weighted cluster centres onto
// the six roles.
func (e *KMeansExtractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kmeans config: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	// Subsample to keep clustering tractable on large images.
	step := 1
	if w*h > e.cfg.MaxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(e.cfg.MaxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(w*h, e.cfg.MaxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, fmt.Errorf("image has no opaque pixels")
	}

	k := min(e.cfg.Clusters, len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("failed to partition samples: %w", err)
	}
	if len(cc) == 0 {
		return nil, fmt.Errorf("clustering produced no clusters")
	}

	cands := make([]weightedColour, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		cands = append(cands, weightedColour{col: col, weight: float64(len(c.Observations))})
	}

	// Heaviest clusters first so role ties resolve toward dominant tones.
	sort.Slice(cands, func(i, j int) bool {
		return cands[i].weight > cands[j].weight
	})

	return assignRoles(cands), nil
}
