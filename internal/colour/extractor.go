package colour

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/jmylchreest/stipple/internal/segment"
)

// Extractor defines the interface for palette extraction algorithms.
// Every implementation fills all six roles of the returned palette.
type Extractor interface {
	// Extract extracts the six-role colour palette from an image.
	Extract(img image.Image) (*Palette, error)
}

// Algorithm represents the palette extraction algorithm type.
type Algorithm string

const (
	// AlgorithmStochastic runs the randomised multi-stage selection
	// pipeline. It is the default and the only non-deterministic
	// algorithm.
	AlgorithmStochastic Algorithm = "stochastic"

	// AlgorithmKMeans clusters grid-sampled pixels with k-means and maps
	// the cluster centres onto the roles.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant picks weighted dominant colours and maps them
	// onto the roles.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmStochastic,
		AlgorithmKMeans,
		AlgorithmDominant,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ExtractorOptions carries the shared inputs of the extraction
// algorithms. Zero-value fields fall back to defaults.
type ExtractorOptions struct {
	// Rand is the randomness source for the stochastic pipeline. A nil
	// source leaves the extractor to seed itself from the clock.
	Rand *rand.Rand

	// Segment holds the background classifier thresholds used by the
	// stochastic algorithm.
	Segment segment.Config

	// Stochastic holds the randomised pipeline parameters.
	Stochastic StochasticConfig

	// KMeans holds the clustering parameters.
	KMeans KMeansConfig
}

// DefaultExtractorOptions returns options with every config at its
// default.
func DefaultExtractorOptions() ExtractorOptions {
	return ExtractorOptions{
		Segment:    segment.DefaultConfig(),
		Stochastic: DefaultStochasticConfig(),
		KMeans:     DefaultKMeansConfig(),
	}
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognised.
func NewExtractor(alg Algorithm, opts ExtractorOptions) (Extractor, error) {
	switch alg {
	case AlgorithmStochastic:
		return NewStochasticExtractor(opts.Stochastic, opts.Segment, opts.Rand), nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(opts.KMeans), nil
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}
