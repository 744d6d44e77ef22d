package colour

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DominantExtractor fills the palette roles from the image's weighted
// dominant colours. Deterministic given the image.
type DominantExtractor struct {
	// candidates is how many weighted dominant colours to request before
	// role mapping.
	candidates int
}

// NewDominantExtractor creates a dominant-colour extractor.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{candidates: 24}
}

// Extract asks the dominant-colour finder for a weighted candidate list
// and maps it onto the six roles.
func (e *DominantExtractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	found := dominantcolor.FindWeight(img, e.candidates)
	if len(found) == 0 {
		// Keep downstream role mapping alive on degenerate input.
		found = append(found, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	cands := make([]weightedColour, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		cands = append(cands, weightedColour{col: col.Clamped(), weight: w})
	}

	return assignRoles(cands), nil
}
