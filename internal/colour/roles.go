package colour

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// weightedColour is one palette candidate with its relative population,
// produced by the deterministic extraction algorithms before role
// assignment.
type weightedColour struct {
	col    colorful.Color
	weight float64
}

// assignRoles maps a weighted candidate list onto the six fixed palette
// roles. The heaviest candidate becomes the background; of the rest, the
// darkest, median and lightest by luminance fill shadow, midtone and
// highlight, and the two most saturated remaining candidates fill
// features and details. The mapping is deterministic given the candidate
// list; short lists reuse candidates rather than failing.
func assignRoles(cands []weightedColour) *Palette {
	var p Palette
	if len(cands) == 0 {
		cands = []weightedColour{{col: colorful.Color{R: 0.5, G: 0.5, B: 0.5}, weight: 1}}
	}

	// Background first, so a dominant backdrop colour never competes for
	// a tonal role.
	bgIdx := 0
	for i, c := range cands {
		if c.weight > cands[bgIdx].weight {
			bgIdx = i
		}
	}
	p.Set(RoleBackground, toRGB(cands[bgIdx].col))

	rest := make([]weightedColour, 0, len(cands)-1)
	for i, c := range cands {
		if i != bgIdx {
			rest = append(rest, c)
		}
	}
	if len(rest) == 0 {
		rest = cands
	}

	byLum := make([]weightedColour, len(rest))
	copy(byLum, rest)
	sort.Slice(byLum, func(i, j int) bool {
		return luminanceOf(byLum[i].col) < luminanceOf(byLum[j].col)
	})

	shadow := byLum[0]
	highlight := byLum[len(byLum)-1]
	midtone := byLum[len(byLum)/2]
	p.Set(RoleShadow, toRGB(shadow.col))
	p.Set(RoleMidtone, toRGB(midtone.col))
	p.Set(RoleHighlight, toRGB(highlight.col))

	// Features and details take the two most saturated candidates not
	// already consumed by the tonal roles, falling back to reuse when the
	// list is too short.
	used := map[weightedColour]bool{shadow: true, midtone: true, highlight: true}
	bySat := make([]weightedColour, 0, len(rest))
	for _, c := range rest {
		if !used[c] {
			bySat = append(bySat, c)
		}
	}
	if len(bySat) == 0 {
		bySat = rest
	}
	sort.Slice(bySat, func(i, j int) bool {
		_, si, _ := bySat[i].col.Hsl()
		_, sj, _ := bySat[j].col.Hsl()
		return si > sj
	})

	p.Set(RoleFeatures, toRGB(bySat[0].col))
	if len(bySat) > 1 {
		p.Set(RoleDetails, toRGB(bySat[1].col))
	} else {
		p.Set(RoleDetails, toRGB(bySat[0].col))
	}

	return &p
}

// luminanceOf returns the WCAG relative luminance of a colour.
func luminanceOf(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// toRGB converts a colorful colour in [0,1] channels to 8-bit RGB.
func toRGB(c colorful.Color) RGB {
	cl := c.Clamped()
	return RGB{
		R: clampByte(cl.R * 255),
		G: clampByte(cl.G * 255),
		B: clampByte(cl.B * 255),
	}
}
