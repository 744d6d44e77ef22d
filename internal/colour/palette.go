// Package colour provides colour-space conversions and the palette
// extraction algorithms.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// Role identifies one of the six fixed palette positions. The numeric
// values double as indices into Palette.Colors and define the output
// order.
type Role int

const (
	// RoleShadow is the darkest palette entry, roughly complementary to
	// the midtone.
	RoleShadow Role = iota
	// RoleMidtone is the tonal centre of the palette.
	RoleMidtone
	// RoleHighlight is the brightest palette entry.
	RoleHighlight
	// RoleFeatures carries a foreground colour left mostly unforced.
	RoleFeatures
	// RoleDetails is a fully saturated accent derived from the midtone.
	RoleDetails
	// RoleBackground summarises the image backdrop.
	RoleBackground
)

// RoleCount is the number of fixed palette roles.
const RoleCount = 6

// Roles returns all palette roles in output order.
func Roles() []Role {
	return []Role{RoleShadow, RoleMidtone, RoleHighlight, RoleFeatures, RoleDetails, RoleBackground}
}

// String returns the role name used in JSON and diagnostic output.
func (r Role) String() string {
	switch r {
	case RoleShadow:
		return "shadow"
	case RoleMidtone:
		return "midtone"
	case RoleHighlight:
		return "highlight"
	case RoleFeatures:
		return "features"
	case RoleDetails:
		return "details"
	case RoleBackground:
		return "background"
	default:
		return "unknown"
	}
}

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// HSL returns the colour's hue, saturation and lightness, all in [0,1].
func (rgb RGB) HSL() (h, s, l float64) {
	return RGBToHSL(rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255].
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Palette holds exactly one colour per role, in the fixed output order
// [shadow, midtone, highlight, features, details, background].
type Palette struct {
	Colors [RoleCount]RGB
}

// Set assigns a colour to a role. Out-of-range roles are ignored.
func (p *Palette) Set(role Role, c RGB) {
	if role < 0 || role >= RoleCount {
		return
	}
	p.Colors[role] = c
}

// Get returns the colour assigned to a role. Out-of-range roles yield
// black.
func (p *Palette) Get(role Role) RGB {
	if role < 0 || role >= RoleCount {
		return RGB{}
	}
	return p.Colors[role]
}

// Hex returns the six palette colours as lowercase hex strings in role
// order.
func (p *Palette) Hex() []string {
	hexColors := make([]string, RoleCount)
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON represents one palette entry in JSON output.
type ColorJSON struct {
	Role string `json:"role"`
	Hex  string `json:"hex"`
	RGB  RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Colors []ColorJSON `json:"colors"`
}

// JSONValue returns the palette in its JSON shape, one entry per role in
// output order.
func (p *Palette) JSONValue() PaletteJSON {
	colors := make([]ColorJSON, RoleCount)
	for _, role := range Roles() {
		c := p.Colors[role]
		colors[role] = ColorJSON{
			Role: role.String(),
			Hex:  c.Hex(),
			RGB:  c,
		}
	}
	return PaletteJSON{Colors: colors}
}

// ToJSON converts the palette to indented JSON with one entry per role.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.JSONValue(), "", "  ")
}

// String returns a human-readable listing of the palette.
func (p *Palette) String() string {
	var sb strings.Builder
	for _, role := range Roles() {
		c := p.Colors[role]
		fmt.Fprintf(&sb, "%-10s  %s  %s\n", role.String(), c.Hex(), c.String())
	}
	return sb.String()
}
