package colour

import (
	"math"
	"testing"
)

func TestRGBToHex(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		want    string
	}{
		{name: "black", r: 0, g: 0, b: 0, want: "#000000"},
		{name: "white", r: 255, g: 255, b: 255, want: "#ffffff"},
		{name: "red", r: 255, g: 0, b: 0, want: "#ff0000"},
		{name: "zero padded", r: 1, g: 2, b: 3, want: "#010203"},
		{name: "rounds to nearest", r: 127.6, g: 127.4, b: 0, want: "#807f00"},
		{name: "clamps above range", r: 300, g: 0, b: 0, want: "#ff0000"},
		{name: "clamps below range", r: -20, g: 0, b: 0, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToHex(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("RGBToHex(%g, %g, %g) = %q, want %q", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want RGB
	}{
		{name: "with hash", hex: "#1a2b3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}},
		{name: "without hash", hex: "1a2b3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}},
		{name: "uppercase", hex: "#FF00FF", want: RGB{R: 255, G: 0, B: 255}},
		{name: "malformed yields black", hex: "#zzzzzz", want: RGB{}},
		{name: "too short yields black", hex: "#fff", want: RGB{}},
		{name: "too long yields black", hex: "#ffffff00", want: RGB{}},
		{name: "empty yields black", hex: "", want: RGB{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexToRGB(tt.hex); got != tt.want {
				t.Errorf("HexToRGB(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	// Sweep all channel values on each channel plus a coarse full-cube grid.
	for v := 0; v <= 255; v++ {
		for _, rgb := range []RGB{
			{R: uint8(v)},
			{G: uint8(v)},
			{B: uint8(v)},
		} {
			got := HexToRGB(rgb.Hex())
			if got != rgb {
				t.Fatalf("HexToRGB(%q) = %v, want %v", rgb.Hex(), got, rgb)
			}
		}
	}
	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 17 {
				rgb := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				if got := HexToRGB(rgb.Hex()); got != rgb {
					t.Fatalf("HexToRGB(%q) = %v, want %v", rgb.Hex(), got, rgb)
				}
			}
		}
	}
}

func TestHSLComponentsInRange(t *testing.T) {
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				h, s, l := RGBToHSL(uint8(r), uint8(g), uint8(b))
				if h < 0 || h > 1 || s < 0 || s > 1 || l < 0 || l > 1 {
					t.Fatalf("RGBToHSL(%d, %d, %d) = (%g, %g, %g), components out of [0,1]", r, g, b, h, s, l)
				}
			}
		}
	}
}

func TestHSLRoundTrip(t *testing.T) {
	check := func(t *testing.T, r, g, b uint8) {
		t.Helper()
		h, s, l := RGBToHSL(r, g, b)
		got := HSLToRGB(h, s, l)
		if absDiff(got.R, r) > 1 || absDiff(got.G, g) > 1 || absDiff(got.B, b) > 1 {
			t.Errorf("HSLToRGB(RGBToHSL(%d, %d, %d)) = %v, want within 1 per channel", r, g, b, got)
		}
	}

	boundaries := []RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 255, G: 255, B: 0},
		{R: 0, G: 255, B: 255},
		{R: 255, G: 0, B: 255},
		{R: 128, G: 128, B: 128},
	}
	for _, c := range boundaries {
		check(t, c.R, c.G, c.B)
	}

	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				check(t, uint8(r), uint8(g), uint8(b))
			}
		}
	}
}

func TestHSLToRGBClampsInput(t *testing.T) {
	// Out-of-range components must clamp, not wrap or panic.
	got := HSLToRGB(0, -0.5, 1.7)
	want := RGB{R: 255, G: 255, B: 255}
	if got != want {
		t.Errorf("HSLToRGB(0, -0.5, 1.7) = %v, want %v", got, want)
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct {
		name   string
		h1, h2 float64
		want   float64
	}{
		{name: "identical", h1: 0.3, h2: 0.3, want: 0},
		{name: "complementary", h1: 0.0, h2: 0.5, want: 0.5},
		{name: "wraps around", h1: 0.95, h2: 0.05, want: 0.1},
		{name: "order independent", h1: 0.05, h2: 0.95, want: 0.1},
		{name: "unnormalised input", h1: 1.25, h2: 0.25, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HueDistance(tt.h1, tt.h2); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HueDistance(%g, %g) = %g, want %g", tt.h1, tt.h2, got, tt.want)
			}
		})
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
