package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGBToHex formats floating-point channel values as a lowercase #rrggbb
// string. Channels are rounded to the nearest integer and clamped to
// [0,255], so out-of-range intermediates from jitter arithmetic encode
// safely.
func RGBToHex(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(r), clampByte(g), clampByte(b))
}

// HexToRGB parses a 6-digit hex colour with an optional leading '#'.
// Malformed input yields black rather than an error: callers such as
// colour pickers always need a usable value back, and a wrong colour is
// preferable to a failure.
func HexToRGB(hex string) RGB {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return RGB{}
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// RGBToHSL converts 8-bit RGB channels to hue, saturation and lightness.
// All three components are in [0,1]; hue is a fraction of a full turn, so
// complementary arithmetic is h+0.5 modulo 1 and triadic is h+1/3.
func RGBToHSL(r, g, b uint8) (h, s, l float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxVal := math.Max(rf, math.Max(gf, bf))
	minVal := math.Min(rf, math.Min(gf, bf))
	delta := maxVal - minVal

	// Lightness.
	l = (maxVal + minVal) / 2.0

	// Achromatic (grey).
	if delta == 0 {
		return 0, 0, l
	}

	// Saturation.
	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	// Hue, as a sector in [0,6) scaled down to a turn fraction.
	switch maxVal {
	case rf:
		h = (gf - bf) / delta
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/delta + 2
	case bf:
		h = (rf-gf)/delta + 4
	}

	h /= 6
	return h, s, l
}

// HSLToRGB converts hue, saturation and lightness in [0,1] back to 8-bit
// RGB. Inputs are clamped to [0,1] before conversion.
func HSLToRGB(h, s, l float64) RGB {
	h = clamp01(h)
	s = clamp01(s)
	l = clamp01(l)

	if s == 0 {
		// Achromatic (grey).
		v := roundByte(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: roundByte(hueToRGB(p, q, h+1.0/3.0)),
		G: roundByte(hueToRGB(p, q, h)),
		B: roundByte(hueToRGB(p, q, h-1.0/3.0)),
	}
}

// hueToRGB is a helper for HSL to RGB conversion. t is a hue offset in
// turns and may be slightly outside [0,1) before normalisation.
func hueToRGB(p, q, t float64) float64 {
	for t < 0 {
		t++
	}
	for t >= 1 {
		t--
	}

	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// HueDistance returns the circular distance between two hues expressed as
// turn fractions. The result is in [0,0.5], the shortest path around the
// wheel; complementary hues are 0.5 apart.
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(wrapHue(h1) - wrapHue(h2))
	if diff > 0.5 {
		diff = 1 - diff
	}
	return diff
}

// wrapHue normalises a hue to [0,1) by discarding whole turns.
func wrapHue(h float64) float64 {
	h -= math.Floor(h)
	return h
}

// clamp01 clamps v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampRange clamps v to [lo,hi].
func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampByte rounds a floating-point channel to the nearest integer and
// clamps it to [0,255].
func clampByte(v float64) uint8 {
	n := math.Round(v)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// roundByte converts a normalised channel in [0,1] to its 8-bit value.
func roundByte(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
