package colour

import (
	"image/color"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func mustColorful(r, g, b float64) colorful.Color {
	return colorful.Color{R: r, G: g, B: b}
}

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		name    string
		alg     Algorithm
		wantErr bool
	}{
		{name: "stochastic", alg: AlgorithmStochastic, wantErr: false},
		{name: "kmeans", alg: AlgorithmKMeans, wantErr: false},
		{name: "dominant", alg: AlgorithmDominant, wantErr: false},
		{name: "unknown", alg: Algorithm("mediancut"), wantErr: true},
		{name: "empty", alg: Algorithm(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewExtractor(tt.alg, DefaultExtractorOptions())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExtractor(%q) error = %v, wantErr %v", tt.alg, err, tt.wantErr)
			}
			if !tt.wantErr && e == nil {
				t.Errorf("NewExtractor(%q) returned nil extractor", tt.alg)
			}
		})
	}
}

func TestIsValidAlgorithm(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		if !IsValidAlgorithm(alg) {
			t.Errorf("IsValidAlgorithm(%q) = false, want true", alg)
		}
	}
	if IsValidAlgorithm("nonsense") {
		t.Error(`IsValidAlgorithm("nonsense") = true, want false`)
	}
}

func TestDeterministicExtractorsFillAllRoles(t *testing.T) {
	img := createTestImage(t, 64,
		color.NRGBA{R: 15, G: 25, B: 35, A: 255},
		color.NRGBA{R: 230, G: 140, B: 50, A: 255},
	)

	for _, alg := range []Algorithm{AlgorithmKMeans, AlgorithmDominant} {
		t.Run(string(alg), func(t *testing.T) {
			e, err := NewExtractor(alg, DefaultExtractorOptions())
			if err != nil {
				t.Fatalf("NewExtractor(%q) error = %v", alg, err)
			}

			palette, err := e.Extract(img)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}

			hex := palette.Hex()
			if len(hex) != RoleCount {
				t.Fatalf("Hex() returned %d colours, want %d", len(hex), RoleCount)
			}
			for i, h := range hex {
				if !hexPattern.MatchString(h) {
					t.Errorf("Hex()[%d] = %q, not a well-formed hex colour", i, h)
				}
			}
		})
	}
}

func TestAssignRoles(t *testing.T) {
	t.Run("empty candidates yield grey palette", func(t *testing.T) {
		p := assignRoles(nil)
		for _, role := range Roles() {
			if !hexPattern.MatchString(p.Get(role).Hex()) {
				t.Errorf("role %s = %q, not well-formed", role, p.Get(role).Hex())
			}
		}
	})

	t.Run("tonal ordering", func(t *testing.T) {
		cands := []weightedColour{
			{col: mustColorful(0.1, 0.1, 0.1), weight: 1},
			{col: mustColorful(0.5, 0.5, 0.5), weight: 2},
			{col: mustColorful(0.95, 0.95, 0.95), weight: 3},
			{col: mustColorful(0.9, 0.1, 0.1), weight: 4},
			{col: mustColorful(0.1, 0.2, 0.9), weight: 5},
			{col: mustColorful(0.3, 0.3, 0.2), weight: 10},
		}
		p := assignRoles(cands)

		_, _, sl := p.Get(RoleShadow).HSL()
		_, _, hl := p.Get(RoleHighlight).HSL()
		if sl >= hl {
			t.Errorf("shadow lightness %g not below highlight lightness %g", sl, hl)
		}

		// The heaviest candidate becomes the background.
		if p.Get(RoleBackground) != (RGB{R: 77, G: 77, B: 51}) {
			t.Errorf("background = %v, want the heaviest candidate", p.Get(RoleBackground))
		}
	})
}
