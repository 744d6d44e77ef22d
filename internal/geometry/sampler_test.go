package geometry

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/jmylchreest/stipple/internal/segment"
)

// createTestImage builds an image with a uniform border colour and a
// different uniform centre block.
func createTestImage(t *testing.T, size int, border, centre color.NRGBA) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	lo, hi := size/4, size*3/4
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := border
			if x >= lo && x < hi && y >= lo && y < hi {
				c = centre
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// classify is a helper running the background classifier with defaults.
func classify(t *testing.T, img *image.NRGBA) *segment.Classification {
	t.Helper()
	cls, err := segment.Classify(img, segment.DefaultConfig())
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	return cls
}

func TestSampleOutputLengths(t *testing.T) {
	img := createTestImage(t, 64,
		color.NRGBA{R: 20, G: 20, B: 20, A: 255},
		color.NRGBA{R: 220, G: 220, B: 220, A: 255},
	)
	cls := classify(t, img)

	tests := []struct {
		name  string
		count int
	}{
		{name: "single point", count: 1},
		{name: "fewer than pixels", count: 100},
		{name: "exactly pixel count", count: 64 * 64},
		{name: "more than pixels pads", count: 64*64 + 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sample(img, cls, tt.count, 1.0, DefaultSampleConfig(), rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("Sample() error = %v", err)
			}
			if len(got.Positions) != tt.count*3 {
				t.Errorf("len(Positions) = %d, want %d", len(got.Positions), tt.count*3)
			}
			if len(got.Brightness) != tt.count {
				t.Errorf("len(Brightness) = %d, want %d", len(got.Brightness), tt.count)
			}
			if len(got.EdgeStrength) != tt.count {
				t.Errorf("len(EdgeStrength) = %d, want %d", len(got.EdgeStrength), tt.count)
			}
			if len(got.IsBackground) != tt.count {
				t.Errorf("len(IsBackground) = %d, want %d", len(got.IsBackground), tt.count)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestSampleSparseImagePads(t *testing.T) {
	// Only four opaque pixels; everything else is transparent.
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for _, pt := range []image.Point{{X: 5, Y: 5}, {X: 10, Y: 20}, {X: 25, Y: 8}, {X: 30, Y: 30}} {
		img.SetNRGBA(pt.X, pt.Y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	}
	cls := classify(t, img)

	const count = 64
	got, err := Sample(img, cls, count, 1.0, DefaultSampleConfig(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(got.Positions) != count*3 || len(got.Brightness) != count {
		t.Errorf("padded output has %d positions and %d brightness entries, want %d and %d",
			len(got.Positions), len(got.Brightness), count*3, count)
	}
}

func TestSampleTransparentImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	cls := classify(t, img)

	_, err := Sample(img, cls, 10, 1.0, DefaultSampleConfig(), rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Sample() on transparent image error = %v, want ErrNoCandidates", err)
	}
}

func TestSampleSeededReproducible(t *testing.T) {
	img := createTestImage(t, 48,
		color.NRGBA{R: 30, G: 40, B: 50, A: 255},
		color.NRGBA{R: 200, G: 150, B: 100, A: 255},
	)
	cls := classify(t, img)

	run := func(seed int64) []float32 {
		got, err := Sample(img, cls, 200, 1.0, DefaultSampleConfig(), rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("Sample() error = %v", err)
		}
		return got.Positions
	}

	a, b := run(9), run(9)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("equal seeds disagree at index %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestSampleDepthSeparation(t *testing.T) {
	img := createTestImage(t, 64,
		color.NRGBA{R: 10, G: 10, B: 10, A: 255},
		color.NRGBA{R: 240, G: 240, B: 240, A: 255},
	)
	cls := classify(t, img)

	const scale = 1.0
	got, err := Sample(img, cls, 2000, scale, DefaultSampleConfig(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	sawBackground := false
	for i := 0; i < len(got.IsBackground); i++ {
		z := float64(got.Positions[i*3+2])
		if got.IsBackground[i] == 1 {
			sawBackground = true
			// Background points sit behind the origin plane.
			if z >= 0 {
				t.Fatalf("background point %d has z = %g, want negative", i, z)
			}
		}
	}
	if !sawBackground {
		t.Error("no background points sampled from a border-dominated image")
	}
}

func TestSampleBrightnessNormalised(t *testing.T) {
	img := createTestImage(t, 32,
		color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	)
	cls := classify(t, img)

	got, err := Sample(img, cls, 500, 1.0, DefaultSampleConfig(), rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	for i, b := range got.Brightness {
		if b < 0 || b > 1 {
			t.Fatalf("Brightness[%d] = %g, want in [0,1]", i, b)
		}
	}
	for i, e := range got.EdgeStrength {
		if e < 0 || e > 1 {
			t.Fatalf("EdgeStrength[%d] = %g, want in [0,1]", i, e)
		}
	}
}

func TestSampleConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SampleConfig)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(c *SampleConfig) {}, wantErr: false},
		{name: "zero working width", mutate: func(c *SampleConfig) { c.WorkingWidth = 0 }, wantErr: true},
		{name: "zero edge divisor", mutate: func(c *SampleConfig) { c.EdgeNormDivisor = 0 }, wantErr: true},
		{name: "zero scanline steps", mutate: func(c *SampleConfig) { c.ScanlineSteps = 0 }, wantErr: true},
		{name: "cutoff above one", mutate: func(c *SampleConfig) { c.BackgroundEdgeCutoff = 2 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSampleConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSampleRejectsBadInput(t *testing.T) {
	img := createTestImage(t, 16,
		color.NRGBA{R: 1, G: 1, B: 1, A: 255},
		color.NRGBA{R: 200, G: 200, B: 200, A: 255},
	)
	cls := classify(t, img)

	if _, err := Sample(nil, cls, 10, 1.0, DefaultSampleConfig(), nil); err == nil {
		t.Error("Sample(nil image) error = nil, want error")
	}
	if _, err := Sample(img, nil, 10, 1.0, DefaultSampleConfig(), nil); err == nil {
		t.Error("Sample(nil classification) error = nil, want error")
	}
	if _, err := Sample(img, cls, 0, 1.0, DefaultSampleConfig(), nil); err == nil {
		t.Error("Sample(count=0) error = nil, want error")
	}
}
