package geometry

import (
	"math"
	"testing"
)

func TestSpherePointCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "single point", count: 1},
		{name: "small", count: 7},
		{name: "typical", count: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sphere(tt.count, 1.0)
			if len(got.Positions) != tt.count*3 {
				t.Errorf("len(Positions) = %d, want %d", len(got.Positions), tt.count*3)
			}
			if got.Brightness != nil || got.EdgeStrength != nil || got.IsBackground != nil {
				t.Error("sphere output populated attribute slices, want nil")
			}
		})
	}
}

func TestSphereRadius(t *testing.T) {
	const radius = 2.5
	got := Sphere(500, radius)

	for i := 0; i < len(got.Positions); i += 3 {
		x := float64(got.Positions[i])
		y := float64(got.Positions[i+1])
		z := float64(got.Positions[i+2])
		d := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(d-radius) > 1e-4 {
			t.Fatalf("point %d at distance %g from origin, want %g", i/3, d, radius)
		}
	}
}

func TestSphereDeterministic(t *testing.T) {
	a := Sphere(100, 1.0)
	b := Sphere(100, 1.0)
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("positions differ at index %d: %g vs %g", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestSphereNonPositiveCount(t *testing.T) {
	got := Sphere(0, 1.0)
	if len(got.Positions) != 0 {
		t.Errorf("Sphere(0, 1) produced %d floats, want 0", len(got.Positions))
	}
}
