package seed

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage builds a small gradient image so content hashes differ
// between distinct images.
func createTestImage(t *testing.T, size int, offset uint8) image.Image {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x) + offset,
				G: uint8(y),
				B: offset,
				A: 255,
			})
		}
	}
	return img
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "content", input: "content", want: ModeContent},
		{name: "filepath", input: "filepath", want: ModeFilepath},
		{name: "manual", input: "manual", want: ModeManual},
		{name: "random", input: "random", want: ModeRandom},
		{name: "unknown", input: "bogus", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalculateContentSeed(t *testing.T) {
	imgA := createTestImage(t, 32, 0)
	imgB := createTestImage(t, 32, 100)

	seedA1, err := CalculateContentSeed(imgA)
	if err != nil {
		t.Fatalf("CalculateContentSeed() error = %v", err)
	}
	seedA2, err := CalculateContentSeed(imgA)
	if err != nil {
		t.Fatalf("CalculateContentSeed() error = %v", err)
	}
	seedB, err := CalculateContentSeed(imgB)
	if err != nil {
		t.Fatalf("CalculateContentSeed() error = %v", err)
	}

	if seedA1 != seedA2 {
		t.Errorf("same image produced different seeds: %d vs %d", seedA1, seedA2)
	}
	if seedA1 == seedB {
		t.Error("different images produced the same content seed")
	}

	if _, err := CalculateContentSeed(nil); err == nil {
		t.Error("CalculateContentSeed(nil) error = nil, want error")
	}
}

func TestCalculateFilepathSeed(t *testing.T) {
	seedA, err := CalculateFilepathSeed("/some/path/a.png")
	if err != nil {
		t.Fatalf("CalculateFilepathSeed() error = %v", err)
	}
	seedA2, err := CalculateFilepathSeed("/some/path/a.png")
	if err != nil {
		t.Fatalf("CalculateFilepathSeed() error = %v", err)
	}
	seedB, err := CalculateFilepathSeed("/some/path/b.png")
	if err != nil {
		t.Fatalf("CalculateFilepathSeed() error = %v", err)
	}

	if seedA != seedA2 {
		t.Errorf("same path produced different seeds: %d vs %d", seedA, seedA2)
	}
	if seedA == seedB {
		t.Error("different paths produced the same seed")
	}

	if _, err := CalculateFilepathSeed(""); err == nil {
		t.Error("CalculateFilepathSeed(\"\") error = nil, want error")
	}
}

func TestCalculate(t *testing.T) {
	img := createTestImage(t, 16, 0)
	manual := int64(12345)

	tests := []struct {
		name    string
		img     image.Image
		path    string
		config  Config
		wantErr bool
		check   func(t *testing.T, got int64)
	}{
		{
			name:   "manual returns value",
			config: Config{Mode: ModeManual, Value: &manual},
			check: func(t *testing.T, got int64) {
				if got != manual {
					t.Errorf("Calculate() = %d, want %d", got, manual)
				}
			},
		},
		{name: "manual without value", config: Config{Mode: ModeManual}, wantErr: true},
		{name: "content without image", config: Config{Mode: ModeContent}, wantErr: true},
		{name: "content with image", img: img, config: Config{Mode: ModeContent}},
		{name: "filepath without path", config: Config{Mode: ModeFilepath}, wantErr: true},
		{name: "filepath with path", path: "/a.png", config: Config{Mode: ModeFilepath}},
		{name: "random", config: Config{Mode: ModeRandom}},
		{name: "unknown mode", config: Config{Mode: Mode("bogus")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.img, tt.path, tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Calculate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}
