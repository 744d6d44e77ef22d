package image

import (
	"image"

	"github.com/disintegration/imaging"
)

// WorkingBuffer resizes an image to the given width with the aspect ratio
// preserved and returns it as a non-premultiplied RGBA buffer, the form
// the point sampler walks. Images already at the working width are still
// converted so callers always get an *image.NRGBA.
func WorkingBuffer(img image.Image, width int) *image.NRGBA {
	bounds := img.Bounds()
	if bounds.Dx() == width {
		return imaging.Clone(img)
	}
	// Height 0 asks imaging to preserve the aspect ratio.
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// Grid stretch-resizes an image onto a fixed analysis grid. The aspect
// ratio is deliberately not preserved: the palette extractor wants a
// uniform sample budget, not geometry.
func Grid(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
