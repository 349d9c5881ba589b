package gnt

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/gnt/utils"
)

// background is the padding value of the square canvas.
const background = 0xff

// Pad places the record pixels in the middle of a white square canvas whose side is the
// longer edge of the record. Any odd remainder of the padding goes to the trailing edge.
func Pad(rec *Record) (*image.Gray, error) {
	w, h := int(rec.Width), int(rec.Height)
	if w == 0 || h == 0 {
		return nil, corruptError(0, fmt.Errorf("%w: %dx%d", ErrZeroDimension, w, h))
	}
	if len(rec.Pixels) != w*h {
		return nil, corruptError(0, fmt.Errorf("%w: %d pixel bytes for %dx%d", ErrLengthMismatch, len(rec.Pixels), w, h))
	}

	side := utils.Max(w, h)
	dst := image.NewGray(image.Rect(0, 0, side, side))
	for i := range dst.Pix {
		dst.Pix[i] = background
	}

	top, left := (side-h)/2, (side-w)/2
	for row := 0; row < h; row++ {
		di := dst.PixOffset(left, top+row)
		copy(dst.Pix[di:di+w], rec.Pixels[row*w:(row+1)*w])
	}
	return dst, nil
}

// Reconstruct pads the record to a square and resamples it to a side x side image.
func Reconstruct(rec *Record, side int) (*image.Gray, error) {
	if side <= 0 {
		return nil, configError("output size must be positive, got %d", side)
	}
	canvas, err := Pad(rec)
	if err != nil {
		return nil, err
	}
	return resample(canvas, side), nil
}

// resample scales a square grayscale canvas with a bilinear filter.
func resample(src *image.Gray, side int) *image.Gray {
	if src.Bounds().Dx() == side {
		return src
	}
	return Grayscale(imaging.Resize(src, side, side, imaging.Linear))
}
