package gnt

import (
	"image"
	"image/color"

	"github.com/esimov/gnt/utils"
)

// Grayscale converts the image to an 8-bit grayscale image anchored at the origin.
// Images which are already gray keep their pixels untouched.
func Grayscale(src image.Image) *image.Gray {
	b := src.Bounds()
	if g, ok := src.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	dx, dy := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, dx, dy))

	switch img := src.(type) {
	case *image.Gray:
		for y := 0; y < dy; y++ {
			si := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[dst.PixOffset(0, y):], img.Pix[si:si+dx])
		}
	case *image.NRGBA:
		// Resampled gray sources carry the same value on every channel.
		for y := 0; y < dy; y++ {
			si := img.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			for x := 0; x < dx; x++ {
				dst.Pix[di+x] = lum(img.Pix[si+x*4], img.Pix[si+x*4+1], img.Pix[si+x*4+2])
			}
		}
	default:
		for x := 0; x < dx; x++ {
			for y := 0; y < dy; y++ {
				r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
				l := float32(r)*0.299 + float32(g)*0.587 + float32(bl)*0.114
				dst.SetGray(x, y, color.Gray{Y: uint8(utils.Clamp(l/256, 0, 255))})
			}
		}
	}
	return dst
}

func lum(r, g, b uint8) uint8 {
	if r == g && g == b {
		return r
	}
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}
