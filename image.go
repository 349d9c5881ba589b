package gnt

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
)

// Format is the raster format of the exported images.
type Format string

// The supported output formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	PPM  Format = "ppm"
)

var allFormats = []Format{PNG, JPEG, BMP, PPM}

// ParseFormat converts a format token or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "ppm":
		return PPM, nil
	}
	return "", configError("unsupported image format %q", s)
}

// Ext returns the file extension, dot included.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case BMP:
		return bmp.Encode(w, img)
	case PPM:
		return encodePPM(w, img)
	}
	return fmt.Errorf("unsupported image format %q", f)
}

// encodePPM writes a binary (P6) portable pixmap.
func encodePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if _, err := bw.Write([]byte{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
