package gnt

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	imgWidth  = 10
	imgHeight = 10
)

func TestGrayscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	for i := 0; i < img.Bounds().Dx(); i++ {
		for j := 0; j < img.Bounds().Dy(); j++ {
			img.Set(i, j, color.RGBA{177, 177, 177, 255})
		}
	}
	img.Set(3, 4, color.RGBA{255, 0, 0, 255})

	gray := Grayscale(img)
	assert.Equal(t, image.Rect(0, 0, imgWidth, imgHeight), gray.Bounds())
	assert.Equal(t, uint8(177), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(76), gray.GrayAt(3, 4).Y)
}

func TestGrayscale_NRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 42, G: 42, B: 42, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 255, B: 0, A: 255})

	gray := Grayscale(img)
	assert.Equal(t, []uint8{42, 150}, gray.Pix)
}

func TestGrayscale_KeepsGrayImages(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	assert.Same(t, src, Grayscale(src))

	sub := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	sub.SetGray(1, 1, color.Gray{Y: 9})
	gray := Grayscale(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), gray.Bounds())
	assert.Equal(t, uint8(9), gray.GrayAt(0, 0).Y)
}
