package gnt

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "golang.org/x/image/bmp"
)

func TestParseFormat(t *testing.T) {
	testCases := map[string]Format{
		"png":  PNG,
		".PNG": PNG,
		"jpg":  JPEG,
		"jpeg": JPEG,
		"bmp":  BMP,
		".ppm": PPM,
	}
	for in, want := range testCases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("gif")
	assert.ErrorIs(t, err, ErrConfig)

	assert.Equal(t, ".jpeg", JPEG.Ext())
}

func TestEncode_Decodable(t *testing.T) {
	img, err := Reconstruct(newRecord(1, 5, 9, 20), 16)
	require.NoError(t, err)

	testCases := []struct {
		format Format
		name   string
	}{
		{PNG, "png"},
		{JPEG, "jpeg"},
		{BMP, "bmp"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, img, tc.format))

			decoded, name, err := image.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, img.Bounds(), decoded.Bounds())
		})
	}
}

func TestEncode_PPM(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.Pix = []byte{10, 200}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, PPM))

	expected := append([]byte("P6\n2 1\n255\n"), 10, 10, 10, 200, 200, 200)
	assert.Equal(t, expected, buf.Bytes())
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, image.NewGray(image.Rect(0, 0, 1, 1)), Format("tiff"))
	assert.Error(t, err)
}
