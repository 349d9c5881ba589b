package gnt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// black returns a record made only of black pixels.
func black(code uint16) *Record {
	return &Record{TagCode: code, Width: 4, Height: 4, Pixels: make([]byte, 16)}
}

func TestRenderPreview_DefaultGeometry(t *testing.T) {
	img, err := RenderPreview(bytes.NewReader(nil), 0, DefaultPreviewOptions())
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 448, img.Bounds().Dy())
	for _, px := range img.Pix {
		require.Equal(t, uint8(255), px)
	}
}

func TestRenderPreview_FillsColumnsFirst(t *testing.T) {
	opts := PreviewOptions{Columns: 3, Rows: 2, Cell: 10, Thumb: 6, Margin: 2}
	data := encodeRecords(t, black(1), black(2), black(3))

	img, err := RenderPreview(bytes.NewReader(data), int64(len(data)), opts)
	require.NoError(t, err)
	require.Equal(t, 30, img.Bounds().Dx())
	require.Equal(t, 20, img.Bounds().Dy())

	filled := func(col, row int) bool {
		return img.GrayAt(col*opts.Cell+opts.Margin+opts.Thumb/2, row*opts.Cell+opts.Margin+opts.Thumb/2).Y < 128
	}
	assert.True(t, filled(0, 0))
	assert.True(t, filled(0, 1))
	assert.True(t, filled(1, 0))
	assert.False(t, filled(1, 1))
	assert.False(t, filled(2, 0))

	// Margins separate neighbouring thumbnails.
	assert.Equal(t, uint8(255), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(opts.Cell-1, opts.Cell-1).Y)
	assert.Equal(t, uint8(255), img.GrayAt(opts.Margin+opts.Thumb, opts.Margin).Y)
}

func TestRenderPreview_StopsWhenGridIsFull(t *testing.T) {
	opts := PreviewOptions{Columns: 1, Rows: 1, Cell: 8, Thumb: 8, Margin: 0}
	// The second record is corrupt but never read.
	data := append(encodeRecords(t, black(1)), 0xff, 0xff)

	img, err := RenderPreview(bytes.NewReader(data), int64(len(data)), opts)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), img.GrayAt(4, 4).Y)
}

func TestRenderPreview_CorruptStream(t *testing.T) {
	opts := PreviewOptions{Columns: 2, Rows: 2, Cell: 8, Thumb: 6, Margin: 1}
	data := append(encodeRecords(t, black(1)), 0xff, 0xff)

	img, err := RenderPreview(bytes.NewReader(data), int64(len(data)), opts)
	assert.ErrorIs(t, err, ErrCorrupt)
	require.NotNil(t, img)
	assert.Equal(t, uint8(0), img.GrayAt(4, 4).Y)
}

func TestRenderPreview_InvalidOptions(t *testing.T) {
	_, err := RenderPreview(bytes.NewReader(nil), 0, PreviewOptions{Columns: 1, Rows: 1, Cell: 10, Thumb: 9, Margin: 2})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = RenderPreview(bytes.NewReader(nil), 0, PreviewOptions{})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestRenderPreviewFile(t *testing.T) {
	path := writeGNT(t, t.TempDir(), "a.gnt", black(1))

	img, err := RenderPreviewFile(path, DefaultPreviewOptions())
	require.NoError(t, err)
	assert.Equal(t, uint8(0), img.GrayAt(32, 32).Y)
}
