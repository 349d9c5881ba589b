package gnt

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// PreviewOptions describes the thumbnail grid of a preview.
type PreviewOptions struct {
	Columns int
	Rows    int
	Cell    int
	// Thumb is the side of a thumbnail, smaller than the cell so neighbours stay apart.
	Thumb int
	// Margin is the offset of a thumbnail inside its cell.
	Margin int
}

// DefaultPreviewOptions returns a 640x448 grid of 64 pixel cells holding 54 pixel thumbnails.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Columns: 10,
		Rows:    7,
		Cell:    64,
		Thumb:   54,
		Margin:  5,
	}
}

func (o PreviewOptions) validate() error {
	if o.Columns <= 0 || o.Rows <= 0 || o.Cell <= 0 || o.Thumb <= 0 || o.Margin < 0 {
		return configError("invalid preview grid %+v", o)
	}
	if o.Margin+o.Thumb > o.Cell {
		return configError("thumbnail of %d pixels with a %d pixel margin does not fit a %d pixel cell", o.Thumb, o.Margin, o.Cell)
	}
	return nil
}

// RenderPreview draws the first records of a GNT stream on a white grid, filling
// every column from top to bottom before moving to the next one. Cells past the end
// of the stream stay blank. On a corrupt stream the partially filled grid is returned
// together with the error.
func RenderPreview(r io.Reader, size int64, opts PreviewOptions) (*image.Gray, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	canvas := imaging.New(opts.Columns*opts.Cell, opts.Rows*opts.Cell, color.White)

	p := NewParser(r, size)
	var err error
loop:
	for col := 0; col < opts.Columns; col++ {
		for row := 0; row < opts.Rows; row++ {
			var rec *Record
			rec, err = p.Next()
			if err != nil {
				break loop
			}
			var thumb *image.Gray
			if thumb, err = Reconstruct(rec, opts.Thumb); err != nil {
				break loop
			}
			pt := image.Pt(col*opts.Cell+opts.Margin, row*opts.Cell+opts.Margin)
			canvas = imaging.Paste(canvas, thumb, pt)
		}
	}
	if err == io.EOF {
		err = nil
	}
	return Grayscale(canvas), err
}

// RenderPreviewFile renders the preview grid of the GNT file at path.
func RenderPreviewFile(path string, opts PreviewOptions) (*image.Gray, error) {
	p, closer, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	img, err := RenderPreview(p.r, p.size, opts)
	if err != nil {
		return img, fmt.Errorf("preview %s: %w", path, err)
	}
	return img, nil
}
