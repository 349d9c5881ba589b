package main

import (
	"context"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "1001-c.gnt")
	writeSample(t, input, 1, 2, 3)
	out := filepath.Join(dir, "grid.png")

	root := rootCommand()
	root.SetArgs([]string{"preview", "--out", out, "--cols", "2", "--rows", "2", "--cell", "20", "--thumb", "16", "--margin", "2", input})
	require.NoError(t, root.ExecuteContext(context.Background()))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}

func TestPreviewCommand_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "1001-c.gnt")
	writeSample(t, input, 1)

	root := rootCommand()
	root.SetArgs([]string{"preview", "--out", filepath.Join(dir, "grid.tiff"), input})
	assert.Error(t, root.ExecuteContext(context.Background()))
}
