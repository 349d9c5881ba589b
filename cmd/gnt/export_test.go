package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/esimov/gnt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T, path string, codes ...uint16) {
	t.Helper()

	var data []byte
	for _, code := range codes {
		rec := &gnt.Record{TagCode: code, Width: 3, Height: 2, Pixels: []byte{0, 50, 100, 150, 200, 250}}
		b, err := rec.MarshalBinary()
		require.NoError(t, err)
		data = append(data, b...)
	}
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestExportCommand(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writeSample(t, filepath.Join(src, "1001-c.gnt"), 0xB0A1, 0xB0A2)
	writeSample(t, filepath.Join(src, "1002-c.gnt"), 0xB0A1)

	root := rootCommand()
	root.SetArgs([]string{"export",
		"--out", out,
		"--profile", "cntk",
		"--format", "bmp",
		"--size", "small",
		"--on-error", "skip",
		filepath.Join(src, "*.gnt"),
	})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.FileExists(t, filepath.Join(out, gnt.ImageFolder, "45217-1.bmp"))
	assert.FileExists(t, filepath.Join(out, gnt.ImageFolder, "45218-1.bmp"))
	assert.FileExists(t, filepath.Join(out, gnt.ImageFolder, "45217-2.bmp"))
	assert.FileExists(t, filepath.Join(out, gnt.MappingFileName))
	assert.FileExists(t, filepath.Join(out, gnt.ListingFileName))
}

func TestExportCommand_ConfigFile(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	input := filepath.Join(src, "1001-c.gnt")
	writeSample(t, input, 7)

	config := filepath.Join(src, "export.yaml")
	require.NoError(t, os.WriteFile(config, []byte(
		"inputs: ["+input+"]\ndestination: "+out+"\nprofile: digits\nsize: large\n"), 0644))

	root := rootCommand()
	root.SetArgs([]string{"export", "--config", config, "--format", "jpg"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.FileExists(t, filepath.Join(out, gnt.ImageFolder, "7", "1.jpeg"))
	assert.NoFileExists(t, filepath.Join(out, gnt.MappingFileName))
}

func TestExportCommand_Errors(t *testing.T) {
	out := t.TempDir()

	root := rootCommand()
	root.SetArgs([]string{"export", "--out", out, "--profile", "tensorflow", "--format", "bmp", "a.gnt"})
	assert.ErrorIs(t, root.ExecuteContext(context.Background()), gnt.ErrConfig)

	root = rootCommand()
	root.SetArgs([]string{"export", "--out", out, filepath.Join(out, "*.gnt")})
	assert.ErrorContains(t, root.ExecuteContext(context.Background()), "no GNT files")
}
