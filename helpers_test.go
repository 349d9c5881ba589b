package gnt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newRecord builds a record whose pixels count up from seed.
func newRecord(code uint16, w, h int, seed byte) *Record {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = seed + byte(i)
	}
	return &Record{TagCode: code, Width: uint16(w), Height: uint16(h), Pixels: pix}
}

func encodeRecords(t *testing.T, recs ...*Record) []byte {
	t.Helper()

	var buf bytes.Buffer
	for _, rec := range recs {
		data, err := rec.MarshalBinary()
		require.NoError(t, err)
		buf.Write(data)
	}
	return buf.Bytes()
}

func writeGNT(t *testing.T, dir, name string, recs ...*Record) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, encodeRecords(t, recs...), 0644))
	return path
}
