package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_StartStop(t *testing.T) {
	var buf bytes.Buffer

	s := NewSpinner("decoding", time.Millisecond, true)
	s.SetWriter(&buf)
	s.StopMsg = "done\n"

	s.Start()
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.SetMessage("finalizing")
	time.Sleep(10 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "\033[?25l")
	assert.Contains(t, out, "decoding")
	assert.Contains(t, out, "finalizing")
	assert.Contains(t, out, "\033[?25h")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("done\n")))
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("done\n")))
}
