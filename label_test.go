package gnt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelRegistry_FirstSeenOrder(t *testing.T) {
	var r LabelRegistry

	var labels []int
	for _, code := range []uint16{7, 3, 7, 9, 3} {
		labels = append(labels, r.LabelFor(code))
	}
	assert.Equal(t, []int{0, 1, 0, 2, 1}, labels)
	assert.Equal(t, 3, r.Len())

	label, ok := r.Lookup(9)
	assert.True(t, ok)
	assert.Equal(t, 2, label)

	_, ok = r.Lookup(1)
	assert.False(t, ok)
}

func TestLabelRegistry_ResetReplaysIdentically(t *testing.T) {
	var r LabelRegistry
	codes := []uint16{300, 12, 300, 5000, 12, 1}

	replay := func() []int {
		var out []int
		for _, c := range codes {
			out = append(out, r.LabelFor(c))
		}
		return out
	}

	first := replay()
	r.LabelFor(42)
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, first, replay())
}

func TestLabelRegistry_EntriesSortedByCode(t *testing.T) {
	var r LabelRegistry
	for _, code := range []uint16{7, 3, 9} {
		r.LabelFor(code)
	}
	assert.Equal(t, []LabelEntry{{3, 1}, {7, 0}, {9, 2}}, r.Entries())
}

func TestLabelRegistry_WriteTo(t *testing.T) {
	var r LabelRegistry
	r.LabelFor(45217)
	r.LabelFor(3)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	expected := "" +
		"Code      Label     \n" +
		"3         1         \n" +
		"45217     0         \n"
	assert.Equal(t, expected, buf.String())
}

func TestLedger_ListingOrder(t *testing.T) {
	var l Ledger
	l.Add("images/9-1.png", 0)
	l.Add("images/3-1.png", 1)
	l.Add("images/9-2.png", 0)
	assert.Equal(t, 3, l.Len())

	var buf bytes.Buffer
	_, err := l.WriteListing(&buf, CNTK)
	assert.NoError(t, err)
	assert.Equal(t, "images/9-1.png\t0\nimages/3-1.png\t1\nimages/9-2.png\t0\n", buf.String())

	l.Reset()
	assert.Empty(t, l.Entries())
}

func TestLedger_RepeatedPathKeepsPosition(t *testing.T) {
	var l Ledger
	assert.True(t, l.Add("images/7-1.png", 0))
	assert.True(t, l.Add("images/3-1.png", 1))
	assert.False(t, l.Add("images/7-1.png", 2))
	assert.Equal(t, 2, l.Len())

	assert.Equal(t, []LedgerEntry{
		{Path: "images/7-1.png", Label: 2},
		{Path: "images/3-1.png", Label: 1},
	}, l.Entries())

	l.Reset()
	assert.True(t, l.Add("images/7-1.png", 0))
}
