package gnt

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// labelFieldWidth is the column width of the code to label mapping file.
const labelFieldWidth = 10

// LabelEntry is one tag code to label assignment.
type LabelEntry struct {
	Code  uint16
	Label int
}

// LabelRegistry assigns dense, zero based labels to tag codes in first-seen order.
// The zero value is ready to use and safe for concurrent use.
type LabelRegistry struct {
	mu     sync.Mutex
	labels map[uint16]int
}

// LabelFor returns the label of code, assigning the next free label on first sight.
func (r *LabelRegistry) LabelFor(code uint16) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.labels == nil {
		r.labels = make(map[uint16]int)
	}
	if label, ok := r.labels[code]; ok {
		return label
	}
	label := len(r.labels)
	r.labels[code] = label

	return label
}

// Lookup returns the label of code without assigning one.
func (r *LabelRegistry) Lookup(code uint16) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	label, ok := r.labels[code]
	return label, ok
}

// Len returns the number of distinct codes seen.
func (r *LabelRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.labels)
}

// Reset forgets every assignment.
func (r *LabelRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.labels = nil
}

// Entries returns the assignments sorted by ascending tag code.
func (r *LabelRegistry) Entries() []LabelEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes := maps.Keys(r.labels)
	slices.Sort(codes)

	entries := make([]LabelEntry, len(codes))
	for i, code := range codes {
		entries[i] = LabelEntry{Code: code, Label: r.labels[code]}
	}
	return entries
}

// WriteTo writes the mapping table: a Code/Label header followed by one row per code,
// every column left aligned and padded to ten characters.
func (r *LabelRegistry) WriteTo(w io.Writer) (int64, error) {
	var total int64

	n, err := fmt.Fprintf(w, "%-*s%-*s\n", labelFieldWidth, "Code", labelFieldWidth, "Label")
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, e := range r.Entries() {
		n, err := fmt.Fprintf(w, "%-*d%-*d\n", labelFieldWidth, e.Code, labelFieldWidth, e.Label)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
