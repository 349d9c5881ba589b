package gnt

import (
	"io"
	"sync"
)

// LedgerEntry records one persisted image and its label.
type LedgerEntry struct {
	Path  string
	Label int
}

// Ledger maps every exported image path to its label, in the order the paths were first written.
type Ledger struct {
	mu      sync.Mutex
	entries []LedgerEntry
	index   map[string]int
}

// Add records the label of path. A path already present keeps its position and takes
// the new label. It reports whether path was new.
func (l *Ledger) Add(path string, label int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i, ok := l.index[path]; ok {
		l.entries[i].Label = label
		return false
	}
	if l.index == nil {
		l.index = make(map[string]int)
	}
	l.index[path] = len(l.entries)
	l.entries = append(l.entries, LedgerEntry{Path: path, Label: label})

	return true
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// Reset drops all entries.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.index = nil
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]LedgerEntry(nil), l.entries...)
}

// WriteListing writes one listing line per entry, formatted by the profile's naming policy.
func (l *Ledger) WriteListing(w io.Writer, profile Profile) (int64, error) {
	var total int64
	for _, e := range l.Entries() {
		n, err := io.WriteString(w, ListingLine(profile, e.Path, e.Label)+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
