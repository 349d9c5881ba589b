package gnt

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Profile selects the naming and packaging convention of a target training framework.
type Profile int

// The supported export profiles.
const (
	Caffe Profile = iota
	CNTK
	TensorFlow
	Digits
)

type layout int

const (
	// flatLayout names images <code>-<source index> directly in the image folder.
	flatLayout layout = iota
	// classLayout puts every tag code in its own sub-folder, numbering images from 1.
	classLayout
)

// rule holds everything that differs between profiles.
type rule struct {
	name      string
	separator string
	layout    layout
	listing   bool
	formats   []Format
}

var rules = [...]rule{
	Caffe:      {name: "caffe", separator: " ", layout: flatLayout, listing: true, formats: allFormats},
	CNTK:       {name: "cntk", separator: "\t", layout: flatLayout, listing: true, formats: allFormats},
	TensorFlow: {name: "tensorflow", separator: " ", layout: flatLayout, listing: true, formats: []Format{PNG, JPEG}},
	Digits:     {name: "digits", separator: " ", layout: classLayout, listing: false, formats: allFormats},
}

func (p Profile) rule() rule {
	if p < 0 || int(p) >= len(rules) {
		return rules[Caffe]
	}
	return rules[p]
}

// Valid reports whether p is one of the known profiles.
func (p Profile) Valid() bool {
	return p >= 0 && int(p) < len(rules)
}

func (p Profile) String() string {
	if !p.Valid() {
		return "profile(" + strconv.Itoa(int(p)) + ")"
	}
	return rules[p].name
}

// ParseProfile converts a profile name (case insensitive) to a Profile.
func ParseProfile(s string) (Profile, error) {
	for p, r := range rules {
		if strings.EqualFold(s, r.name) {
			return Profile(p), nil
		}
	}
	return 0, configError("unknown profile %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Profile) UnmarshalText(text []byte) error {
	v, err := ParseProfile(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// WritesListing reports whether the profile produces the mapping and listing files.
func (p Profile) WritesListing() bool { return p.rule().listing }

// Supports reports whether the profile accepts the image format.
func (p Profile) Supports(f Format) bool {
	for _, ff := range p.rule().formats {
		if ff == f {
			return true
		}
	}
	return false
}

// ListingLine formats one line of the listing file: the image path and its label
// joined by the profile separator.
func ListingLine(p Profile, path string, label int) string {
	return path + p.rule().separator + strconv.Itoa(label)
}

// DirService answers the directory questions the exporter and the naming policy need.
type DirService interface {
	Exists(path string) (bool, error)
	Mkdir(path string) error
	ListFiles(dir string) ([]string, error)
}

// OSDirs implements DirService on the local file system.
type OSDirs struct{}

// Exists reports whether path exists.
func (OSDirs) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Mkdir creates path with any missing parents.
func (OSDirs) Mkdir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ListFiles returns the names of the regular files directly inside dir.
func (OSDirs) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// NamingPolicy computes output image stems. The per-class numbering of the class layout
// is serialized and never reuses a number already present in the class folder, whatever
// its extension, as long as each image is persisted before the next stem for that code
// is requested.
type NamingPolicy struct {
	Dirs DirService

	mu sync.Mutex
}

// NewNamingPolicy returns a naming policy using dirs for the class layout lookups.
func NewNamingPolicy(dirs DirService) *NamingPolicy {
	return &NamingPolicy{Dirs: dirs}
}

// ImageStem returns the output path, without extension, of a record with the given
// tag code coming from the seq-th (1-based) source file of the batch.
func (n *NamingPolicy) ImageStem(p Profile, code uint16, seq int, root string) (string, error) {
	c := strconv.Itoa(int(code))
	if p.rule().layout == flatLayout {
		return filepath.Join(root, fmt.Sprintf("%s-%d", c, seq)), nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	dirs := n.Dirs
	if dirs == nil {
		dirs = OSDirs{}
	}
	dir := filepath.Join(root, c)
	ok, err := dirs.Exists(dir)
	if err != nil {
		return "", writeError("stat class folder", dir, err)
	}
	if !ok {
		if err := dirs.Mkdir(dir); err != nil {
			return "", writeError("create class folder", dir, err)
		}
	}
	names, err := dirs.ListFiles(dir)
	if err != nil {
		return "", writeError("list class folder", dir, err)
	}
	taken := make(map[string]struct{}, len(names))
	for _, name := range names {
		taken[strings.TrimSuffix(name, filepath.Ext(name))] = struct{}{}
	}
	// Numbering follows the file count, skipping numbers left in use by gaps.
	next := len(names) + 1
	for {
		if _, ok := taken[strconv.Itoa(next)]; !ok {
			break
		}
		next++
	}
	return filepath.Join(dir, strconv.Itoa(next)), nil
}
