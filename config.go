package gnt

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Image size presets.
const (
	SizeSmall   = 32
	SizeMedium  = 64
	SizeLarge   = 128
	DefaultSize = SizeMedium
)

// ImageFolder is the name of the folder created under the destination for the images.
const ImageFolder = "images"

// Names of the files written next to the image folder.
const (
	MappingFileName = "code_label.txt"
	ListingFileName = "image_labels.txt"
)

// RunConfig holds the options of one export run.
type RunConfig struct {
	Inputs      []string
	Destination string
	Profile     Profile
	Format      Format
	Size        int
}

// DefaultConfig returns the options preselected for a new run.
func DefaultConfig() RunConfig {
	return RunConfig{
		Profile: Caffe,
		Format:  PNG,
		Size:    DefaultSize,
	}
}

// Validate rejects options which cannot start a run.
func (c *RunConfig) Validate() error {
	if strings.TrimSpace(c.Destination) == "" {
		return configError("a destination folder is required")
	}
	if c.Size <= 0 {
		return configError("image size must be a positive integer, got %d", c.Size)
	}
	if !c.Profile.Valid() {
		return configError("unknown profile %d", int(c.Profile))
	}
	f, err := ParseFormat(string(c.Format))
	if err != nil {
		return err
	}
	if !c.Profile.Supports(f) {
		return configError("%s does not accept %s images", c.Profile, f)
	}
	c.Format = f

	return nil
}

// ImageDir returns the folder receiving the exported images.
func (c *RunConfig) ImageDir() string {
	return filepath.Join(c.Destination, ImageFolder)
}

// ParseSize converts a size preset name or a positive integer to a pixel size.
func ParseSize(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return SizeSmall, nil
	case "medium", "":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, configError("invalid image size %q: positive integer only", s)
	}
	return n, nil
}

// LoadConfig reads run options from a YAML file on top of the defaults.
func LoadConfig(path string) (RunConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &Error{Kind: KindConfig, Op: "read config", Path: path, Err: err}
	}
	var raw struct {
		Inputs      []string `yaml:"inputs"`
		Destination string   `yaml:"destination"`
		Profile     string   `yaml:"profile"`
		Format      string   `yaml:"format"`
		Size        string   `yaml:"size"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, &Error{Kind: KindConfig, Op: "decode config", Path: path, Err: fmt.Errorf("decode yaml: %w", err)}
	}

	cfg.Inputs = raw.Inputs
	cfg.Destination = raw.Destination
	if raw.Profile != "" {
		if cfg.Profile, err = ParseProfile(raw.Profile); err != nil {
			return cfg, err
		}
	}
	if raw.Format != "" {
		if cfg.Format, err = ParseFormat(raw.Format); err != nil {
			return cfg, err
		}
	}
	if raw.Size != "" {
		if cfg.Size, err = ParseSize(raw.Size); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
