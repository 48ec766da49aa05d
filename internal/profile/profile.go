// Package profile loads the user-authored terminal profile description
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when the profile file does not exist.
var ErrNotFound = errors.New("profile not found")

// Format identifies the encoding of a profile file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Profile is a partial set of settings grouped into named sections
// (Colors, Font, Window, ...). Missing sections and fields mean "leave as is".
type Profile map[string]any

// FormatFromPath picks the decoder from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported profile format %q (expected .json, .yaml or .toml)", filepath.Ext(path))
	}
}

// Load reads and parses the profile at path
func Load(path string) (Profile, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// Parse decodes profile bytes in the given format
func Parse(data []byte, format Format) (Profile, error) {
	var root map[string]any

	switch format {
	case FormatJSON:
		v, err := oj.Parse(data)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return Profile{}, nil
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("profile root must be an object, got %T", v)
		}
		root = m
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q", format)
	}

	if root == nil {
		root = make(map[string]any)
	}
	return Profile(root), nil
}

// Section returns the named section if it is present and is a mapping
func (p Profile) Section(name string) (map[string]any, bool) {
	m, ok := p[name].(map[string]any)
	return m, ok
}

// SectionNames returns the top-level keys in sorted order
func (p Profile) SectionNames() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
