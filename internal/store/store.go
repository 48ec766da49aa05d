// Package store reads and writes the iTerm2 preferences property list
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"howett.net/plist"
)

// ErrNotFound is returned when the preferences file does not exist.
var ErrNotFound = errors.New("iTerm2 preferences not found")

// Accessor loads and saves a preferences document at a fixed path
type Accessor struct {
	path   string
	logger *log.Logger
}

// NewAccessor creates an accessor for the plist at path
func NewAccessor(path string, logger *log.Logger) *Accessor {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Accessor{
		path:   path,
		logger: logger,
	}
}

// Path returns the preferences file path
func (a *Accessor) Path() string {
	return a.path
}

// Load reads the preferences file into a Document
func (a *Accessor) Load() (*Document, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, a.path)
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", a.path, err)
	}

	a.logger.Debug("loaded preferences",
		"path", a.path,
		"format", doc.FormatName(),
		"records", len(doc.Records()),
	)
	return doc, nil
}

// Save writes the document back in the format it was read with.
// The file is replaced atomically so a failed write leaves it untouched.
func (a *Accessor) Save(doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	// Write through symlinks so the link itself survives the rename.
	target := a.path
	if resolved, err := filepath.EvalSymlinks(a.path); err == nil {
		target = resolved
	}

	mode := os.FileMode(0o600)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("replacing preferences: %w", err)
	}

	a.logger.Debug("saved preferences", "path", target, "format", doc.FormatName(), "bytes", len(data))
	return nil
}

// Decode parses plist bytes in any supported format
func Decode(data []byte) (*Document, error) {
	var root map[string]any
	format, err := plist.Unmarshal(data, &root)
	if err != nil {
		return nil, err
	}
	if root == nil {
		root = make(map[string]any)
	}
	return &Document{Root: root, Format: format}, nil
}

// Encode serializes the document using its recorded format
func Encode(doc *Document) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("encoding preferences: empty document")
	}

	format := doc.Format
	if format == plist.InvalidFormat {
		format = plist.XMLFormat
	}

	var (
		data []byte
		err  error
	)
	if format == plist.XMLFormat {
		data, err = plist.MarshalIndent(doc.Root, format, "\t")
	} else {
		data, err = plist.Marshal(doc.Root, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding preferences: %w", err)
	}
	return data, nil
}
