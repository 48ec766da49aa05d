// Package config handles configuration loading and validation for itermprofile
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the dotfiles root
const FileName = "itermprofile.yaml"

// Config represents the main configuration for itermprofile
type Config struct {
	// Profile is the profile description to apply. Relative paths are
	// resolved against the dotfiles root.
	Profile string `yaml:"profile"`

	// Store is the iTerm2 preferences plist. A leading ~ is expanded.
	Store string `yaml:"store"`

	Restart RestartConfig `yaml:"restart"`
	UI      UIConfig      `yaml:"ui"`
}

// RestartConfig controls relaunching iTerm2 after an apply
type RestartConfig struct {
	AfterApply bool   `yaml:"after_apply"`
	Process    string `yaml:"process"`
	App        string `yaml:"app"`
	Timeout    string `yaml:"timeout"`
}

// UIConfig holds output preferences
type UIConfig struct {
	Theme   string `yaml:"theme"`
	NoColor bool   `yaml:"no_color"`
	Dense   bool   `yaml:"dense"`
}

// Paths are the resolved absolute locations used for a run
type Paths struct {
	Profile string
	Store   string
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Profile: filepath.Join("config", "iterm2", "iterm_profile.json"),
		Store:   "~/Library/Preferences/com.googlecode.iterm2.plist",
		Restart: RestartConfig{
			AfterApply: false,
			Process:    "iTerm2",
			App:        "iTerm",
			Timeout:    "30s",
		},
		UI: UIConfig{
			Theme: "aurora",
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Profile) == "" {
		return fmt.Errorf("profile is required")
	}
	if strings.TrimSpace(c.Store) == "" {
		return fmt.Errorf("store is required")
	}
	if c.Restart.Process == "" {
		return fmt.Errorf("restart.process is required")
	}
	if c.Restart.App == "" {
		return fmt.Errorf("restart.app is required")
	}
	if c.Restart.Timeout != "" {
		d, err := time.ParseDuration(c.Restart.Timeout)
		if err != nil {
			return fmt.Errorf("invalid restart.timeout %q: %w", c.Restart.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("restart.timeout must be positive, got %q", c.Restart.Timeout)
		}
	}
	return nil
}

// Resolve turns the configured locations into absolute paths
func (c *Config) Resolve(rootDir string) (Paths, error) {
	profilePath, err := ExpandHome(c.Profile)
	if err != nil {
		return Paths{}, err
	}
	if !filepath.IsAbs(profilePath) {
		profilePath = filepath.Join(rootDir, profilePath)
	}

	storePath, err := ExpandHome(c.Store)
	if err != nil {
		return Paths{}, err
	}
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(rootDir, storePath)
	}

	return Paths{
		Profile: filepath.Clean(profilePath),
		Store:   filepath.Clean(storePath),
	}, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// FindDotfilesRoot finds the dotfiles root by looking for the config file or
// a config/iterm2 directory
func FindDotfilesRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		if info, err := os.Stat(filepath.Join(dir, "config", "iterm2")); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// Fall back to current directory
	cwd, _ := os.Getwd()
	return cwd, nil
}

// GetConfigPath returns the path to itermprofile.yaml in the dotfiles root
func GetConfigPath(rootDir string) string {
	return filepath.Join(rootDir, FileName)
}
