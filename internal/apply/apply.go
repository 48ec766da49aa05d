// Package apply orchestrates loading a profile, merging it into the iTerm2
// preferences and writing the result back
package apply

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/iiroan/itermprofile/internal/config"
	"github.com/iiroan/itermprofile/internal/merge"
	"github.com/iiroan/itermprofile/internal/profile"
	"github.com/iiroan/itermprofile/internal/store"
)

// Applier merges the configured profile into the iTerm2 preferences
type Applier struct {
	cfg     *config.Config
	rootDir string
	logger  *log.Logger
}

// Options configures a single apply
type Options struct {
	// ProfilePath and StorePath override the configured locations.
	ProfilePath string
	StorePath   string
	// Builtin uses the fixed built-in profile instead of reading a file.
	Builtin bool
	// DryRun merges in memory without writing the preferences.
	DryRun bool
}

// Result describes a completed apply
type Result struct {
	ProfilePath string
	StorePath   string
	Format      string
	Report      *merge.Report
	Written     bool
}

// NewApplier creates a new applier
func NewApplier(cfg *config.Config, rootDir string, logger *log.Logger) *Applier {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Applier{
		cfg:     cfg,
		rootDir: rootDir,
		logger:  logger,
	}
}

// Paths resolves the profile and store locations for opts
func (a *Applier) Paths(opts Options) (config.Paths, error) {
	paths, err := a.cfg.Resolve(a.rootDir)
	if err != nil {
		return config.Paths{}, err
	}
	if opts.ProfilePath != "" {
		if paths.Profile, err = config.ExpandHome(opts.ProfilePath); err != nil {
			return config.Paths{}, err
		}
	}
	if opts.StorePath != "" {
		if paths.Store, err = config.ExpandHome(opts.StorePath); err != nil {
			return config.Paths{}, err
		}
	}
	return paths, nil
}

// Apply loads the profile and the preferences, merges them and saves the
// preferences. Nothing is written unless the merge fully succeeds.
func (a *Applier) Apply(ctx context.Context, opts Options) (*Result, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	paths, err := a.Paths(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{ProfilePath: paths.Profile, StorePath: paths.Store}

	var p profile.Profile
	if opts.Builtin {
		result.ProfilePath = "(built-in)"
		p = profile.Builtin()
	} else {
		a.logger.Info("reading profile", "path", paths.Profile)
		if p, err = profile.Load(paths.Profile); err != nil {
			return nil, err
		}
	}

	accessor := store.NewAccessor(paths.Store, a.logger)
	doc, err := accessor.Load()
	if err != nil {
		return nil, err
	}
	result.Format = doc.FormatName()

	a.logger.Debug("default profile", "guid", doc.DefaultGUID())

	report, err := merge.Apply(doc, p)
	if err != nil {
		return nil, err
	}
	result.Report = report

	a.logger.Info("merged profile",
		"target", report.Name,
		"sections", len(report.Sections),
		"fields", len(report.Changes),
		"modified", len(report.Modified()),
	)
	for _, key := range report.Ignored {
		a.logger.Warn("ignoring unrecognized profile key", "key", key)
	}

	if opts.DryRun {
		a.logger.Info("dry run - skipping write")
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := accessor.Save(doc); err != nil {
		return nil, err
	}
	result.Written = true

	return result, nil
}
