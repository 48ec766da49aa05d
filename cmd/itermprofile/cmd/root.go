package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iiroan/itermprofile/internal/apply"
	"github.com/iiroan/itermprofile/internal/config"
	"github.com/iiroan/itermprofile/internal/merge"
	"github.com/iiroan/itermprofile/internal/ui"
)

var (
	verbose     bool
	quiet       bool
	noColor     bool
	cfgFile     string
	dotfilesDir string
	logger      *log.Logger
	cfg         *config.Config
	rootDir     string
)

var (
	profilePath  string
	storePath    string
	dryRun       bool
	useBuiltin   bool
	restartAfter bool
)

var rootCmd = &cobra.Command{
	Use:   "itermprofile",
	Short: "Apply a terminal profile to the default iTerm2 profile",
	Long: `itermprofile reads a profile description (colors, fonts, window, terminal,
cursor, keyboard and session settings) and merges it into the default iTerm2
profile. Only the fields present in the description are changed; everything
else in the preferences is left untouched.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		if cmd.Name() != "version" && cmd.Name() != "help" {
			if err := loadConfig(); err != nil {
				return err
			}
		}

		applyUISettings()
		setupLogger()

		return nil
	},
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	applier := apply.NewApplier(cfg, rootDir, logger)

	restarter, err := applier.Restarter()
	if err != nil {
		return err
	}

	res, err := applier.Apply(ctx, apply.Options{
		ProfilePath: profilePath,
		StorePath:   storePath,
		Builtin:     useBuiltin,
		DryRun:      dryRun,
	})
	if err != nil {
		return err
	}

	printApplyResult(res)

	if !res.Written {
		fmt.Println()
		fmt.Println(ui.HintStyle.Render("Dry run: preferences were not written."))
		return nil
	}

	if restartAfter || cfg.Restart.AfterApply {
		fmt.Println()
		fmt.Println(ui.SuccessBox.Render("Profile applied successfully!"))
		return restartITerm(ctx, restarter)
	}

	commands := restarter.Commands()
	fmt.Println(ui.SuccessBox.Render(fmt.Sprintf(
		"Profile applied successfully!\n\nNext steps:\n  1. Restart iTerm2: %s && %s\n  2. Or use: Preferences > Profiles > Other Actions > Reload",
		commands[0], commands[1],
	)))
	return nil
}

func printApplyResult(res *apply.Result) {
	report := res.Report

	fmt.Println(ui.MutedStyle.Render("Reading profile from: " + res.ProfilePath))
	fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("Preferences: %s (%s)", res.StorePath, res.Format)))
	fmt.Printf("Default profile GUID: %s\n", report.GUID)
	fmt.Println(ui.SuccessStyle.Render("✓ Found profile: " + report.Name))

	if len(report.Sections) == 0 {
		fmt.Println(ui.FormatStep("pending", "Profile has no recognized sections, nothing to apply"))
	}
	for _, s := range report.Sections {
		changes := report.SectionChanges(s.Name)
		modified := 0
		for _, c := range changes {
			if c.Modified() {
				modified++
			}
		}
		fmt.Println(ui.FormatStep("success", fmt.Sprintf("Applying %s... %s",
			s.Label,
			ui.MutedStyle.Render(fmt.Sprintf("(%d fields, %d changed)", len(changes), modified)),
		)))
		if verbose {
			printChanges(changes)
		}
	}

	for _, key := range report.Ignored {
		fmt.Println(ui.FormatStep("warning", ui.WarningStyle.Render("Ignored unrecognized "+key)))
	}

	if res.Written {
		fmt.Println(ui.FormatStep("success", "Writing preferences..."))
	}
}

func printChanges(changes []merge.Change) {
	for _, c := range changes {
		if !c.Modified() {
			continue
		}
		before := "(unset)"
		if c.Existed {
			before = formatValue(c.Before)
		}
		fmt.Printf("      %s %s %s %s\n",
			ui.KeyStyle.Render(c.Key+":"),
			ui.MutedStyle.Render(before),
			ui.MutedStyle.Render("→"),
			formatValue(c.After),
		)
	}
}

func formatValue(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	if _, isColor := m["Red Component"]; isColor {
		return fmt.Sprintf("rgb(%.3f, %.3f, %.3f)", m["Red Component"], m["Green Component"], m["Blue Component"])
	}
	return fmt.Sprintf("%v", m)
}

func restartITerm(ctx context.Context, restarter *apply.Restarter) error {
	return ui.RunWithSpinner("Restarting "+restarter.Process, func() error {
		return restarter.Restart(ctx)
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// Execute runs the root command and reports any error on stdout
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(ui.ErrorStyle.Render("✗ " + err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: "+config.FileName+" in the dotfiles root)")
	rootCmd.PersistentFlags().StringVarP(&dotfilesDir, "dotfiles", "C", "", "Dotfiles directory")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Profile file to apply (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "iTerm2 preferences plist (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&useBuiltin, "builtin", false, "Apply the built-in profile instead of a file")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Merge in memory and report changes without writing")
	rootCmd.Flags().BoolVar(&restartAfter, "restart", false, "Restart iTerm2 after applying")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() error {
	var err error
	rootDir, err = getDotfilesRoot()
	if err != nil {
		return fmt.Errorf("finding dotfiles root: %w", err)
	}

	path := configPath()
	cfg, err = config.Load(path)
	if err != nil {
		logger.Warn("could not load config, using defaults", "path", path, "error", err)
		cfg = config.DefaultConfig()
	}
	return nil
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.GetConfigPath(rootDir)
}

func applyUISettings() {
	if cfg == nil {
		ui.ApplyPreferences(ui.Preferences{NoColor: noColor})
		return
	}
	ui.ApplyPreferences(ui.Preferences{
		Theme:   cfg.UI.Theme,
		Dense:   cfg.UI.Dense,
		NoColor: cfg.UI.NoColor || noColor,
	})
}

func setupLogger() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.WarnLevel
	}

	styles := log.DefaultStyles()
	if !ui.CurrentPreferences.NoColor && !noColor {
		styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
			SetString("DEBUG").
			Foreground(ui.Muted).
			Bold(true)
		styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
			SetString("INFO").
			Foreground(ui.Primary).
			Bold(true)
		styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
			SetString("WARN").
			Foreground(ui.Warning).
			Bold(true)
		styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
			SetString("ERROR").
			Foreground(ui.Error).
			Bold(true)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	logger.SetStyles(styles)
}

func getDotfilesRoot() (string, error) {
	if dotfilesDir != "" {
		return dotfilesDir, nil
	}
	return config.FindDotfilesRoot()
}
