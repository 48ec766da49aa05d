package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/itermprofile/internal/config"
	"github.com/iiroan/itermprofile/internal/profile"
	"github.com/iiroan/itermprofile/internal/ui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit itermprofile.yaml interactively",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

func runSettings(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractiveTerminal() {
		return fmt.Errorf("settings requires an interactive terminal, edit %s directly", configPath())
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	profileInput := cfg.Profile
	storeInput := cfg.Store
	restartAfterApply := cfg.Restart.AfterApply
	timeoutInput := cfg.Restart.Timeout
	theme := cfg.UI.Theme
	dense := cfg.UI.Dense
	noColorPref := cfg.UI.NoColor

	themeOptions := make([]huh.Option[string], 0, len(ui.ThemeNames()))
	for _, name := range ui.ThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}

	var save bool

	ui.StartScreen("SETTINGS", "Edit paths, restart behavior and display")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile").
				Description("Profile description (.json, .yaml or .toml), relative to the dotfiles root").
				Value(&profileInput).
				Validate(func(value string) error {
					if value == "" {
						return fmt.Errorf("profile is required")
					}
					_, err := profile.FormatFromPath(value)
					return err
				}),
			huh.NewInput().
				Title("Preferences").
				Description("iTerm2 preferences plist").
				Value(&storeInput).
				Validate(func(value string) error {
					if value == "" {
						return fmt.Errorf("preferences path is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Restart After Apply").
				Description("Relaunch iTerm2 once the preferences are written").
				Value(&restartAfterApply),
			huh.NewInput().
				Title("Restart Timeout").
				Description("Duration (e.g. 30s, 1m)").
				Placeholder("30s").
				Value(&timeoutInput).
				Validate(func(value string) error {
					if value == "" {
						return nil
					}
					if _, err := time.ParseDuration(value); err != nil {
						return fmt.Errorf("invalid duration")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&theme),
			huh.NewConfirm().
				Title("Dense Layout").
				Description("Reduce vertical spacing").
				Value(&dense),
			huh.NewConfirm().
				Title("Disable Colors").
				Description("Use monochrome output").
				Value(&noColorPref),
			huh.NewConfirm().
				Title("Save changes?").
				Affirmative("Save").
				Negative("Discard").
				Value(&save),
		),
	).WithTheme(ui.HuhTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	if !save {
		fmt.Println(ui.MutedStyle.Render("Settings discarded"))
		return nil
	}

	cfg.Profile = profileInput
	cfg.Store = storeInput
	cfg.Restart.AfterApply = restartAfterApply
	cfg.Restart.Timeout = timeoutInput
	cfg.UI = config.UIConfig{
		Theme:   theme,
		Dense:   dense,
		NoColor: noColorPref,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	path := configPath()
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	applyUISettings()

	fmt.Println()
	fmt.Println(ui.SuccessBox.Render("Settings saved to " + path))
	return nil
}
