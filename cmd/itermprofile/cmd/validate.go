package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iiroan/itermprofile/internal/apply"
	"github.com/iiroan/itermprofile/internal/ci"
	"github.com/iiroan/itermprofile/internal/profile"
	"github.com/iiroan/itermprofile/internal/ui"
	"github.com/iiroan/itermprofile/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the profile, preferences and configuration without writing",
	Long: `Validate everything an apply depends on:
  - Configuration (itermprofile.yaml)
  - The profile description and each of its sections
  - The iTerm2 preferences and its default profile

In GitHub Actions, each check runs in a log group, problems are reported
as annotations and a summary table is added to the job summary.

Examples:
  itermprofile validate
  itermprofile validate --profile theme.yaml
  itermprofile validate --builtin`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths, err := apply.NewApplier(cfg, rootDir, logger).Paths(apply.Options{
		ProfilePath: profilePath,
		StorePath:   storePath,
	})
	if err != nil {
		return err
	}

	ciEnv := ci.Detect()
	ui.StartScreen("VALIDATION", "Check configuration, profile and preferences")

	total := validate.Result{}
	check := func(title, file string, r validate.Result) {
		ciEnv.StartGroup(title)
		printValidation(title, r)
		for _, msg := range r.Errors {
			ciEnv.LogError(msg, file)
		}
		for _, msg := range r.Warnings {
			ciEnv.LogWarning(msg)
		}
		ciEnv.EndGroup()
		total.Merge(r)
	}

	check("Configuration", configPath(), validate.Config(rootDir, cfgFile))
	if useBuiltin {
		check("Profile", "", validate.Profile(profile.Builtin()))
	} else {
		check("Profile", paths.Profile, validate.ProfileFile(paths.Profile))
	}
	check("Preferences", "", validate.Store(paths.Store, logger))

	if err := ciEnv.AddSummary(summaryMarkdown(total)); err != nil {
		logger.Warn("could not write job summary", "error", err)
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("Summary"))
	for _, msg := range total.Warnings {
		fmt.Printf("  %s %s\n", ui.StatusWarning.String(), ui.WarningStyle.Render(msg))
	}
	for _, msg := range total.Errors {
		fmt.Printf("  %s %s\n", ui.StatusError.String(), ui.ErrorStyle.Render(msg))
	}

	if !total.OK() {
		return fmt.Errorf("validation failed with %d error(s)", len(total.Errors))
	}

	fmt.Println(ui.SuccessBox.Render("All checks passed"))
	return nil
}

func printValidation(title string, r validate.Result) {
	fmt.Println()
	fmt.Println(ui.Title.Render(title))
	for _, item := range r.Items {
		details := ""
		if item.Details != "" {
			details = " " + ui.MutedStyle.Render("("+item.Details+")")
		}
		fmt.Println(ui.FormatStep(item.Status.String(), item.Name+details))
	}
}

func summaryMarkdown(r validate.Result) string {
	var b strings.Builder
	b.WriteString("## itermprofile validation\n\n")
	b.WriteString("| Check | Status | Details |\n")
	b.WriteString("|-------|--------|---------|\n")
	for _, item := range r.Items {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", item.Name, item.Status, item.Details)
	}
	if r.OK() {
		b.WriteString("\n✅ All checks passed\n")
	} else {
		fmt.Fprintf(&b, "\n❌ %d error(s)\n", len(r.Errors))
	}
	return b.String()
}
