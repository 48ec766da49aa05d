package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iiroan/itermprofile/internal/apply"
	"github.com/iiroan/itermprofile/internal/merge"
	"github.com/iiroan/itermprofile/internal/platform"
	"github.com/iiroan/itermprofile/internal/store"
	"github.com/iiroan/itermprofile/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved paths and what an apply would change",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	applier := apply.NewApplier(cfg, rootDir, logger)
	paths, err := applier.Paths(apply.Options{ProfilePath: profilePath, StorePath: storePath})
	if err != nil {
		return err
	}

	ui.StartScreen("STATUS", "Current itermprofile environment")

	fmt.Println(ui.Title.Render("Environment"))
	fmt.Println(ui.KeyValue("Dotfiles", rootDir))
	fmt.Println(ui.KeyValue("Config", configPath()))
	if useBuiltin {
		fmt.Println(ui.KeyValue("Profile", "(built-in)"))
	} else {
		fmt.Println(ui.KeyValue("Profile", paths.Profile))
	}
	fmt.Println(ui.KeyValue("Preferences", paths.Store))
	fmt.Println(ui.KeyValue("Theme", ui.ActivePalette().Name))
	if r, err := applier.Restarter(); err != nil {
		fmt.Println(ui.KeyValue("Restart", ui.ErrorStyle.Render(err.Error())))
	} else if platform.IsDarwin() {
		fmt.Println(ui.KeyValue("Restart", strings.Join(r.Commands(), " && ")))
	} else {
		fmt.Println(ui.KeyValue("Restart", ui.MutedStyle.Render("unavailable on this platform")))
	}

	doc, err := store.NewAccessor(paths.Store, logger).Load()
	if err != nil {
		fmt.Println()
		fmt.Println(ui.FormatStep("error", err.Error()))
		return nil
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("Preferences"))
	fmt.Println(ui.KeyValue("Format", doc.FormatName()))
	fmt.Println(ui.KeyValue("Profiles", fmt.Sprintf("%d", len(doc.Records()))))
	fmt.Println(ui.KeyValue("Default GUID", valueOr(doc.DefaultGUID(), "(none)")))
	if rec, ok := doc.Record(doc.DefaultGUID()); ok {
		fmt.Println(ui.KeyValue("Default", rec.Name()))
	}

	res, err := applier.Apply(commandContext(cmd), apply.Options{
		ProfilePath: profilePath,
		StorePath:   storePath,
		Builtin:     useBuiltin,
		DryRun:      true,
	})

	fmt.Println()
	fmt.Println(ui.Title.Render("Pending changes"))
	switch {
	case errors.Is(err, merge.ErrNoDefaultTarget), errors.Is(err, merge.ErrTargetNotFound):
		fmt.Println(ui.FormatStep("error", err.Error()))
		return nil
	case err != nil:
		fmt.Println(ui.FormatStep("warning", err.Error()))
		return nil
	}

	modified := res.Report.Modified()
	if len(modified) == 0 {
		fmt.Println(ui.FormatStep("success", "Default profile already matches"))
		return nil
	}
	for _, s := range res.Report.Sections {
		n := 0
		for _, c := range res.Report.SectionChanges(s.Name) {
			if c.Modified() {
				n++
			}
		}
		if n > 0 {
			fmt.Println(ui.FormatStep("pending", fmt.Sprintf("%s: %d field(s) differ", s.Label, n)))
		}
	}
	if verbose {
		printChanges(modified)
	}
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
