package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/itermprofile/internal/apply"
	"github.com/iiroan/itermprofile/internal/ui"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Quit and relaunch iTerm2 so it rereads its preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		restarter, err := apply.NewApplier(cfg, rootDir, logger).Restarter()
		if err != nil {
			return err
		}
		if err := restartITerm(commandContext(cmd), restarter); err != nil {
			return err
		}
		fmt.Println(ui.HintStyle.Render("iTerm2 relaunched with the current preferences"))
		return nil
	},
}
