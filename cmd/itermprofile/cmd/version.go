package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/iiroan/itermprofile/internal/ui"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information about itermprofile.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.Header("itermprofile"))
		fmt.Println(ui.KeyValue("Version", Version))
		fmt.Println(ui.KeyValue("Commit", Commit))
		fmt.Println(ui.KeyValue("Build Date", BuildDate))
		fmt.Println(ui.KeyValue("Go Version", runtime.Version()))
		fmt.Println(ui.KeyValue("OS/Arch", runtime.GOOS+"/"+runtime.GOARCH))
	},
}
