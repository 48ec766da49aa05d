// itermprofile merges a profile description into the default iTerm2 profile
package main

import (
	"os"

	"github.com/iiroan/itermprofile/cmd/itermprofile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
