package platform

import (
	"fmt"
	"runtime"
)

// RequireDarwin returns an error if the current OS is not macOS.
func RequireDarwin(feature string) error {
	return require(runtime.GOOS, feature)
}

// IsDarwin reports whether the current OS is macOS.
func IsDarwin() bool {
	return runtime.GOOS == "darwin"
}

func require(goos, feature string) error {
	if goos != "darwin" {
		if feature == "" {
			feature = "itermprofile"
		}
		return fmt.Errorf("%s is supported on macOS only (current: %s)", feature, goos)
	}
	return nil
}
