package ui

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// StartScreen prints a section header and optional subtitle
func StartScreen(title string, subtitle string) {
	fmt.Println(Header(title))
	if subtitle != "" {
		fmt.Println(Tagline.Render(subtitle))
	}
	if !CurrentPreferences.Dense {
		fmt.Println()
	}
}

// IsInteractiveTerminal reports whether stdout is a terminal outside CI
func IsInteractiveTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return false
	}
	if os.Getenv("TERM") == "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
