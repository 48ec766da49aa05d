// Package ci formats validation output for GitHub Actions
package ci

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Output receives workflow commands. Swapped in tests.
var Output io.Writer = os.Stdout

// Environment represents the CI environment
type Environment struct {
	IsCI            bool
	IsGitHubActions bool
	Workflow        string
	SummaryFile     string
}

// Detect detects the current CI environment
func Detect() *Environment {
	env := &Environment{
		IsCI:            os.Getenv("CI") == "true",
		IsGitHubActions: os.Getenv("GITHUB_ACTIONS") == "true",
	}
	if env.IsGitHubActions {
		env.Workflow = os.Getenv("GITHUB_WORKFLOW")
		env.SummaryFile = os.Getenv("GITHUB_STEP_SUMMARY")
	}
	return env
}

// StartGroup starts a log group in GitHub Actions
func (e *Environment) StartGroup(name string) {
	if e.IsGitHubActions {
		fmt.Fprintf(Output, "::group::%s\n", name)
	}
}

// EndGroup ends a log group in GitHub Actions
func (e *Environment) EndGroup() {
	if e.IsGitHubActions {
		fmt.Fprintln(Output, "::endgroup::")
	}
}

// LogError logs an error annotation, attached to file when given
func (e *Environment) LogError(message string, file string) {
	if !e.IsGitHubActions {
		return
	}
	if file != "" {
		fmt.Fprintf(Output, "::error file=%s::%s\n", file, escape(message))
		return
	}
	fmt.Fprintf(Output, "::error::%s\n", escape(message))
}

// LogWarning logs a warning annotation
func (e *Environment) LogWarning(message string) {
	if e.IsGitHubActions {
		fmt.Fprintf(Output, "::warning::%s\n", escape(message))
	}
}

// AddSummary appends markdown to the job summary
func (e *Environment) AddSummary(markdown string) error {
	if e.SummaryFile == "" {
		return nil
	}

	f, err := os.OpenFile(e.SummaryFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening GITHUB_STEP_SUMMARY: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s\n", markdown)
	return err
}

// escape encodes the characters workflow commands treat specially
func escape(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
