// Package terminal decides whether output goes to a person at a terminal
// and whether that terminal should get ANSI colours.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"BUILDKITE",              // Buildkite
	"TF_BUILD",               // Azure DevOps
}

// Options are command line overrides. Forcing flags win over the environment.
type Options struct {
	ForceInteractive    bool
	ForceNonInteractive bool
	ForceColor          bool
	DisableColor        bool
}

// Capabilities answers the two questions the log handlers and the menu ask.
type Capabilities interface {
	IsInteractive() bool
	SupportsColor() bool
}

// DefaultCapabilities inspects the process environment and stdout/stderr.
type DefaultCapabilities struct {
	options    Options
	isTerminal func() bool
}

// NewCapabilities creates Capabilities for the current process.
func NewCapabilities(options Options) *DefaultCapabilities {
	return &DefaultCapabilities{
		options:    options,
		isTerminal: stdStreamsAreTerminals,
	}
}

// stdStreamsAreTerminals checks that both stdout and stderr are terminals.
func stdStreamsAreTerminals() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// IsInteractive applies, in order: command line options, CI detection,
// terminal detection.
func (c *DefaultCapabilities) IsInteractive() bool {
	if c.options.ForceInteractive {
		return true
	}
	if c.options.ForceNonInteractive {
		return false
	}
	if IsCIEnvironment() {
		return false
	}
	return c.isTerminal()
}

// SupportsColor applies, in order: command line options, CLICOLOR_FORCE,
// NO_COLOR, then (interactive only) TERM capability and CLICOLOR.
func (c *DefaultCapabilities) SupportsColor() bool {
	if explicit, ok := c.explicitColorPreference(); ok {
		return explicit
	}
	if !c.IsInteractive() || !termSupportsColor(os.Getenv("TERM")) {
		return false
	}
	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}
	return true
}

func (c *DefaultCapabilities) explicitColorPreference() (enabled, ok bool) {
	switch {
	case c.options.ForceColor:
		return true, true
	case c.options.DisableColor:
		return false, true
	}
	if isTruthy(os.Getenv("CLICOLOR_FORCE")) {
		return true, true
	}
	// Any NO_COLOR, even empty, disables colour.
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false, true
	}
	return false, false
}

// IsCIEnvironment reports whether a known CI variable is set.
// CI=false, CI=0 and CI=no do not count.
func IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if envVar == "CI" {
			return !isFalsy(value)
		}
		return true
	}
	return false
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func isFalsy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no":
		return true
	default:
		return false
	}
}
