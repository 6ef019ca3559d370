package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInteractive(t *testing.T) {
	tests := []struct {
		name       string
		envVars    map[string]string
		options    Options
		isTerminal bool
		want       bool
	}{
		{name: "terminal", isTerminal: true, want: true},
		{name: "pipe", isTerminal: false, want: false},
		{name: "CI disables", envVars: map[string]string{"CI": "true"}, isTerminal: true, want: false},
		{name: "CI=false ignored", envVars: map[string]string{"CI": "false"}, isTerminal: true, want: true},
		{name: "GitHub Actions", envVars: map[string]string{"GITHUB_ACTIONS": "true"}, isTerminal: true, want: false},
		{name: "force interactive wins over CI", envVars: map[string]string{"CI": "1"}, options: Options{ForceInteractive: true}, want: true},
		{name: "force non-interactive wins over terminal", options: Options{ForceNonInteractive: true}, isTerminal: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCleanEnv(t, tt.envVars)
			c := newTestCapabilities(tt.options, tt.isTerminal)
			assert.Equal(t, tt.want, c.IsInteractive())
		})
	}
}

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name       string
		envVars    map[string]string
		options    Options
		isTerminal bool
		want       bool
	}{
		{name: "interactive xterm", envVars: map[string]string{"TERM": "xterm-256color"}, isTerminal: true, want: true},
		{name: "dumb terminal", envVars: map[string]string{"TERM": "dumb"}, isTerminal: true, want: false},
		{name: "unknown terminal", envVars: map[string]string{"TERM": "weird"}, isTerminal: true, want: false},
		{name: "pipe", envVars: map[string]string{"TERM": "xterm"}, isTerminal: false, want: false},
		{name: "NO_COLOR", envVars: map[string]string{"TERM": "xterm", "NO_COLOR": ""}, isTerminal: true, want: false},
		{name: "CLICOLOR=0", envVars: map[string]string{"TERM": "xterm", "CLICOLOR": "0"}, isTerminal: true, want: false},
		{name: "CLICOLOR_FORCE in CI", envVars: map[string]string{"CLICOLOR_FORCE": "1", "CI": "true"}, want: true},
		{name: "force color flag", options: Options{ForceColor: true}, want: true},
		{name: "disable color flag beats CLICOLOR_FORCE", envVars: map[string]string{"CLICOLOR_FORCE": "1"}, options: Options{DisableColor: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCleanEnv(t, tt.envVars)
			c := newTestCapabilities(tt.options, tt.isTerminal)
			assert.Equal(t, tt.want, c.SupportsColor())
		})
	}
}

func TestTermSupportsColor(t *testing.T) {
	for term, want := range map[string]bool{
		"":                false,
		"dumb":            false,
		"xterm":           true,
		"XTERM":           true,
		"screen-256color": true,
		"xtermish":        false,
		"linux":           true,
	} {
		assert.Equal(t, want, termSupportsColor(term), "TERM=%q", term)
	}
}
