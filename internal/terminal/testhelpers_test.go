package terminal

import (
	"testing"
)

// setupCleanEnv controls every variable the package reads so tests do not
// depend on the developer's shell. Only the given variables are set.
func setupCleanEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	// NO_COLOR is checked for existence, so it is only set when requested.
	if value, specified := envVars["NO_COLOR"]; specified {
		t.Setenv("NO_COLOR", value)
	}

	valueCheckedVars := append([]string{"CLICOLOR", "CLICOLOR_FORCE", "TERM"}, ciEnvVars...)
	for _, v := range valueCheckedVars {
		t.Setenv(v, envVars[v])
	}
}

func newTestCapabilities(options Options, isTerminal bool) *DefaultCapabilities {
	c := NewCapabilities(options)
	c.isTerminal = func() bool { return isTerminal }
	return c
}
