// Package testhelpers provides common helper functions for tests
package testhelpers

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeTempDir creates a temporary directory and resolves any symlinks in its
// path, so the parent-directory symlink checks in safefileio accept it.
func SafeTempDir(t *testing.T) string {
	t.Helper()
	realPath, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err, "Failed to resolve symlinks in temp dir")
	return realPath
}

// WriteFile creates dir/name with content and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path) // #nosec G304 - test path
	require.NoError(t, err)
	return string(content)
}

// RestoreDefaultLogger reinstates the current slog default when the test
// ends. Use it around code that calls slog.SetDefault.
func RestoreDefaultLogger(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}
