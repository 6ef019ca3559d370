package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/isseis/go-digit-cipher/internal/safefileio"
	"github.com/oklog/ulid/v2"
)

// File permissions for run logs
const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

var (
	// ErrEmptyLogDirectory indicates an empty log directory was requested
	ErrEmptyLogDirectory = errors.New("log directory cannot be empty")
	// ErrLogDirNotDirectory indicates the log path exists but is not a directory
	ErrLogDirNotDirectory = errors.New("log path is not a directory")
)

// GenerateRunID returns a new, lexically time-ordered run identifier.
func GenerateRunID() string {
	return ulid.Make().String()
}

// RunLogPath returns "<dir>/<host>_<timestamp>_<runID>.json".
func RunLogPath(dir, hostname, runID string, now time.Time) string {
	if hostname == "" {
		hostname = "unknown"
	}
	timestamp := now.UTC().Format("20060102T150405Z")
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s.json", hostname, timestamp, runID))
}

// ValidateLogDir creates dir if needed and checks it is a directory.
func ValidateLogDir(dir string) error {
	if dir == "" {
		return ErrEmptyLogDirectory
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat log directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrLogDirNotDirectory, dir)
	}
	return nil
}

// OpenRunLog creates a fresh JSON log file for this run in dir.
func OpenRunLog(dir, runID string) (*os.File, string, error) {
	if err := ValidateLogDir(dir); err != nil {
		return nil, "", err
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = ""
	}
	path := RunLogPath(dir, hostname, runID, time.Now())

	file, err := safefileio.CreateFile(path, logFilePerm)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file: %w", err)
	}
	return file, path, nil
}
