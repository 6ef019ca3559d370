// Package bootstrap wires the process-wide slog logger for the cipher commands.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-digit-cipher/internal/logging"
	"github.com/isseis/go-digit-cipher/internal/terminal"
)

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	Level  slog.Level
	LogDir string // JSON run log directory; empty disables the file log
	RunID  string

	// ConsoleWriter receives console output. stdout carries cipher
	// results, so the default is os.Stderr.
	ConsoleWriter io.Writer

	ForceInteractive bool
	// ForceQuiet disables interactive output and hides console records below WARN.
	ForceQuiet bool

	// Capabilities overrides terminal detection; nil detects from the process.
	Capabilities terminal.Capabilities
}

// Logger is the result of SetupLogger.
type Logger struct {
	*slog.Logger

	// LogPath is the JSON run log, or "" when LogDir was empty.
	LogPath string

	logFile io.Closer
}

// Close flushes and closes the run log file, if any.
func (l *Logger) Close() error {
	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// SetupLogger builds the handler chain (interactive, plain text, JSON file),
// installs it as the slog default and returns it.
//
// It is meant to be called once per process, before any logging happens.
func SetupLogger(config LoggerConfig) (*Logger, error) {
	if config.RunID == "" {
		config.RunID = logging.GenerateRunID()
	}

	capabilities := config.Capabilities
	if capabilities == nil {
		capabilities = terminal.NewCapabilities(terminal.Options{
			ForceInteractive:    config.ForceInteractive,
			ForceNonInteractive: config.ForceQuiet,
		})
	}

	consoleWriter := config.ConsoleWriter
	if consoleWriter == nil {
		consoleWriter = os.Stderr
	}

	consoleLevel := config.Level
	if config.ForceQuiet && consoleLevel < slog.LevelWarn {
		consoleLevel = slog.LevelWarn
	}

	result := &Logger{}
	var handlers []slog.Handler

	// 1. Machine-readable run log, opened first so the console can point at it
	if config.LogDir != "" {
		logFile, logPath, err := logging.OpenRunLog(config.LogDir, config.RunID)
		if err != nil {
			return nil, fmt.Errorf("invalid log directory: %w", err)
		}
		result.LogPath = logPath
		result.logFile = logFile

		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		jsonHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: config.Level}).
			WithAttrs([]slog.Attr{
				slog.String("hostname", hostname),
				slog.Int("pid", os.Getpid()),
				slog.Int("schema_version", 1),
				slog.String("run_id", config.RunID),
			})
		handlers = append(handlers, jsonHandler)
	}

	// 2. Interactive handler for a person at a terminal
	if capabilities.IsInteractive() {
		interactiveHandler, err := logging.NewInteractiveHandler(logging.InteractiveHandlerOptions{
			Level:        consoleLevel,
			Writer:       consoleWriter,
			Capabilities: capabilities,
			Formatter:    logging.NewDefaultMessageFormatter(),
			LogFilePath:  result.LogPath,
		})
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to create interactive handler: %w", err), result.Close())
		}
		handlers = append(handlers, interactiveHandler)
	}

	// 3. Plain text for pipes and CI
	textHandler, err := logging.NewConditionalTextHandler(logging.ConditionalTextHandlerOptions{
		Level:        consoleLevel,
		Writer:       consoleWriter,
		Capabilities: capabilities,
		OmitTime:     true,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create conditional text handler: %w", err), result.Close())
	}
	handlers = append(handlers, textHandler)

	result.Logger = slog.New(logging.NewMultiHandler(handlers...))
	slog.SetDefault(result.Logger)

	slog.Debug("Logger initialized",
		"log-level", config.Level,
		"log-dir", config.LogDir,
		"run_id", config.RunID,
		"interactive_mode", capabilities.IsInteractive(),
		"color_support", capabilities.SupportsColor())

	return result, nil
}
