// Package cmdcommon provides common functionality for the cipher command-line tools.
package cmdcommon

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/isseis/go-digit-cipher/internal/bootstrap"
	"github.com/isseis/go-digit-cipher/internal/cipher"
	"github.com/isseis/go-digit-cipher/internal/config"
	"github.com/isseis/go-digit-cipher/internal/filecipher"
)

// StdinArg selects standard input as the text source.
const StdinArg = "-"

var (
	// ErrNoInput is returned when neither text nor files were given
	ErrNoInput = errors.New("no input: pass text as arguments, '-' for stdin, or -file")
	// ErrInvalidLogLevel is returned for an unknown -log-level value
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrTextAndFiles is returned when text and -file are combined
	ErrTextAndFiles = errors.New("text arguments cannot be combined with -file")
)

// Flags are the options shared by the cipher commands.
type Flags struct {
	ConfigPath  string
	LogLevel    string
	LogDir      string
	Quiet       bool
	Interactive bool
	Files       FileList
}

// FileList is a repeatable string flag.
type FileList []string

// String implements flag.Value.
func (f *FileList) String() string {
	return strings.Join(*f, ",")
}

// Set implements flag.Value.
func (f *FileList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	flags := &Flags{}
	fs.StringVar(&flags.ConfigPath, "config", "", "Path to a TOML or YAML config file")
	fs.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	fs.StringVar(&flags.LogDir, "log-dir", "", "Directory for the JSON run log; overrides the config file")
	fs.BoolVar(&flags.Quiet, "quiet", false, "Only show warnings and errors on the console")
	fs.BoolVar(&flags.Interactive, "interactive", false, "Force human-readable console logs")
	return flags
}

// RegisterFileFlag adds the repeatable -file flag.
func (f *Flags) RegisterFileFlag(fs *flag.FlagSet) {
	fs.Var(&f.Files, "file", "File to process (repeatable)")
}

// Environment is everything a command needs after flag parsing.
type Environment struct {
	Config    *config.Config
	Logger    *bootstrap.Logger
	Codec     *cipher.Codec
	Processor *filecipher.Processor
}

// Setup loads the config, applies flag overrides and installs the logger.
// The caller must Close the returned Environment.
func Setup(flags *Flags, console io.Writer) (*Environment, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel()
	if flags.LogLevel != "" {
		if err := level.UnmarshalText([]byte(flags.LogLevel)); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, flags.LogLevel)
		}
	}

	logDir := cfg.Log.Dir
	if flags.LogDir != "" {
		logDir = flags.LogDir
	}

	logger, err := bootstrap.SetupLogger(bootstrap.LoggerConfig{
		Level:            level,
		LogDir:           logDir,
		ConsoleWriter:    console,
		ForceInteractive: flags.Interactive,
		ForceQuiet:       flags.Quiet,
	})
	if err != nil {
		return nil, err
	}

	codec := cipher.NewCodec(nil)
	return &Environment{
		Config:    cfg,
		Logger:    logger,
		Codec:     codec,
		Processor: filecipher.NewProcessor(codec, ProcessorOptions(cfg), logger.Logger),
	}, nil
}

// Close releases the run log.
func (e *Environment) Close() error {
	if e == nil || e.Logger == nil {
		return nil
	}
	return e.Logger.Close()
}

// ProcessorOptions converts the file-related config sections.
func ProcessorOptions(cfg *config.Config) filecipher.Options {
	return filecipher.Options{
		Namer:       cfg.Namer(),
		MaxFileSize: cfg.Input.MaxFileSize,
		TrimNewline: cfg.TrimNewline(),
		Overwrite:   cfg.Output.Overwrite,
		FileMode:    cfg.FileMode(),
	}
}

// ValidateInput checks that exactly one of text and files was given.
func ValidateInput(args []string, files []string) error {
	switch {
	case len(args) == 0 && len(files) == 0:
		return ErrNoInput
	case len(args) > 0 && len(files) > 0:
		return ErrTextAndFiles
	default:
		return nil
	}
}

// ReadText joins positional arguments with sep, or reads stdin when the
// only argument is "-". One trailing newline is dropped from stdin.
func ReadText(args []string, sep string, stdin io.Reader, maxSize int64) (string, error) {
	if len(args) != 1 || args[0] != StdinArg {
		return strings.Join(args, sep), nil
	}

	content, err := io.ReadAll(io.LimitReader(stdin, maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if int64(len(content)) > maxSize {
		return "", fmt.Errorf("stdin exceeds %d bytes", maxSize)
	}

	text := strings.TrimSuffix(string(content), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// FileFunc transforms one file.
type FileFunc func(inputPath string) (*filecipher.Result, error)

// ProcessFiles runs transform over files, printing "[i/n] path: OK (output)"
// or FAILED per file and a summary. It returns the exit code.
func ProcessFiles(files []string, transform FileFunc, stdout, stderr io.Writer) int {
	total := len(files)
	label := "files"
	if total == 1 {
		label = "file"
	}
	_, _ = fmt.Fprintf(stdout, "Processing %d %s...\n", total, label)

	successes := 0
	failures := 0
	for idx, filePath := range files {
		_, _ = fmt.Fprintf(stdout, "[%d/%d] %s: ", idx+1, total, filePath)
		result, err := transform(filePath)
		if err != nil {
			failures++
			_, _ = fmt.Fprintln(stdout, "FAILED")
			_, _ = fmt.Fprintf(stderr, "Error processing %s: %v\n", filePath, err)
			slog.Debug("File processing failed", "input", filePath, "error", err)
			continue
		}
		successes++
		_, _ = fmt.Fprintf(stdout, "OK (%s)\n", result.OutputPath)
	}

	_, _ = fmt.Fprintf(stdout, "\nSummary: %d succeeded, %d failed\n", successes, failures)
	if failures > 0 {
		return 1
	}
	return 0
}
