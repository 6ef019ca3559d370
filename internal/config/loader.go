package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/isseis/go-digit-cipher/internal/safefileio"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// maxConfigSize bounds the settings file read.
const maxConfigSize = 64 * 1024

// Format identifies the settings file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var (
	// ErrUnsupportedFormat is returned for an extension other than .toml, .yaml or .yml
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	// ErrInvalidConfig is wrapped by every validation failure
	ErrInvalidConfig = errors.New("invalid config")
)

// FieldError describes a single invalid setting.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid config: %s = %q (%s)", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads, parses and validates the settings file at path.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	content, err := safefileio.ReadFile(path, maxConfigSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(content, format)
}

// Parse decodes content, applies defaults and validates the result.
// Unknown keys are rejected.
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(content))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		// An empty document is a valid, all-defaults config.
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field of an already defaulted config.
func Validate(cfg *Config) error {
	if cfg.Input.MaxFileSize < 0 {
		return &FieldError{
			Field:  "input.max_file_size",
			Value:  fmt.Sprint(cfg.Input.MaxFileSize),
			Reason: "must be positive",
		}
	}

	if _, err := parseFileMode(cfg.Output.FileMode); err != nil {
		return &FieldError{
			Field:  "output.file_mode",
			Value:  cfg.Output.FileMode,
			Reason: "must be an octal permission such as 0600",
		}
	}

	if err := cfg.Namer().Validate(); err != nil {
		return &FieldError{
			Field:  "output.encrypted_suffix/decrypted_suffix",
			Value:  cfg.Output.EncryptedSuffix + " " + cfg.Output.DecryptedSuffix,
			Reason: err.Error(),
		}
	}

	if _, err := parseLogLevel(cfg.Log.Level); err != nil {
		return &FieldError{
			Field:  "log.level",
			Value:  cfg.Log.Level,
			Reason: "must be one of debug, info, warn, error",
		}
	}

	return nil
}
