// Package config loads the optional settings file shared by the cipher
// commands. TOML and YAML are both accepted; the format follows the file
// extension.
//
// Example TOML:
//
//	[input]
//	max_file_size = 1048576
//	trim_trailing_newline = true
//
//	[output]
//	encrypted_suffix = "_encrypted"
//	decrypted_suffix = "_decrypted"
//	overwrite = false
//	file_mode = "0600"
//
//	[log]
//	level = "info"
//	dir = ""
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/isseis/go-digit-cipher/internal/pathname"
)

// Defaults applied to fields left unset.
const (
	DefaultMaxFileSize = 1 << 20
	DefaultFileMode    = "0600"
	DefaultLogLevel    = "info"
)

// Config is the root of the settings file.
// It should not be modified after Load returns it.
type Config struct {
	Input  InputConfig  `toml:"input" yaml:"input"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// InputConfig controls how input files are read.
type InputConfig struct {
	// MaxFileSize is the largest input file accepted, in bytes.
	// 0 selects DefaultMaxFileSize.
	MaxFileSize int64 `toml:"max_file_size" yaml:"max_file_size"`

	// TrimTrailingNewline strips one trailing "\n" or "\r\n" before the
	// transform. nil means true.
	TrimTrailingNewline *bool `toml:"trim_trailing_newline" yaml:"trim_trailing_newline"`
}

// OutputConfig controls how result files are named and written.
type OutputConfig struct {
	EncryptedSuffix string `toml:"encrypted_suffix" yaml:"encrypted_suffix"`
	DecryptedSuffix string `toml:"decrypted_suffix" yaml:"decrypted_suffix"`

	// Overwrite allows replacing an existing result file.
	Overwrite bool `toml:"overwrite" yaml:"overwrite"`

	// FileMode is the octal permission string for new result files.
	FileMode string `toml:"file_mode" yaml:"file_mode"`
}

// LogConfig selects log verbosity and an optional JSON log directory.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	Dir   string `toml:"dir" yaml:"dir"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Input.MaxFileSize == 0 {
		cfg.Input.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Input.TrimTrailingNewline == nil {
		trim := true
		cfg.Input.TrimTrailingNewline = &trim
	}
	if cfg.Output.EncryptedSuffix == "" {
		cfg.Output.EncryptedSuffix = pathname.DefaultEncryptedSuffix
	}
	if cfg.Output.DecryptedSuffix == "" {
		cfg.Output.DecryptedSuffix = pathname.DefaultDecryptedSuffix
	}
	if cfg.Output.FileMode == "" {
		cfg.Output.FileMode = DefaultFileMode
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// Namer returns the output file namer described by the config.
func (c *Config) Namer() pathname.Namer {
	return pathname.Namer{
		EncryptedSuffix: c.Output.EncryptedSuffix,
		DecryptedSuffix: c.Output.DecryptedSuffix,
	}
}

// FileMode returns the parsed output permission. Call Validate first;
// an unparsable value falls back to DefaultFileMode.
func (c *Config) FileMode() os.FileMode {
	mode, err := parseFileMode(c.Output.FileMode)
	if err != nil {
		mode, _ = parseFileMode(DefaultFileMode)
	}
	return mode
}

// LogLevel returns the parsed log level, or slog.LevelInfo when unparsable.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLogLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// TrimNewline reports whether input files lose their trailing newline.
func (c *Config) TrimNewline() bool {
	return c.Input.TrimTrailingNewline == nil || *c.Input.TrimTrailingNewline
}

func parseFileMode(value string) (os.FileMode, error) {
	mode, err := strconv.ParseUint(value, 8, 32)
	if err != nil {
		return 0, err
	}
	if mode > 0o777 {
		return 0, strconv.ErrRange
	}
	return os.FileMode(mode), nil
}

func parseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(value))
	return level, err
}
