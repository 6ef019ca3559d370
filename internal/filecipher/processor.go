// Package filecipher encrypts and decrypts whole text files, writing the
// result next to the input under a derived name.
package filecipher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/isseis/go-digit-cipher/internal/cipher"
	"github.com/isseis/go-digit-cipher/internal/pathname"
	"github.com/isseis/go-digit-cipher/internal/safefileio"
)

// ErrInputNotFound is returned when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Direction names the transform applied to a file.
type Direction string

// Supported directions.
const (
	Encrypt Direction = "encrypt"
	Decrypt Direction = "decrypt"
)

// Options controls reading and writing.
type Options struct {
	Namer       pathname.Namer
	MaxFileSize int64
	TrimNewline bool
	Overwrite   bool
	FileMode    os.FileMode
}

// DefaultOptions returns the options used when no config file is given.
func DefaultOptions() Options {
	return Options{
		Namer:       pathname.NewNamer(),
		MaxFileSize: safefileio.DefaultMaxFileSize,
		TrimNewline: true,
		FileMode:    0o600,
	}
}

// Result describes one processed file.
type Result struct {
	Direction  Direction
	InputPath  string
	OutputPath string
	// Text is what was written to OutputPath.
	Text string
}

// Processor applies a Codec to files. It holds no mutable state.
type Processor struct {
	codec   *cipher.Codec
	options Options
	logger  *slog.Logger
}

// NewProcessor creates a Processor. A nil codec uses the built-in table and
// a nil logger uses slog.Default().
func NewProcessor(codec *cipher.Codec, options Options, logger *slog.Logger) *Processor {
	if codec == nil {
		codec = cipher.NewCodec(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{codec: codec, options: options, logger: logger}
}

// EncryptFile encrypts the text in inputPath and writes the digits to
// Namer.EncryptedPath(inputPath).
func (p *Processor) EncryptFile(inputPath string) (*Result, error) {
	return p.process(Encrypt, inputPath)
}

// DecryptFile decrypts the digits in inputPath and writes the text to
// Namer.DecryptedPath(inputPath).
func (p *Processor) DecryptFile(inputPath string) (*Result, error) {
	return p.process(Decrypt, inputPath)
}

func (p *Processor) process(direction Direction, inputPath string) (*Result, error) {
	content, err := safefileio.ReadFile(inputPath, p.options.MaxFileSize)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	input := string(content)
	if p.options.TrimNewline {
		input = trimTrailingNewline(input)
	}

	var (
		output     string
		outputPath string
	)
	switch direction {
	case Encrypt:
		output, err = p.codec.Encode(input)
		outputPath = p.options.Namer.EncryptedPath(inputPath)
	case Decrypt:
		output, err = p.codec.Decode(input)
		outputPath = p.options.Namer.DecryptedPath(inputPath)
	default:
		return nil, fmt.Errorf("unknown direction %q", direction)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s %s: %w", direction, inputPath, err)
	}

	if err := safefileio.WriteFile(outputPath, []byte(output), p.options.FileMode, p.options.Overwrite); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	p.logger.Info("File "+string(direction)+"ed",
		"input", inputPath,
		"output", outputPath,
		"chars", utf8.RuneCountInString(input))

	return &Result{
		Direction:  direction,
		InputPath:  inputPath,
		OutputPath: outputPath,
		Text:       output,
	}, nil
}

// trimTrailingNewline removes a single trailing "\n" or "\r\n".
func trimTrailingNewline(s string) string {
	if trimmed, ok := strings.CutSuffix(s, "\n"); ok {
		return strings.TrimSuffix(trimmed, "\r")
	}
	return s
}
