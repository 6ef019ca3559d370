// Package menu implements the interactive encrypt/decrypt loop of the
// cipher command.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/isseis/go-digit-cipher/internal/cipher"
	"github.com/isseis/go-digit-cipher/internal/color"
	"github.com/isseis/go-digit-cipher/internal/filecipher"
	"github.com/isseis/go-digit-cipher/internal/safefileio"
)

// Menu choices
const (
	choiceEncryptMessage = "1"
	choiceEncryptFile    = "2"
	choiceDecryptMessage = "3"
	choiceDecryptFile    = "4"
	choiceExit           = "5"
)

var options = []string{
	choiceEncryptMessage + ". Encrypt message",
	choiceEncryptFile + ". Encrypt a file",
	choiceDecryptMessage + ". Decrypt message",
	choiceDecryptFile + ". Decrypt a file",
	choiceExit + ". Exit",
}

// DefaultMaxLineSize is the longest input line accepted when Options leaves
// MaxLineSize unset. It matches the default input file limit.
const DefaultMaxLineSize = safefileio.DefaultMaxFileSize

// initialLineBuffer is the scanner's starting buffer; it grows up to the line limit.
const initialLineBuffer = 64 * 1024

// Options configures a Menu.
type Options struct {
	Palette color.Palette

	// MaxLineSize is the longest line, in bytes, read for a choice, a
	// message or a path. 0 selects DefaultMaxLineSize.
	MaxLineSize int
}

// FileCipher is the part of filecipher.Processor the menu uses.
type FileCipher interface {
	EncryptFile(inputPath string) (*filecipher.Result, error)
	DecryptFile(inputPath string) (*filecipher.Result, error)
}

// Menu reads choices line by line and writes prompts and results.
type Menu struct {
	codec       *cipher.Codec
	files       FileCipher
	in          io.Reader
	out         io.Writer
	palette     color.Palette
	maxLineSize int
}

// New creates a Menu. A nil codec uses the built-in table; files is required.
func New(codec *cipher.Codec, files FileCipher, in io.Reader, out io.Writer, opts Options) *Menu {
	if codec == nil {
		codec = cipher.NewCodec(nil)
	}
	maxLineSize := opts.MaxLineSize
	if maxLineSize <= 0 {
		maxLineSize = DefaultMaxLineSize
	}
	return &Menu{
		codec:       codec,
		files:       files,
		in:          in,
		out:         out,
		palette:     opts.Palette,
		maxLineSize: maxLineSize,
	}
}

type line struct {
	text string
	err  error
}

// Run shows the menu until the user exits, the input ends or ctx is done.
// Exit and end of input return nil; cancellation returns ctx.Err().
func (m *Menu) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan line)
	go m.scan(ctx, lines)

	m.println(m.palette.Title("Digit cipher"))

	for {
		m.println("")
		m.println("Choose an option:")
		for _, option := range options {
			m.println(option)
		}

		choice, err := m.prompt(ctx, lines, "Enter choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch strings.TrimSpace(choice) {
		case choiceEncryptMessage:
			err = m.transformMessage(ctx, lines, "Enter message: ", "Encrypted", m.codec.Encode)
		case choiceEncryptFile:
			err = m.transformFile(ctx, lines, "Encrypted", m.files.EncryptFile)
		case choiceDecryptMessage:
			err = m.transformMessage(ctx, lines, "Enter encrypted numbers: ", "Decrypted", m.codec.Decode)
		case choiceDecryptFile:
			err = m.transformFile(ctx, lines, "Decrypted", m.files.DecryptFile)
		case choiceExit:
			m.println("Goodbye")
			return nil
		default:
			m.println(m.palette.Error("Invalid choice, try again."))
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (m *Menu) transformMessage(ctx context.Context, lines <-chan line, prompt, label string, transform func(string) (string, error)) error {
	text, err := m.prompt(ctx, lines, prompt)
	if err != nil {
		return err
	}

	result, err := transform(text)
	if err != nil {
		m.printError(err)
		return nil
	}
	m.println(m.palette.Success(label+":") + " " + result)
	return nil
}

func (m *Menu) transformFile(ctx context.Context, lines <-chan line, label string, transform func(string) (*filecipher.Result, error)) error {
	path, err := m.prompt(ctx, lines, "Enter the file path: ")
	if err != nil {
		return err
	}

	result, err := transform(strings.TrimSpace(path))
	if err != nil {
		m.printError(err)
		return nil
	}
	m.println(m.palette.Success(label+" file created:") + " " + result.OutputPath)
	return nil
}

func (m *Menu) printError(err error) {
	msg := "Error: " + err.Error()
	if errors.Is(err, filecipher.ErrInputNotFound) {
		msg += ". Please try again."
	}
	m.println(m.palette.Error(msg))
}

// prompt writes label and waits for the next input line.
func (m *Menu) prompt(ctx context.Context, lines <-chan line, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, _ = fmt.Fprint(m.out, m.palette.Prompt(label))
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// scan feeds input lines to the channel and closes it at end of input.
func (m *Menu) scan(ctx context.Context, lines chan<- line) {
	defer close(lines)

	// Room for the line terminator on top of the content limit.
	bufferSize := m.maxLineSize + len("\r\n")
	scanner := bufio.NewScanner(m.in)
	scanner.Buffer(make([]byte, 0, min(initialLineBuffer, bufferSize)), bufferSize)
	for scanner.Scan() {
		select {
		case lines <- line{text: strings.TrimSuffix(scanner.Text(), "\r")}:
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("input line exceeds %d bytes: %w", m.maxLineSize, err)
		}
		select {
		case lines <- line{err: fmt.Errorf("failed to read input: %w", err)}:
		case <-ctx.Done():
		}
	}
}

func (m *Menu) println(text string) {
	_, _ = fmt.Fprintln(m.out, text)
}

// endOfInput maps io.EOF to a clean exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
