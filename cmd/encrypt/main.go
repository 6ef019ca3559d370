// Package main provides the encrypt command. It turns text into the
// two-digit code, either from arguments, from stdin or file by file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/isseis/go-digit-cipher/internal/cmdcommon"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("encrypt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs, stderr) }
	flags := cmdcommon.RegisterFlags(fs)
	flags.RegisterFileFlag(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if err := cmdcommon.ValidateInput(fs.Args(), flags.Files); err != nil {
		printUsage(fs, stderr)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	env, err := cmdcommon.Setup(flags, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := env.Close(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	if len(flags.Files) > 0 {
		return cmdcommon.ProcessFiles(flags.Files, env.Processor.EncryptFile, stdout, stderr)
	}

	text, err := cmdcommon.ReadText(fs.Args(), " ", stdin, env.Config.Input.MaxFileSize)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	encoded, err := env.Codec.Encode(text)
	if err != nil {
		slog.Error("Encryption failed", "error", err)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	slog.Debug("Message encrypted", "chars", len([]rune(text)))
	_, _ = fmt.Fprintln(stdout, encoded)
	return 0
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: %s [flags] <text>...\n", filepath.Base(os.Args[0]))
	_, _ = fmt.Fprintf(w, "       %s [flags] -\n", filepath.Base(os.Args[0]))
	_, _ = fmt.Fprintf(w, "       %s [flags] -file <path> [-file <path>...]\n", filepath.Base(os.Args[0]))
	fs.PrintDefaults()
}
