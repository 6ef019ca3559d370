// Package main provides the interactive cipher command: a menu to encrypt
// and decrypt messages and files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/isseis/go-digit-cipher/internal/cipher"
	"github.com/isseis/go-digit-cipher/internal/cmdcommon"
	"github.com/isseis/go-digit-cipher/internal/color"
	"github.com/isseis/go-digit-cipher/internal/menu"
	"github.com/isseis/go-digit-cipher/internal/terminal"
)

type cipherOptions struct {
	showTable bool
	color     bool
	noColor   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var options cipherOptions

	fs := flag.NewFlagSet("cipher", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs, stderr) }
	flags := cmdcommon.RegisterFlags(fs)
	fs.BoolVar(&options.showTable, "table", false, "Print the code table and exit")
	fs.BoolVar(&options.color, "color", false, "Force coloured menu output")
	fs.BoolVar(&options.noColor, "no-color", false, "Disable coloured menu output")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() > 0 {
		printUsage(fs, stderr)
		_, _ = fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", fs.Args())
		return 1
	}

	if options.showTable {
		printTable(cipher.DefaultTable(), stdout)
		return 0
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

	capabilities := terminal.NewCapabilities(terminal.Options{
		ForceColor:   options.color,
		DisableColor: options.noColor,
	})
	m := menu.New(env.Codec, env.Processor, stdin, stdout, menu.Options{
		Palette:     color.NewPalette(capabilities.SupportsColor()),
		MaxLineSize: int(env.Config.Input.MaxFileSize),
	})
	if err := m.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintln(stdout)
			return 130
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printTable(table *cipher.Table, w io.Writer) {
	for _, entry := range table.Entries() {
		_, _ = fmt.Fprintf(w, "%s  %q\n", entry.Code, entry.Symbol)
	}
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: %s [flags]\n", filepath.Base(os.Args[0]))
	fs.PrintDefaults()
}
