package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/isseis/go-digit-cipher/internal/terminal"
)

// Static errors for InteractiveHandler validation
var (
	ErrInteractiveHandlerWriterRequired       = errors.New("InteractiveHandler: Writer is required")
	ErrInteractiveHandlerCapabilitiesRequired = errors.New("InteractiveHandler: Capabilities is required")
	ErrInteractiveHandlerFormatterRequired    = errors.New("InteractiveHandler: Formatter is required")
)

// InteractiveHandler writes short, optionally coloured lines for a person at
// a terminal. Errors get a hint naming the JSON log file when there is one.
type InteractiveHandler struct {
	capabilities terminal.Capabilities
	formatter    MessageFormatter
	writer       io.Writer
	level        slog.Level
	logFilePath  string
	attrs        []slog.Attr
	groups       []string
}

// InteractiveHandlerOptions configures the InteractiveHandler.
type InteractiveHandlerOptions struct {
	Level        slog.Level
	Writer       io.Writer
	Capabilities terminal.Capabilities
	Formatter    MessageFormatter

	// LogFilePath is the JSON log of this run, if any.
	LogFilePath string
}

// NewInteractiveHandler creates an InteractiveHandler.
func NewInteractiveHandler(opts InteractiveHandlerOptions) (*InteractiveHandler, error) {
	if opts.Writer == nil {
		return nil, ErrInteractiveHandlerWriterRequired
	}
	if opts.Capabilities == nil {
		return nil, ErrInteractiveHandlerCapabilitiesRequired
	}
	if opts.Formatter == nil {
		return nil, ErrInteractiveHandlerFormatterRequired
	}

	return &InteractiveHandler{
		capabilities: opts.Capabilities,
		formatter:    opts.Formatter,
		writer:       opts.Writer,
		level:        opts.Level,
		logFilePath:  opts.LogFilePath,
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *InteractiveHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.capabilities.IsInteractive() && level >= h.level
}

// Handle writes the formatted record.
func (h *InteractiveHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.capabilities.IsInteractive() {
		return nil
	}

	record := r.Clone()
	record.AddAttrs(h.prefixedAttrs()...)

	useColor := h.capabilities.SupportsColor()
	lines := h.formatter.FormatRecord(record, useColor) + "\n"
	if record.Level >= slog.LevelError {
		if hint := h.formatter.FormatLogFileHint(h.logFilePath, useColor); hint != "" {
			lines += hint + "\n"
		}
	}

	_, err := io.WriteString(h.writer, lines)
	return err
}

// prefixedAttrs qualifies accumulated attributes with the active groups.
func (h *InteractiveHandler) prefixedAttrs() []slog.Attr {
	if len(h.groups) == 0 {
		return h.attrs
	}

	prefix := strings.Join(h.groups, ".") + "."
	prefixed := make([]slog.Attr, len(h.attrs))
	for i, attr := range h.attrs {
		prefixed[i] = slog.Attr{Key: prefix + attr.Key, Value: attr.Value}
	}
	return prefixed
}

// WithAttrs returns a new handler with additional attributes.
func (h *InteractiveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new handler with an additional group.
func (h *InteractiveHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}
