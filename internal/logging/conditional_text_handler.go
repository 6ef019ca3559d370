package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/isseis/go-digit-cipher/internal/terminal"
)

// Static errors for ConditionalTextHandler validation
var (
	ErrConditionalTextHandlerCapabilitiesRequired = errors.New("ConditionalTextHandler: Capabilities is required")
	ErrConditionalTextHandlerWriterRequired       = errors.New("ConditionalTextHandler: Writer is required")
)

// ConditionalTextHandlerOptions configures the ConditionalTextHandler.
type ConditionalTextHandlerOptions struct {
	Capabilities terminal.Capabilities
	Writer       io.Writer
	Level        slog.Leveler

	// OmitTime drops the time attribute; the JSON run log keeps it.
	OmitTime bool
}

// ConditionalTextHandler emits key=value lines for pipes and CI. While the
// process is interactive it is disabled and InteractiveHandler takes over.
type ConditionalTextHandler struct {
	inner        slog.Handler
	capabilities terminal.Capabilities
}

// NewConditionalTextHandler creates a ConditionalTextHandler.
func NewConditionalTextHandler(opts ConditionalTextHandlerOptions) (*ConditionalTextHandler, error) {
	switch {
	case opts.Capabilities == nil:
		return nil, ErrConditionalTextHandlerCapabilitiesRequired
	case opts.Writer == nil:
		return nil, ErrConditionalTextHandlerWriterRequired
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.OmitTime {
		handlerOpts.ReplaceAttr = dropTime
	}

	return &ConditionalTextHandler{
		inner:        slog.NewTextHandler(opts.Writer, handlerOpts),
		capabilities: opts.Capabilities,
	}, nil
}

// dropTime removes the top-level time attribute.
func dropTime(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return attr
}

func (h *ConditionalTextHandler) active() bool {
	return !h.capabilities.IsInteractive()
}

// Enabled is false while interactive, otherwise the text handler decides.
func (h *ConditionalTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.active() && h.inner.Enabled(ctx, level)
}

// Handle writes the record unless the process is interactive.
func (h *ConditionalTextHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.active() {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs returns a new handler with additional attributes.
func (h *ConditionalTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(h.inner.WithAttrs(attrs))
}

// WithGroup returns a new handler with an additional group.
func (h *ConditionalTextHandler) WithGroup(name string) slog.Handler {
	return h.derive(h.inner.WithGroup(name))
}

func (h *ConditionalTextHandler) derive(inner slog.Handler) *ConditionalTextHandler {
	return &ConditionalTextHandler{inner: inner, capabilities: h.capabilities}
}
