// Package color wraps text in ANSI escape sequences for the log formatter
// and the interactive menu.
//
//nolint:revive // package name conflicts with standard library
package color

// ANSI color codes
const (
	resetCode  = "\033[0m"
	boldCode   = "\033[1m"
	grayCode   = "\033[90m" // Bright black/gray
	redCode    = "\033[31m"
	greenCode  = "\033[32m"
	yellowCode = "\033[33m"
	cyanCode   = "\033[36m"
)

// Color wraps text with an ANSI escape sequence.
type Color func(text string) string

// NewColor creates a color function with the specified ANSI code.
func NewColor(ansiCode string) Color {
	return func(text string) string {
		return ansiCode + text + resetCode
	}
}

// Predefined color functions
var (
	Bold   = NewColor(boldCode)
	Gray   = NewColor(grayCode)
	Red    = NewColor(redCode)
	Green  = NewColor(greenCode)
	Yellow = NewColor(yellowCode)
	Cyan   = NewColor(cyanCode)
)

// Palette maps message roles to colors, or to plain text when disabled.
type Palette struct {
	enabled bool
}

// NewPalette returns a Palette; enabled is usually terminal.Capabilities.SupportsColor().
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// Enabled reports whether the palette emits escape sequences.
func (p Palette) Enabled() bool { return p.enabled }

// Success formats a successful result.
func (p Palette) Success(text string) string { return p.apply(Green, text) }

// Error formats an error message.
func (p Palette) Error(text string) string { return p.apply(Red, text) }

// Prompt formats an input prompt.
func (p Palette) Prompt(text string) string { return p.apply(Cyan, text) }

// Title formats a heading.
func (p Palette) Title(text string) string { return p.apply(Bold, text) }

// Muted formats secondary text.
func (p Palette) Muted(text string) string { return p.apply(Gray, text) }

func (p Palette) apply(c Color, text string) string {
	if !p.enabled {
		return text
	}
	return c(text)
}
