package logging

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/isseis/go-digit-cipher/internal/color"
)

// MessageFormatter renders records for a person reading a terminal.
type MessageFormatter interface {
	// FormatRecord renders level, message and the attributes worth showing.
	FormatRecord(record slog.Record, useColor bool) string

	// FormatLogFileHint points the reader at the JSON log for an error.
	// It returns "" when there is no log file.
	FormatLogFileHint(logPath string, useColor bool) string
}

// interactiveSkipKeys are attributes that only matter in the JSON log.
var interactiveSkipKeys = []string{"run_id", "hostname", "pid", "schema_version", "time", "level", "msg"}

// DefaultMessageFormatter is the MessageFormatter used by InteractiveHandler.
type DefaultMessageFormatter struct{}

// NewDefaultMessageFormatter creates a new DefaultMessageFormatter.
func NewDefaultMessageFormatter() *DefaultMessageFormatter {
	return &DefaultMessageFormatter{}
}

// FormatRecord renders "LEVEL message key=value ...".
func (f *DefaultMessageFormatter) FormatRecord(record slog.Record, useColor bool) string {
	var sb strings.Builder

	sb.WriteString(f.formatLevel(record.Level, useColor))
	sb.WriteString(" ")
	sb.WriteString(record.Message)

	record.Attrs(func(attr slog.Attr) bool {
		key := attr.Key
		if i := strings.LastIndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		if slices.Contains(interactiveSkipKeys, key) {
			return true
		}
		sb.WriteString(" ")
		sb.WriteString(attr.Key)
		sb.WriteString("=")
		sb.WriteString(f.formatValue(attr.Value))
		return true
	})

	return sb.String()
}

// FormatLogFileHint formats a hint naming the JSON log file.
func (f *DefaultMessageFormatter) FormatLogFileHint(logPath string, useColor bool) string {
	if logPath == "" {
		return ""
	}
	prefix := "HINT: "
	if useColor {
		prefix = color.Cyan("* ")
	}
	return prefix + "See " + logPath + " for details"
}

func (f *DefaultMessageFormatter) formatLevel(level slog.Level, useColor bool) string {
	if useColor {
		switch level {
		case slog.LevelDebug:
			return color.Gray("* DEBUG")
		case slog.LevelInfo:
			return color.Green("+ INFO ")
		case slog.LevelWarn:
			return color.Yellow("! WARN ")
		case slog.LevelError:
			return color.Red("X ERROR")
		default:
			return color.Gray("> " + level.String())
		}
	}

	switch level {
	case slog.LevelDebug:
		return "[DEBUG]"
	case slog.LevelInfo:
		return "[INFO ]"
	case slog.LevelWarn:
		return "[WARN ]"
	case slog.LevelError:
		return "[ERROR]"
	default:
		return "[" + strings.ToUpper(level.String()) + "]"
	}
}

func (f *DefaultMessageFormatter) formatValue(value slog.Value) string {
	value = value.Resolve()
	switch value.Kind() {
	case slog.KindString:
		s := value.String()
		if strings.ContainsAny(s, " \t\"") {
			return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
		}
		return s
	case slog.KindTime:
		return value.Time().Format(time.RFC3339)
	case slog.KindGroup:
		attrs := value.Group()
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, attr.Key+"="+f.formatValue(attr.Value))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return value.String()
	}
}
