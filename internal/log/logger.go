package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Format selects the log output encoding.
type Format string

const (
	// FormatText writes leveled, human-readable lines.
	FormatText Format = "text"

	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown log format")

// ParseFormat converts a format name. The empty string selects FormatText.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (expected text or json)", ErrUnknownFormat, name)
	}
}

// NewLogger creates a redacting logger writing to w.
// verbose selects Debug level; otherwise only warnings and errors are written.
func NewLogger(w io.Writer, verbose bool, format Format) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Prefix:          "wikiwalk",
		})
	}

	return slog.New(NewRedactingHandler(handler))
}
