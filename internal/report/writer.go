package report

import (
	"io"
	"time"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

// timeLayout is used for timestamps in text and Markdown output.
const timeLayout = "2006-01-02 15:04:05 MST"

// Writer defines the interface for history output.
type Writer interface {
	// WriteHistory outputs a list of stored walks.
	// Returns the number of bytes written and any error encountered.
	WriteHistory(walks []model.WalkSummary) (int, error)

	// WriteWalk outputs one walk with all of its pages.
	WriteWalk(walk *model.Walk) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// formatTime renders t in local time, or "-" for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// formatDuration rounds d for display.
func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}

// shortID returns the first block of a UUID for compact listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
