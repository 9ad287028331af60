package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

// SimpleWriter outputs human-readable text.
type SimpleWriter struct {
	baseWriter

	// fullIDs prints complete walk IDs instead of the first block.
	fullIDs bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithFullIDs prints complete walk IDs in listings.
func WithFullIDs(full bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.fullIDs = full
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteHistory outputs one line per walk.
func (w *SimpleWriter) WriteHistory(walks []model.WalkSummary) (int, error) {
	if len(walks) == 0 {
		return fmt.Fprintln(w.output, "No walks recorded yet.")
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tPAGES\tREASON\tSTART URL")
	for _, s := range walks {
		id := s.ID
		if !w.fullIDs {
			id = shortID(id)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			id,
			formatTime(s.StartedAt),
			formatDuration(s.FinishedAt.Sub(s.StartedAt)),
			s.PageCount,
			s.Reason,
			emptyDash(s.StartURL),
		)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	return w.output.Write([]byte(sb.String()))
}

// WriteWalk outputs a walk header followed by its pages in visitation order.
func (w *SimpleWriter) WriteWalk(walk *model.Walk) (int, error) {
	if walk == nil {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString("Walk " + walk.ID + "\n")
	sb.WriteString(strings.Repeat("=", 5+len(walk.ID)) + "\n")
	sb.WriteString("Start URL: " + emptyDash(walk.StartURL) + "\n")
	sb.WriteString("Started:   " + formatTime(walk.StartedAt) + "\n")
	sb.WriteString("Duration:  " + formatDuration(walk.Duration()) + "\n")
	sb.WriteString("Pages:     " + strconv.Itoa(len(walk.Pages)) + "\n")
	sb.WriteString("Ended:     " + walk.Reason.String() + "\n")
	if walk.Error != "" {
		sb.WriteString("Error:     " + walk.Error + "\n")
	}

	if len(walk.Pages) > 0 {
		sb.WriteString("\n")
		tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tTITLE\tURL")
		for i, p := range walk.Pages {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, p.Title, p.URL)
		}
		if err := tw.Flush(); err != nil {
			return 0, err
		}
	}

	return w.output.Write([]byte(sb.String()))
}

func emptyDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
