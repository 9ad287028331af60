package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

// MarkdownWriter outputs history in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteHistory outputs a table of walks and a chart of how they ended.
func (w *MarkdownWriter) WriteHistory(walks []model.WalkSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Walk History")
	md.PlainText("")

	if len(walks) == 0 {
		md.Note("No walks recorded yet.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(walks))
	for _, s := range walks {
		rows = append(rows, []string{
			"`" + shortID(s.ID) + "`",
			formatTime(s.StartedAt),
			formatDuration(s.FinishedAt.Sub(s.StartedAt)),
			strconv.Itoa(s.PageCount),
			s.Reason.String(),
			escapeCell(emptyDash(s.StartURL)),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Started", "Duration", "Pages", "Reason", "Start URL"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeReasonChart(md, walks)

	return len(md.String()), md.Build()
}

// writeReasonChart writes a mermaid pie chart of termination reasons.
func (w *MarkdownWriter) writeReasonChart(md *markdown.Markdown, walks []model.WalkSummary) {
	counts := make(map[model.TerminationReason]uint64)
	for _, s := range walks {
		counts[s.Reason]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("How walks ended"),
		piechart.WithShowData(true),
	)
	for _, reason := range []model.TerminationReason{
		model.ReasonNoLinks,
		model.ReasonDuplicate,
		model.ReasonNoTitle,
		model.ReasonFetchFailed,
		model.ReasonInterrupted,
		model.ReasonSeedFailed,
		model.ReasonUnknown,
	} {
		if n := counts[reason]; n > 0 {
			chart.LabelAndIntValue(reason.String(), n)
		}
	}

	md.H2("Termination Reasons")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteWalk outputs one walk with a property table and its pages.
func (w *MarkdownWriter) WriteWalk(walk *model.Walk) (int, error) {
	if walk == nil {
		return 0, nil
	}
	md := markdown.NewMarkdown(w.output)

	md.H1("Walk " + walk.ID)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", escapeCell(emptyDash(walk.StartURL))},
			{"Started", formatTime(walk.StartedAt)},
			{"Finished", formatTime(walk.FinishedAt)},
			{"Duration", formatDuration(walk.Duration())},
			{"Pages", strconv.Itoa(len(walk.Pages))},
			{"Ended", walk.Reason.String()},
		},
	})
	md.PlainText("")

	switch {
	case walk.Reason.IsError():
		md.Warningf("The walk ended with an error: %s", emptyDash(walk.Error))
		md.PlainText("")
	case walk.Reason == model.ReasonInterrupted:
		md.Note("The walk was interrupted; the pages below were visited before it stopped.")
		md.PlainText("")
	}

	md.H2("Visited Pages")
	md.PlainText("")
	if len(walk.Pages) == 0 {
		md.PlainText("No pages were visited.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(walk.Pages))
	for i, p := range walk.Pages {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("[%s](%s)", escapeCell(p.Title), p.URL),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Page"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// escapeCell keeps pipes in titles from splitting table cells.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
