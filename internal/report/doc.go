// Package report renders walk history for the history command.
//
// This package contains writers for different output formats:
//   - SimpleWriter: aligned text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with tables and a chart
//
// Writers implement the Writer interface and are interchangeable.
package report
