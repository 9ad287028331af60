package export

import (
	"io"
	"slices"
	"strings"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

// Header is the column header row shared by every format.
var Header = []string{"Title", "URL"}

// Format identifies an output format.
type Format string

const (
	// FormatCSV is comma separated values.
	FormatCSV Format = "csv"

	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
)

// Extension returns the file name extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Writer writes a list of pages in one format.
// Pages are written in the order given; callers sort them first.
type Writer interface {
	// Format returns the format produced by the writer.
	Format() Format

	// Write encodes pages to w.
	Write(w io.Writer, pages []model.VisitedPage) error
}

// SortByTitle returns a copy of pages ordered by title. The comparison is
// byte-wise and case-sensitive, and pages with equal titles keep their
// visitation order.
func SortByTitle(pages []model.VisitedPage) []model.VisitedPage {
	sorted := slices.Clone(pages)
	slices.SortStableFunc(sorted, func(a, b model.VisitedPage) int {
		return strings.Compare(a.Title, b.Title)
	})
	return sorted
}

// rows converts pages to string rows without the header.
func rows(pages []model.VisitedPage) [][]string {
	out := make([][]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, []string{p.Title, p.URL})
	}
	return out
}
