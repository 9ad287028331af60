package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

// CSVWriter writes pages as comma separated values with a header row.
type CSVWriter struct{}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Format returns FormatCSV.
func (*CSVWriter) Format() Format {
	return FormatCSV
}

// Write encodes pages to w.
func (*CSVWriter) Write(w io.Writer, pages []model.VisitedPage) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(rows(pages)); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}
