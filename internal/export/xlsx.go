package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

const (
	// SheetName is the worksheet that receives the data.
	SheetName = "Sheet1"

	// columnPadding is added to the longest value when sizing a column.
	columnPadding = 2
)

// XLSXWriter writes pages to a single-sheet workbook.
type XLSXWriter struct{}

// NewXLSXWriter creates an XLSXWriter.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// Format returns FormatXLSX.
func (*XLSXWriter) Format() Format {
	return FormatXLSX
}

// Write encodes pages to w as a workbook.
func (x *XLSXWriter) Write(w io.Writer, pages []model.VisitedPage) (err error) {
	f, err := x.build(pages)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// build fills a new workbook with the header, the rows, and column widths.
func (*XLSXWriter) build(pages []model.VisitedPage) (*excelize.File, error) {
	f := excelize.NewFile()

	table := append([][]string{Header}, rows(pages)...)
	widths := make([]int, len(Header))

	for r, row := range table {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			if err := f.SetCellStr(SheetName, cell, value); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
			widths[c] = max(widths[c], utf8.RuneCountInString(value))
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(Header), 1)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for c, width := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(width+columnPadding)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}

	return f, nil
}
