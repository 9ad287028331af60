// Package export writes the pages recorded during a walk to tabular files.
//
// Two artifacts are produced from the same data: a CSV file and an XLSX
// workbook. Both contain a Title and a URL column and list the pages sorted
// by title. The workbook has a bold header row and columns sized to their
// longest value.
//
// Example:
//
//	artifacts, err := export.Files(".", "wiki_urls", rec.Pages())
//	for _, a := range artifacts {
//	    if a.Err == nil {
//	        fmt.Println("Data saved to", a.Path)
//	    }
//	}
package export
