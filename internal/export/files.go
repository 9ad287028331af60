package export

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

// DefaultBaseName is the file name, without extension, of the artifacts.
const DefaultBaseName = "wiki_urls"

// Artifact is the outcome of writing one output file.
type Artifact struct {
	// Format is the file format.
	Format Format

	// Path is the file location.
	Path string

	// Err is non-nil when the file could not be written.
	Err error
}

// Files sorts pages by title and writes one file per writer into dir, named
// base plus the format extension. With no writers given, the CSV and XLSX
// writers are used. Every writer runs even if another one fails.
//
// The returned slice has one Artifact per writer, in writer order. The error
// is the first failure, wrapping ErrExport.
func Files(dir, base string, pages []model.VisitedPage, writers ...Writer) ([]Artifact, error) {
	if len(writers) == 0 {
		writers = []Writer{NewCSVWriter(), NewXLSXWriter()}
	}
	if base == "" {
		base = DefaultBaseName
	}

	sorted := SortByTitle(pages)
	artifacts := make([]Artifact, len(writers))

	if err := os.MkdirAll(dir, 0o750); err != nil {
		err = fmt.Errorf("%w: failed to create output directory: %w", ErrExport, err)
		for i, w := range writers {
			artifacts[i] = Artifact{Format: w.Format(), Path: filepath.Join(dir, base+w.Format().Extension()), Err: err}
		}
		return artifacts, err
	}

	var g errgroup.Group
	for i, w := range writers {
		path := filepath.Join(dir, base+w.Format().Extension())
		artifacts[i] = Artifact{Format: w.Format(), Path: path}

		g.Go(func() error {
			if err := writeFile(path, w, sorted); err != nil {
				artifacts[i].Err = fmt.Errorf("%w: %s: %w", ErrExport, path, err)
				return artifacts[i].Err
			}
			return nil
		})
	}

	return artifacts, g.Wait()
}

// writeFile creates path and writes pages to it with w.
func writeFile(path string, w Writer, pages []model.VisitedPage) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return w.Write(f, pages)
}
