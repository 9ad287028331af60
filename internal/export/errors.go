package export

import "errors"

// ErrExport is wrapped by every error that prevented an artifact from being written.
var ErrExport = errors.New("export failed")
