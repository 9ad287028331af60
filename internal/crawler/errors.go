package crawler

import "errors"

// ErrSeedResolution is returned when no start page could be obtained from
// the random-article endpoint.
var ErrSeedResolution = errors.New("failed to get a random wiki page")
