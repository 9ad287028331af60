// Package database provides SQLite-based storage for walk history.
//
// Every finished run is stored as one row in the walks table, and the pages
// it visited are stored in walk_pages in visitation order. The history is
// only read back for display; a walk never resumes from it.
//
// The driver is modernc.org/sqlite, which needs no cgo.
package database
