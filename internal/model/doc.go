// Package model defines the core data structures used throughout wikiwalk.
//
// This package contains the following main types:
//   - VisitedPage: The title and URL of one page reached by the walk
//   - Recorder: The ordered, append-only list of visited pages for one run
//   - Walk: A finished run as stored in the history database
//   - TerminationReason: Why a walk stopped
//
// The crawler, export, and database packages all share these types, so they
// live in their own package to avoid import cycles.
package model
