package model

import "time"

// TerminationReason describes why a walk stopped.
type TerminationReason int

const (
	// ReasonUnknown is the zero value and never produced by a finished walk.
	ReasonUnknown TerminationReason = iota

	// ReasonDuplicate means the next URL had already been recorded.
	ReasonDuplicate

	// ReasonFetchFailed means a page could not be retrieved.
	ReasonFetchFailed

	// ReasonNoTitle means the fetched page had no canonical heading.
	ReasonNoTitle

	// ReasonNoLinks means the page's content offered no valid article link.
	ReasonNoLinks

	// ReasonInterrupted means the run was cancelled by the user.
	ReasonInterrupted

	// ReasonSeedFailed means no start page could be obtained.
	ReasonSeedFailed
)

// String returns the stored form of the reason.
func (r TerminationReason) String() string {
	switch r {
	case ReasonDuplicate:
		return "duplicate"
	case ReasonFetchFailed:
		return "fetch_failed"
	case ReasonNoTitle:
		return "no_title"
	case ReasonNoLinks:
		return "no_links"
	case ReasonInterrupted:
		return "interrupted"
	case ReasonSeedFailed:
		return "seed_failed"
	default:
		return "unknown"
	}
}

// IsError reports whether the reason is an error termination.
// Running out of links, reaching a visited page, and a missing heading are
// ordinary ends of a walk.
func (r TerminationReason) IsError() bool {
	return r == ReasonFetchFailed || r == ReasonSeedFailed
}

// ParseTerminationReason converts a stored reason back to its value.
// Unrecognized input yields ReasonUnknown.
func ParseTerminationReason(s string) TerminationReason {
	for _, r := range []TerminationReason{
		ReasonDuplicate,
		ReasonFetchFailed,
		ReasonNoTitle,
		ReasonNoLinks,
		ReasonInterrupted,
		ReasonSeedFailed,
	} {
		if r.String() == s {
			return r
		}
	}
	return ReasonUnknown
}

// Walk is the summary of a finished run, as kept in the history database.
type Walk struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// StartURL is the seed the walk began from. Empty if seeding failed.
	StartURL string `json:"start_url"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Reason is why the walk stopped.
	Reason TerminationReason `json:"reason"`

	// Error holds the message of the error that ended the walk, if any.
	Error string `json:"error,omitempty"`

	// Pages are the visited pages in visitation order.
	Pages []VisitedPage `json:"pages"`
}

// Duration returns how long the run took.
func (w *Walk) Duration() time.Duration {
	if w.FinishedAt.Before(w.StartedAt) {
		return 0
	}
	return w.FinishedAt.Sub(w.StartedAt)
}

// MarshalText encodes the reason as its stored form.
func (r TerminationReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a stored reason. Unrecognized input yields ReasonUnknown.
func (r *TerminationReason) UnmarshalText(text []byte) error {
	*r = ParseTerminationReason(string(text))
	return nil
}

// WalkSummary describes a stored walk without its pages.
type WalkSummary struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// StartURL is the seed the walk began from.
	StartURL string `json:"start_url"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Reason is why the walk stopped.
	Reason TerminationReason `json:"reason"`

	// Error holds the message of the error that ended the walk, if any.
	Error string `json:"error,omitempty"`

	// PageCount is the number of recorded pages.
	PageCount int `json:"page_count"`
}

// Summary returns the summary of w.
func (w *Walk) Summary() WalkSummary {
	return WalkSummary{
		ID:         w.ID,
		StartURL:   w.StartURL,
		StartedAt:  w.StartedAt,
		FinishedAt: w.FinishedAt,
		Reason:     w.Reason,
		Error:      w.Error,
		PageCount:  len(w.Pages),
	}
}
