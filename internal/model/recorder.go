package model

// Recorder is the append-only list of pages visited during one walk.
// Insertion order is visitation order.
//
// A Recorder has a single owner for the lifetime of a run and is not safe
// for concurrent use. Hand it to an exporter only after the walk returned.
type Recorder struct {
	pages []VisitedPage
	urls  map[string]struct{}
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		pages: make([]VisitedPage, 0),
		urls:  make(map[string]struct{}),
	}
}

// Add appends a page. A page whose URL is already recorded is ignored and
// Add reports false; the first recorded entry for a URL wins.
func (r *Recorder) Add(page VisitedPage) bool {
	if r.Contains(page.URL) {
		return false
	}
	r.pages = append(r.pages, page)
	r.urls[page.URL] = struct{}{}
	return true
}

// Contains reports whether url was recorded, by exact string match.
func (r *Recorder) Contains(url string) bool {
	_, ok := r.urls[url]
	return ok
}

// Len returns the number of recorded pages.
func (r *Recorder) Len() int {
	return len(r.pages)
}

// Pages returns a copy of the recorded pages in visitation order.
func (r *Recorder) Pages() []VisitedPage {
	out := make([]VisitedPage, len(r.pages))
	copy(out, r.pages)
	return out
}

// Last returns the most recently recorded page.
func (r *Recorder) Last() (VisitedPage, bool) {
	if len(r.pages) == 0 {
		return VisitedPage{}, false
	}
	return r.pages[len(r.pages)-1], true
}
