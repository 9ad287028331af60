package model

// VisitedPage is a page the walk reached and recorded.
// It is created exactly once per successfully parsed page and never mutated.
type VisitedPage struct {
	// Title is the trimmed text of the article's canonical heading.
	Title string `json:"title"`

	// URL is the absolute URL the page was fetched from, exactly as followed.
	URL string `json:"url"`
}
