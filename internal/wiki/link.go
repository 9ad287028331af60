package wiki

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// ArticlePrefix is the path prefix shared by every page in the wiki.
	ArticlePrefix = "/wiki/"

	// DefaultBaseURL is the origin article hrefs are resolved against.
	DefaultBaseURL = "https://en.wikipedia.org"

	// RandomPagePath redirects to a randomly chosen article.
	RandomPagePath = "/wiki/Special:Random"

	// TitleElementID is the id of the element holding an article's canonical title.
	TitleElementID = "firstHeading"

	// ContentElementID is the id of the container holding the article body.
	ContentElementID = "bodyContent"
)

// excludedPrefixes are paths under ArticlePrefix that are not articles.
// Matching is a case-sensitive prefix comparison.
var excludedPrefixes = []string{
	"/wiki/Special:",
	"/wiki/Help:",
	"/wiki/File:",
	"/wiki/Template:",
	"/wiki/Talk:",
	"/wiki/Category:",
	"/wiki/Portal:",
	"/wiki/Main_Page",
	"/wiki/User:",
	"/wiki/Wikipedia:",
}

// ErrEmptyHref is returned by ResolveURL when there is nothing to resolve.
var ErrEmptyHref = errors.New("empty href")

// IsArticleLink reports whether href points at a real article.
// An empty href stands for an anchor without an href attribute and is never valid.
func IsArticleLink(href string) bool {
	if href == "" || !strings.HasPrefix(href, ArticlePrefix) {
		return false
	}
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(href, prefix) {
			return false
		}
	}
	return true
}

// ResolveURL joins href against base and returns the absolute URL.
// Fragments and queries in href are preserved.
func ResolveURL(base *url.URL, href string) (string, error) {
	if base == nil {
		return "", errors.New("nil base URL")
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return "", ErrEmptyHref
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// RandomPageURL returns the random-article endpoint for the site at base.
func RandomPageURL(base *url.URL) string {
	return base.ResolveReference(&url.URL{Path: RandomPagePath}).String()
}
