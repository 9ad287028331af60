package crawler

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/wiki"
)

// ParsedPage holds what the walker needs from an article.
type ParsedPage struct {
	// Title is the trimmed text of the canonical heading.
	Title string

	// HasTitle reports whether the heading element exists at all.
	// A present but empty heading still counts.
	HasTitle bool

	// Links are the raw href values of anchors inside the content
	// container, in document order. Anchors without href are skipped.
	Links []string

	// HasContent reports whether the content container exists.
	HasContent bool
}

// ParsePage parses an HTML document and extracts the heading and the hrefs
// found in the article body. Navigation and sidebar links outside the body
// container are not included.
func ParsePage(content io.Reader) (*ParsedPage, error) {
	root, err := html.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	page := &ParsedPage{
		Links: make([]string, 0),
	}

	heading := doc.Find("#" + wiki.TitleElementID).First()
	if heading.Length() > 0 {
		page.HasTitle = true
		page.Title = strings.TrimSpace(heading.Text())
	}

	body := doc.Find("#" + wiki.ContentElementID).First()
	if body.Length() > 0 {
		page.HasContent = true
		body.Find("a").Each(func(_ int, a *goquery.Selection) {
			if href, ok := a.Attr("href"); ok {
				page.Links = append(page.Links, href)
			}
		})
	}

	return page, nil
}
