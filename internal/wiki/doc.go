// Package wiki knows the URL layout of a MediaWiki site such as Wikipedia.
//
// It decides which hrefs point at real articles (as opposed to special,
// talk, file, or other administrative namespaces) and resolves relative
// hrefs against the site's origin. Everything here is pure: no network
// access and no state.
package wiki
