// Package main provides the entry point for the wikiwalk CLI.
//
// wikiwalk performs a random walk across Wikipedia articles: starting from a
// given or random article, it repeatedly follows one randomly chosen article
// link until it reaches a page it has already seen, a page without links, or
// an error. The visited pages are exported as CSV and XLSX, sorted by title.
//
// Usage:
//
//	wikiwalk
//	wikiwalk https://en.wikipedia.org/wiki/Go_(programming_language)
//	wikiwalk history
//
// See --help for all available options.
package main

// main is the entry point for wikiwalk.
func main() {
	Execute()
}
