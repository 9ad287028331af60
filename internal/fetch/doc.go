// Package fetch retrieves web pages over HTTP for the walker.
//
// The Client sets a descriptive User-Agent, follows a bounded number of
// redirects, limits how much of a body is read, and can route every
// connection through a SOCKS5 proxy. Transport failures and non-2xx
// responses are reported as distinct error types that both match ErrFetch,
// so callers can tell "the walk should stop here" apart from programming
// errors.
//
// # Usage
//
//	client, err := fetch.NewClient(fetch.WithTimeout(30 * time.Second))
//	resp, err := client.Get(ctx, "https://en.wikipedia.org/wiki/Go")
package fetch
