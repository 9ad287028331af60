// Package crawler performs the random walk across wiki articles.
//
// # Components
//
//   - Walker: follows one randomly chosen article link per step until the
//     walk reaches a visited page, a page without links, or an error
//   - ParsePage: extracts the canonical title and the content-area hrefs
//   - ResolveSeed: asks the wiki for a random article to start from
//
// # Walk rules
//
// Each step checks the current URL against the Recorder before fetching.
// A recorded URL ends the walk without a request. Links are taken only from
// the article body container, shuffled uniformly, and the first one that is
// a real article is followed. Every fetched step ends with a randomized
// pause so the origin server sees at most one request every few seconds.
//
// The walk is a plain loop. It never retries, never runs requests in
// parallel, and stops promptly when its context is cancelled.
//
// # Usage
//
//	walker := crawler.NewWalker(client, crawler.WithDelayRange(time.Second, 3*time.Second))
//	rec := model.NewRecorder()
//	result := walker.Walk(ctx, "https://en.wikipedia.org/wiki/Go", rec)
package crawler
