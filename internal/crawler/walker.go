package crawler

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/fetch"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/wiki"
)

const (
	// DefaultMinDelay is the shortest pause after a fetched step.
	DefaultMinDelay = 1 * time.Second

	// DefaultMaxDelay is the longest pause after a fetched step.
	DefaultMaxDelay = 3 * time.Second
)

// Fetcher retrieves a page. *fetch.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Response, error)
}

// Observer follows the progress of a walk.
type Observer interface {
	// OnVisit is called after a page has been recorded.
	OnVisit(step int, page model.VisitedPage)

	// OnDelay is called before each pause between steps.
	OnDelay(d time.Duration)
}

// Sleeper pauses for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Result describes how a walk ended.
type Result struct {
	// Reason is why the walk stopped.
	Reason model.TerminationReason

	// Err is the error behind ReasonFetchFailed or ReasonInterrupted.
	Err error

	// Visited is the number of pages this walk added to the Recorder.
	Visited int

	// LastURL is the URL the walk was at when it stopped.
	LastURL string
}

// Walker follows one random article link per step.
type Walker struct {
	// fetcher retrieves pages.
	fetcher Fetcher

	// baseURL is the origin hrefs are resolved against.
	baseURL *url.URL

	// minDelay and maxDelay bound the pause after each fetched step.
	minDelay time.Duration
	maxDelay time.Duration

	// rng drives link shuffling and delays. nil uses the global source.
	rng *rand.Rand

	// sleep performs the pause.
	sleep Sleeper

	// observer is notified of recorded pages. May be nil.
	observer Observer

	// logger receives diagnostics.
	logger *slog.Logger
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithBaseURL sets the origin that article hrefs are resolved against.
func WithBaseURL(base *url.URL) WalkerOption {
	return func(w *Walker) {
		if base != nil {
			w.baseURL = base
		}
	}
}

// WithDelayRange sets the bounds of the uniform pause after each fetched step.
// If maxDelay is below minDelay the pause is always minDelay.
func WithDelayRange(minDelay, maxDelay time.Duration) WalkerOption {
	return func(w *Walker) {
		w.minDelay = minDelay
		w.maxDelay = maxDelay
	}
}

// WithRand sets the random source used for shuffling and delays.
func WithRand(rng *rand.Rand) WalkerOption {
	return func(w *Walker) {
		w.rng = rng
	}
}

// WithSleeper replaces the function used to pause between steps.
func WithSleeper(s Sleeper) WalkerOption {
	return func(w *Walker) {
		if s != nil {
			w.sleep = s
		}
	}
}

// WithObserver sets the observer notified of recorded pages.
func WithObserver(o Observer) WalkerOption {
	return func(w *Walker) {
		w.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWalker creates a Walker that fetches pages with fetcher.
func NewWalker(fetcher Fetcher, opts ...WalkerOption) *Walker {
	base, _ := url.Parse(wiki.DefaultBaseURL) //nolint:errcheck // constant URL
	w := &Walker{
		fetcher:  fetcher,
		baseURL:  base,
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		sleep:    Sleep,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk starts at startURL and records every page it reaches into rec.
// It always returns a Result; fetch failures and cancellation end the walk
// rather than propagate. Pages recorded before the end stay in rec.
func (w *Walker) Walk(ctx context.Context, startURL string, rec *model.Recorder) Result {
	current := startURL
	visited := 0

	for step := 1; ; step++ {
		if rec.Contains(current) {
			w.logger.Debug("page already visited, ending walk", "url", current)
			return Result{Reason: model.ReasonDuplicate, Visited: visited, LastURL: current}
		}
		if err := ctx.Err(); err != nil {
			return Result{Reason: model.ReasonInterrupted, Err: err, Visited: visited, LastURL: current}
		}

		next, reason, recorded, err := w.step(ctx, step, current, rec)
		if recorded {
			visited++
		}
		if reason == model.ReasonInterrupted {
			return Result{Reason: reason, Err: err, Visited: visited, LastURL: current}
		}

		d := w.delay()
		if w.observer != nil {
			w.observer.OnDelay(d)
		}
		if sleepErr := w.sleep(ctx, d); sleepErr != nil && next != "" {
			return Result{Reason: model.ReasonInterrupted, Err: sleepErr, Visited: visited, LastURL: current}
		}

		if next == "" {
			return Result{Reason: reason, Err: err, Visited: visited, LastURL: current}
		}
		current = next
	}
}

// step fetches and records one page and picks the next URL.
// An empty next URL means the walk ends with reason.
func (w *Walker) step(ctx context.Context, n int, pageURL string, rec *model.Recorder) (next string, reason model.TerminationReason, recorded bool, err error) {
	resp, err := w.fetcher.Get(ctx, pageURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", model.ReasonInterrupted, false, ctxErr
		}
		w.logger.Error("failed to fetch page", "url", pageURL, "error", err)
		return "", model.ReasonFetchFailed, false, err
	}

	page, err := ParsePage(bytes.NewReader(resp.Body))
	if err != nil {
		w.logger.Warn("failed to parse page", "url", pageURL, "error", err)
		return "", model.ReasonNoTitle, false, nil
	}
	if !page.HasTitle {
		w.logger.Info("page has no title, ending walk", "url", pageURL)
		return "", model.ReasonNoTitle, false, nil
	}

	visitedPage := model.VisitedPage{Title: page.Title, URL: pageURL}
	recorded = rec.Add(visitedPage)
	if recorded && w.observer != nil {
		w.observer.OnVisit(n, visitedPage)
	}
	w.logger.Debug("recorded page",
		"step", n,
		"title", page.Title,
		"url", pageURL,
		"content_type", resp.ContentType,
		"links", len(page.Links))

	next, ok := w.selectLink(page.Links)
	if !ok {
		w.logger.Info("no valid article link found, ending walk", "url", pageURL, "has_content", page.HasContent)
		return "", model.ReasonNoLinks, recorded, nil
	}
	return next, model.ReasonUnknown, recorded, nil
}

// selectLink shuffles links and returns the absolute URL of the first one
// that is an article link. Candidates that cannot be resolved are skipped.
func (w *Walker) selectLink(links []string) (string, bool) {
	candidates := make([]string, len(links))
	copy(candidates, links)
	w.shuffle(candidates)

	for _, href := range candidates {
		if !wiki.IsArticleLink(href) {
			continue
		}
		next, err := wiki.ResolveURL(w.baseURL, href)
		if err != nil {
			w.logger.Debug("skipping unresolvable link", "href", href, "error", err)
			continue
		}
		return next, true
	}
	return "", false
}

// shuffle puts s into a uniformly random order.
func (w *Walker) shuffle(s []string) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if w.rng != nil {
		w.rng.Shuffle(len(s), swap)
		return
	}
	rand.Shuffle(len(s), swap)
}

// delay returns a pause drawn uniformly from [minDelay, maxDelay].
func (w *Walker) delay() time.Duration {
	span := w.maxDelay - w.minDelay
	if span <= 0 {
		return w.minDelay
	}
	var offset int64
	if w.rng != nil {
		offset = w.rng.Int64N(int64(span) + 1)
	} else {
		offset = rand.Int64N(int64(span) + 1)
	}
	return w.minDelay + time.Duration(offset)
}

// Sleep is the default Sleeper. It blocks for d unless ctx is done first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
