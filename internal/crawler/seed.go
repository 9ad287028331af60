package crawler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/wiki"
)

// ResolveSeed requests the random-article endpoint of the wiki at base and
// returns the URL the redirect chain ended on. Errors wrap ErrSeedResolution.
func ResolveSeed(ctx context.Context, fetcher Fetcher, base *url.URL) (string, error) {
	if base == nil {
		return "", fmt.Errorf("%w: no base URL", ErrSeedResolution)
	}
	resp, err := fetcher.Get(ctx, wiki.RandomPageURL(base))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSeedResolution, err)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%w: empty redirect target", ErrSeedResolution)
	}
	return resp.URL, nil
}
