package mock

import (
	"context"

	"github.com/fwojciec/edscrape"
)

var (
	_ edscrape.URLSource     = (*URLSource)(nil)
	_ edscrape.LinkExtractor = (*LinkExtractor)(nil)
)

// URLSource is a mock implementation of edscrape.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context) ([]string, error) {
	return s.DiscoverFn(ctx)
}

// LinkExtractor is a mock implementation of edscrape.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
