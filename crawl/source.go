package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/edscrape"
	"github.com/fwojciec/edscrape/bloom"
)

// Compile-time interface verification.
var (
	_ edscrape.URLSource = (*PageSource)(nil)
	_ edscrape.URLSource = (*CompositeSource)(nil)
)

// PageSource discovers article URLs by loading a listing page, such as an
// editorial section front, and scanning its anchors.
type PageSource struct {
	Fetcher edscrape.Fetcher
	Links   edscrape.LinkExtractor
	URL     string
	Filter  *edscrape.URLFilter
}

// Discover fetches the listing page and returns its filtered links in
// document order.
func (s *PageSource) Discover(ctx context.Context) ([]string, error) {
	html, err := s.Fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	links, err := s.Links.ExtractLinks(html, s.URL)
	if err != nil {
		return nil, err
	}
	return s.Filter.Apply(links), nil
}

// NamedSource labels a URLSource for error reporting.
type NamedSource struct {
	Name   string
	Source edscrape.URLSource
}

// CompositeSource tries its sources in order and returns the first
// non-empty result, filtered and deduplicated. A failing source is reported
// through OnError and the next one is tried.
type CompositeSource struct {
	Sources []NamedSource
	Filter  *edscrape.URLFilter

	// OnError, if set, is called for each failing source.
	OnError func(name string, err error)
}

// Discover returns the URLs of the first source yielding any. It returns
// an empty slice without error when every source succeeded with no URLs,
// and an error when no source produced URLs and at least one failed.
func (s *CompositeSource) Discover(ctx context.Context) ([]string, error) {
	var lastErr error
	for _, src := range s.Sources {
		urls, err := src.Source.Discover(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if s.OnError != nil {
				s.OnError(src.Name, err)
			}
			lastErr = fmt.Errorf("%s: %w", src.Name, err)
			continue
		}

		urls = bloom.Dedup(s.Filter.Apply(urls))
		if len(urls) > 0 {
			return urls, nil
		}
	}

	if lastErr != nil {
		return []string{}, lastErr
	}
	return []string{}, nil
}
