// Package gofeed discovers article URLs from RSS and Atom feeds using
// github.com/mmcdole/gofeed.
package gofeed

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/edscrape"
	"github.com/mmcdole/gofeed"
)

// DefaultTimeout bounds a single feed request.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with feed requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure FeedSource implements edscrape.URLSource at compile time.
var _ edscrape.URLSource = (*FeedSource)(nil)

// FeedSource returns the item links of one RSS or Atom feed.
type FeedSource struct {
	client    *http.Client
	feedURL   *url.URL
	filter    *edscrape.URLFilter
	userAgent string
}

// Option configures a FeedSource.
type Option func(*FeedSource)

// WithClient sets the HTTP client.
// Defaults to a client with DefaultTimeout if not specified.
func WithClient(c *http.Client) Option {
	return func(s *FeedSource) {
		s.client = c
	}
}

// WithFilter restricts the returned URLs.
func WithFilter(f *edscrape.URLFilter) Option {
	return func(s *FeedSource) {
		s.filter = f
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *FeedSource) {
		s.userAgent = ua
	}
}

// NewFeedSource creates a FeedSource for feedURL.
// Returns EINVALID if feedURL is not an absolute URL.
func NewFeedSource(feedURL string, opts ...Option) (*FeedSource, error) {
	u, err := url.Parse(feedURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, edscrape.Errorf(edscrape.EINVALID, "invalid feed URL: %q", feedURL)
	}
	s := &FeedSource{
		client:    &http.Client{Timeout: DefaultTimeout},
		feedURL:   u,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Discover returns the item links in feed order, resolved against the feed
// URL, deduplicated and filtered. Returns EFETCH on transport failures and
// non-2xx responses, EMALFORMED when the body is not a feed.
func (s *FeedSource) Discover(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL.String(), nil)
	if err != nil {
		return nil, edscrape.Errorf(edscrape.EINVALID, "building feed request: %v", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, edscrape.Errorf(edscrape.EFETCH, "feed request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, edscrape.Errorf(edscrape.EFETCH, "HTTP %d for %s", resp.StatusCode, s.feedURL)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, edscrape.Errorf(edscrape.EMALFORMED, "parsing feed %s: %v", s.feedURL, err)
	}

	urls := []string{}
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		u := s.resolve(itemLink(item))
		if u == "" || seen[u] || !s.filter.Match(u) {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls, nil
}

// itemLink returns the primary link of an item.
func itemLink(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, link := range item.Links {
		if link = strings.TrimSpace(link); link != "" {
			return link
		}
	}
	return ""
}

func (s *FeedSource) resolve(link string) string {
	if link == "" {
		return ""
	}
	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	abs := s.feedURL.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}
