package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/edscrape"
)

// DefaultStoryFeedSize is the number of stories requested per call.
const DefaultStoryFeedSize = 20

// Ensure StoryFeedSource implements edscrape.URLSource.
var _ edscrape.URLSource = (*StoryFeedSource)(nil)

// StoryFeedSource discovers article URLs from a JSON story-feed API of the
// kind exposed by Arc-based news sites (/pf/api/v3/content/fetch/story-feed).
type StoryFeedSource struct {
	client    *http.Client
	endpoint  string
	origin    *url.URL
	section   string
	size      int
	filter    *edscrape.URLFilter
	userAgent string
}

// StoryFeedOption configures a StoryFeedSource.
type StoryFeedOption func(*StoryFeedSource)

// WithStoryFeedClient sets the HTTP client. Defaults to http.DefaultClient.
func WithStoryFeedClient(c *http.Client) StoryFeedOption {
	return func(s *StoryFeedSource) {
		s.client = c
	}
}

// WithStoryFeedSize sets the number of stories requested.
func WithStoryFeedSize(n int) StoryFeedOption {
	return func(s *StoryFeedSource) {
		s.size = n
	}
}

// WithStoryFeedFilter restricts the returned URLs.
func WithStoryFeedFilter(f *edscrape.URLFilter) StoryFeedOption {
	return func(s *StoryFeedSource) {
		s.filter = f
	}
}

// NewStoryFeedSource creates a StoryFeedSource querying endpoint for stories
// of section (e.g. "/opinion/editorial"). Relative canonical URLs are
// resolved against the scheme and host of endpoint.
func NewStoryFeedSource(endpoint, section string, opts ...StoryFeedOption) (*StoryFeedSource, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, edscrape.Errorf(edscrape.EINVALID, "invalid story feed endpoint: %q", endpoint)
	}
	s := &StoryFeedSource{
		client:    http.DefaultClient,
		endpoint:  endpoint,
		origin:    &url.URL{Scheme: u.Scheme, Host: u.Host},
		section:   strings.TrimSuffix(section, "/"),
		size:      DefaultStoryFeedSize,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type storyQuery struct {
	IncludeContentTypes string `json:"includeContentTypes"`
	ExcludeContentTypes string `json:"excludeContentTypes"`
	IncludeSections     string `json:"includeSections"`
	Size                int    `json:"size"`
}

type storyFilter struct {
	ExcludeContentTypes []string `json:"excludeContentTypes"`
	IncludeSections     []string `json:"includeSections"`
}

type storyFeed struct {
	ContentElements []struct {
		CanonicalURL string `json:"canonical_url"`
	} `json:"content_elements"`
}

// requestURL builds the endpoint URL with the query and filter parameters.
func (s *StoryFeedSource) requestURL() (string, error) {
	query, err := json.Marshal(storyQuery{
		IncludeContentTypes: "story",
		ExcludeContentTypes: "gallery, video",
		IncludeSections:     s.section,
		Size:                s.size,
	})
	if err != nil {
		return "", err
	}
	filter, err := json.Marshal(storyFilter{
		ExcludeContentTypes: []string{"gallery", "video"},
		IncludeSections:     []string{s.section},
	})
	if err != nil {
		return "", err
	}

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("query", string(query))
	q.Set("filter", string(filter))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Discover returns the canonical URLs of the feed in feed order,
// deduplicated and filtered. Returns EFETCH on transport failures and
// EMALFORMED when the response is not a story feed.
func (s *StoryFeedSource) Discover(ctx context.Context) ([]string, error) {
	target, err := s.requestURL()
	if err != nil {
		return nil, edscrape.Errorf(edscrape.EINVALID, "building story feed request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, edscrape.Errorf(edscrape.EINVALID, "building story feed request: %v", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, edscrape.Errorf(edscrape.EFETCH, "story feed request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, edscrape.Errorf(edscrape.EFETCH, "HTTP %d for %s", resp.StatusCode, s.endpoint)
	}

	var feed storyFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, edscrape.Errorf(edscrape.EMALFORMED, "decoding story feed: %v", err)
	}

	urls := []string{}
	seen := make(map[string]bool)
	for _, el := range feed.ContentElements {
		u := s.resolve(el.CanonicalURL)
		if u == "" || seen[u] || !s.filter.Match(u) {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls, nil
}

// resolve turns a canonical URL into an absolute URL on the site origin.
func (s *StoryFeedSource) resolve(canonical string) string {
	canonical = strings.TrimSpace(canonical)
	if canonical == "" {
		return ""
	}
	ref, err := url.Parse(canonical)
	if err != nil {
		return ""
	}
	return s.origin.ResolveReference(ref).String()
}
