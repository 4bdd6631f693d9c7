package edscrape

import (
	"context"
	"regexp"
)

// URLSource discovers candidate article URLs.
// Implementations hide whether URLs come from a DOM scan, a feed or an API.
type URLSource interface {
	Discover(ctx context.Context) ([]string, error)
}

// LinkExtractor extracts absolute links from an HTML page.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns the links in document order.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// NewSectionFilter returns a filter accepting article URLs of an editorial
// section: the URL must contain segment followed, somewhere later in the
// path, by a 4-digit year path component (e.g. /opinion/editorial/2025/01/05/ABC/).
func NewSectionFilter(segment string) *URLFilter {
	pattern := regexp.QuoteMeta(segment) + `(?:[^?#]*/)?(?:19|20)\d{2}(?:/|$)`
	return &URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(pattern)},
	}
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	// If include patterns exist, URL must match at least one
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// Apply returns the URLs that pass the filter, preserving order.
func (f *URLFilter) Apply(urls []string) []string {
	if f == nil {
		return urls
	}
	filtered := make([]string, 0, len(urls))
	for _, u := range urls {
		if f.Match(u) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
