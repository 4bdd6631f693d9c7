package edscrape

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch loads the URL and returns its HTML.
	// Transport failures are reported as EFETCH.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases held resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter paces requests per destination host.
type DomainLimiter interface {
	// Wait blocks until a request to the domain may start.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
