package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/edscrape"
	"golang.org/x/time/rate"
)

// DefaultInterval is the default minimum time between two request starts
// to the same host.
const DefaultInterval = 2 * time.Second

var _ edscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a minimum interval between request starts per
// host using token buckets. Requests to different hosts do not wait on
// each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter that lets one request per
// interval start for each host. The first request to a host is immediate.
// A zero interval disables pacing.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(interval),
	}
}

// Wait blocks until the interval since the previous request start to the
// domain has elapsed. Returns an error if the context is canceled before
// the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.every, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
