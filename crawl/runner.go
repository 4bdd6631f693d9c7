// Package crawl drives batch article scraping: URL discovery through
// composite sources, per-host pacing, and a bounded worker pool that
// fetches, extracts and stores each article.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/fwojciec/edscrape"
	"golang.org/x/sync/errgroup"
)

// Policy decides what happens to articles without paragraphs.
type Policy int

const (
	// PolicyLenient stores incomplete articles and counts them as Partial.
	PolicyLenient Policy = iota
	// PolicyStrict rejects incomplete articles with ENOCONTENT.
	PolicyStrict
)

// String returns the policy name.
func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// Runner scrapes a list of article URLs.
//
// Fetcher, Extractor and Writer are required. Index and Limiter are
// optional: without an Index no URL is skipped, without a Limiter requests
// are not paced.
type Runner struct {
	Fetcher   edscrape.Fetcher
	Extractor edscrape.Extractor
	Writer    edscrape.ArticleWriter
	Index     edscrape.ArticleIndex
	Limiter   edscrape.DomainLimiter

	// Concurrency bounds the number of URLs processed at once.
	// Values below 1 mean sequential processing.
	Concurrency int

	Policy Policy
}

// Result tallies the outcome of a run. Every processed URL is counted in
// exactly one field.
type Result struct {
	Succeeded int
	Partial   int
	Failed    int
	Skipped   int
}

// Total returns the number of processed URLs.
func (r *Result) Total() int {
	return r.Succeeded + r.Partial + r.Failed + r.Skipped
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressPartial
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// String returns the event type name.
func (t ProgressType) String() string {
	switch t {
	case ProgressStarted:
		return "started"
	case ProgressCompleted:
		return "completed"
	case ProgressPartial:
		return "partial"
	case ProgressFailed:
		return "failed"
	case ProgressSkipped:
		return "skipped"
	case ProgressFinished:
		return "finished"
	}
	return "unknown"
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Title     string
	Error     error
}

// ProgressFunc is a callback for reporting run progress.
// Calls are serialized.
type ProgressFunc func(event ProgressEvent)

// Run processes urls and returns the tallies. A failing URL never stops
// the run. Cancellation of ctx stops the run early; the returned Result
// then covers the URLs processed so far and the error is ctx.Err().
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	concurrency := r.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	result := &Result{}
	total := len(urls)
	completed := 0

	report := func(ev ProgressEvent) {
		if progress != nil {
			progress(ev)
		}
	}

	report(ProgressEvent{Type: ProgressStarted, Total: total})

	var g errgroup.Group
	g.SetLimit(concurrency)

	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome, article, err := r.process(ctx, u)
			if err != nil && ctx.Err() != nil {
				// Abandoned by cancellation, not a per-URL failure.
				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			switch outcome {
			case ProgressCompleted:
				result.Succeeded++
			case ProgressPartial:
				result.Partial++
			case ProgressSkipped:
				result.Skipped++
			default:
				result.Failed++
			}
			completed++

			ev := ProgressEvent{
				Type:      outcome,
				Completed: completed,
				Total:     total,
				URL:       u,
				Error:     err,
			}
			if article != nil {
				ev.Title = article.Title
			}
			report(ev)
			return nil
		})
	}
	_ = g.Wait()

	mu.Lock()
	report(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	mu.Unlock()

	return result, ctx.Err()
}

// process runs the per-URL steps: index check, pacing, fetch, extraction,
// policy and write. It returns the outcome as a progress event type.
func (r *Runner) process(ctx context.Context, rawURL string) (ProgressType, *edscrape.Article, error) {
	if r.Index != nil {
		stored, err := r.Index.HasArticle(ctx, rawURL)
		if err != nil {
			return ProgressFailed, nil, fmt.Errorf("checking index: %w", err)
		}
		if stored {
			return ProgressSkipped, nil, nil
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ProgressFailed, nil, edscrape.Errorf(edscrape.EINVALID, "invalid URL: %q", rawURL)
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			return ProgressFailed, nil, err
		}
	}

	html, err := r.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return ProgressFailed, nil, err
	}

	article, err := r.Extractor.Extract(&edscrape.RawDocument{URL: rawURL, HTML: html})
	if err != nil {
		return ProgressFailed, nil, err
	}

	outcome := ProgressCompleted
	if !article.Complete() {
		if r.Policy == PolicyStrict {
			return ProgressFailed, article, edscrape.Errorf(edscrape.ENOCONTENT, "no paragraphs extracted from %s", rawURL)
		}
		outcome = ProgressPartial
	}

	if err := r.Writer.WriteArticle(ctx, article); err != nil {
		return ProgressFailed, article, err
	}
	return outcome, article, nil
}
