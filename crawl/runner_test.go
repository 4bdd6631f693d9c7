package crawl_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/edscrape"
	"github.com/fwojciec/edscrape/crawl"
	"github.com/fwojciec/edscrape/goquery"
	"github.com/fwojciec/edscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><body>
<h1 class="article-headline">Test Title</h1>
<time datetime="2025-01-05">Jan 5</time>
<div class="article-body">
<p>The first paragraph of the editorial text.</p>
<p>The second paragraph of the editorial text.</p>
<p>The third paragraph of the editorial text.</p>
</div>
</body></html>`

// recordingWriter collects written articles.
type recordingWriter struct {
	mu       sync.Mutex
	articles []*edscrape.Article
}

func (w *recordingWriter) WriteArticle(_ context.Context, a *edscrape.Article) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.articles = append(w.articles, a)
	return nil
}

func staticFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", edscrape.Errorf(edscrape.EFETCH, "HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("continues after a failed fetch", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://example.com/opinion/editorial/2025/01/05/a/",
			"https://example.com/opinion/editorial/2025/01/05/b/",
			"https://example.com/opinion/editorial/2025/01/05/c/",
		}
		fetcher := staticFetcher(map[string]string{
			urls[0]: articleHTML,
			urls[2]: articleHTML,
		})
		writer := &recordingWriter{}
		r := &crawl.Runner{
			Fetcher:   fetcher,
			Extractor: goquery.NewExtractor(),
			Writer:    writer,
		}

		var events []crawl.ProgressEvent
		result, err := r.Run(context.Background(), urls, func(ev crawl.ProgressEvent) {
			events = append(events, ev)
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Succeeded)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 3, result.Total())
		require.Len(t, writer.articles, 2)
		assert.Equal(t, urls[0], writer.articles[0].SourceURL)
		assert.Equal(t, urls[2], writer.articles[1].SourceURL)

		require.Len(t, events, 5)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, crawl.ProgressCompleted, events[1].Type)
		assert.Equal(t, "Test Title", events[1].Title)
		assert.Equal(t, crawl.ProgressFailed, events[2].Type)
		assert.Equal(t, urls[1], events[2].URL)
		assert.Equal(t, edscrape.EFETCH, edscrape.ErrorCode(events[2].Error))
		assert.Equal(t, crawl.ProgressCompleted, events[3].Type)
		assert.Equal(t, crawl.ProgressFinished, events[4].Type)
		assert.Equal(t, 3, events[4].Completed)
	})

	t.Run("counts missing title as failed", func(t *testing.T) {
		t.Parallel()

		url := "https://example.com/untitled"
		writer := &recordingWriter{}
		r := &crawl.Runner{
			Fetcher:   staticFetcher(map[string]string{url: `<html><body><p>No heading anywhere on this page at all.</p></body></html>`}),
			Extractor: goquery.NewExtractor(),
			Writer:    writer,
		}

		var failure error
		result, err := r.Run(context.Background(), []string{url}, func(ev crawl.ProgressEvent) {
			if ev.Type == crawl.ProgressFailed {
				failure = ev.Error
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Empty(t, writer.articles)
		assert.Equal(t, edscrape.ENOTITLE, edscrape.ErrorCode(failure))
	})

	t.Run("lenient policy writes incomplete articles as partial", func(t *testing.T) {
		t.Parallel()

		url := "https://example.com/empty"
		writer := &recordingWriter{}
		r := &crawl.Runner{
			Fetcher:   staticFetcher(map[string]string{url: `<html><body><h1>Only Title</h1></body></html>`}),
			Extractor: goquery.NewExtractor(),
			Writer:    writer,
			Policy:    crawl.PolicyLenient,
		}

		result, err := r.Run(context.Background(), []string{url}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Partial)
		assert.Zero(t, result.Succeeded)
		require.Len(t, writer.articles, 1)
		assert.Empty(t, writer.articles[0].Paragraphs)
	})

	t.Run("strict policy rejects incomplete articles", func(t *testing.T) {
		t.Parallel()

		url := "https://example.com/empty"
		writer := &recordingWriter{}
		r := &crawl.Runner{
			Fetcher:   staticFetcher(map[string]string{url: `<html><body><h1>Only Title</h1></body></html>`}),
			Extractor: goquery.NewExtractor(),
			Writer:    writer,
			Policy:    crawl.PolicyStrict,
		}

		var failure error
		result, err := r.Run(context.Background(), []string{url}, func(ev crawl.ProgressEvent) {
			if ev.Type == crawl.ProgressFailed {
				failure = ev.Error
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Empty(t, writer.articles)
		assert.Equal(t, edscrape.ENOCONTENT, edscrape.ErrorCode(failure))
	})

	t.Run("skips URLs already in the index", func(t *testing.T) {
		t.Parallel()

		stored := "https://example.com/stored"
		fresh := "https://example.com/fresh"
		var fetched []string
		r := &crawl.Runner{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				return articleHTML, nil
			}},
			Extractor: goquery.NewExtractor(),
			Writer:    &recordingWriter{},
			Index: &mock.ArticleIndex{HasArticleFn: func(_ context.Context, url string) (bool, error) {
				return url == stored, nil
			}},
		}

		result, err := r.Run(context.Background(), []string{stored, fresh}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 1, result.Succeeded)
		assert.Equal(t, []string{fresh}, fetched)
	})

	t.Run("counts write failures as failed", func(t *testing.T) {
		t.Parallel()

		url := "https://example.com/a"
		r := &crawl.Runner{
			Fetcher:   staticFetcher(map[string]string{url: articleHTML}),
			Extractor: goquery.NewExtractor(),
			Writer: &mock.ArticleWriter{WriteArticleFn: func(context.Context, *edscrape.Article) error {
				return errors.New("disk full")
			}},
		}

		result, err := r.Run(context.Background(), []string{url}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("counts invalid URLs as failed", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Runner{
			Fetcher:   staticFetcher(nil),
			Extractor: goquery.NewExtractor(),
			Writer:    &recordingWriter{},
		}

		result, err := r.Run(context.Background(), []string{"not a url"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("waits on limiter with URL host", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		r := &crawl.Runner{
			Fetcher:   staticFetcher(map[string]string{"https://example.com/a": articleHTML, "https://other.org/b": articleHTML}),
			Extractor: goquery.NewExtractor(),
			Writer:    &recordingWriter{},
			Limiter: &mock.DomainLimiter{WaitFn: func(_ context.Context, domain string) error {
				hosts = append(hosts, domain)
				return nil
			}},
		}

		_, err := r.Run(context.Background(), []string{"https://example.com/a", "https://other.org/b"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"example.com", "other.org"}, hosts)
	})

	t.Run("paces requests to the same host", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
		pages := map[string]string{}
		for _, u := range urls {
			pages[u] = articleHTML
		}
		r := &crawl.Runner{
			Fetcher:     staticFetcher(pages),
			Extractor:   goquery.NewExtractor(),
			Writer:      &recordingWriter{},
			Limiter:     crawl.NewDomainLimiter(50 * time.Millisecond),
			Concurrency: 3,
		}

		start := time.Now()
		result, err := r.Run(context.Background(), urls, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Succeeded)
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})

	t.Run("bounds concurrency", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		fetcher := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inFlight.Add(-1)
			return articleHTML, nil
		}}

		urls := make([]string, 8)
		for i := range urls {
			urls[i] = "https://example.com/" + string(rune('a'+i))
		}
		r := &crawl.Runner{
			Fetcher:     fetcher,
			Extractor:   goquery.NewExtractor(),
			Writer:      &recordingWriter{},
			Concurrency: 2,
		}

		result, err := r.Run(context.Background(), urls, nil)

		require.NoError(t, err)
		assert.Equal(t, 8, result.Succeeded)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		urls := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
		r := &crawl.Runner{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, url string) (string, error) {
				if url == urls[0] {
					cancel()
					return "", context.Canceled
				}
				return articleHTML, nil
			}},
			Extractor: goquery.NewExtractor(),
			Writer:    &recordingWriter{},
		}

		result, err := r.Run(ctx, urls, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, result.Total())
	})
}

func TestPolicy_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "strict", crawl.PolicyStrict.String())
	assert.Equal(t, "lenient", crawl.PolicyLenient.String())
}
