package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/edscrape"
	"github.com/fwojciec/edscrape/mock"
	edslog "github.com/fwojciec/edscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editorialURL = "https://www.chosun.com/opinion/editorial/2025/01/05/ABC123/"

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("records page size at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := edslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				assert.Equal(t, editorialURL, url)
				return "<h1>사설</h1>", nil
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		html, err := fetcher.Fetch(context.Background(), editorialURL)

		require.NoError(t, err)
		assert.Equal(t, "<h1>사설</h1>", html)
		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "msg=fetch")
		assert.Contains(t, out, "url="+editorialURL)
		assert.Contains(t, out, "bytes=15")
		assert.Contains(t, out, "duration=")
	})

	t.Run("records failures at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := edslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", edscrape.Errorf(edscrape.EFETCH, "HTTP 404")
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := fetcher.Fetch(context.Background(), editorialURL)

		assert.Equal(t, edscrape.EFETCH, edscrape.ErrorCode(err))
		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "bytes=0")
		assert.Contains(t, out, "err=")
	})

	t.Run("is silent below configured level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
		fetcher := edslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "<p>ok</p>", nil },
		}, logger)

		_, err := fetcher.Fetch(context.Background(), editorialURL)

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("browser gone")
	fetcher := edslog.NewLoggingFetcher(&mock.Fetcher{
		CloseFn: func() error { return closeErr },
	}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.ErrorIs(t, fetcher.Close(), closeErr)
}
