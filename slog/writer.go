package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/edscrape"
)

// Ensure LoggingWriter implements edscrape.ArticleWriter.
var _ edscrape.ArticleWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps an ArticleWriter with logging.
type LoggingWriter struct {
	next   edscrape.ArticleWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next edscrape.ArticleWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteArticle delegates to the wrapped writer and logs the operation.
func (w *LoggingWriter) WriteArticle(ctx context.Context, article *edscrape.Article) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"url", article.SourceURL,
			"title", article.Title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteArticle(ctx, article)
}
