package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/edscrape"
)

// Ensure LoggingExtractor implements edscrape.Extractor.
var _ edscrape.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   edscrape.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next edscrape.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(doc *edscrape.RawDocument) (article *edscrape.Article, err error) {
	defer func(begin time.Time) {
		var url, title string
		var paragraphs int
		if doc != nil {
			url = doc.URL
		}
		if article != nil {
			title = article.Title
			paragraphs = len(article.Paragraphs)
		}
		e.logger.Info("extract",
			"url", url,
			"title", title,
			"paragraphs", paragraphs,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(doc)
}
