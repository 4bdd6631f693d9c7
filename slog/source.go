package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/edscrape"
)

// Ensure LoggingSource implements edscrape.URLSource.
var _ edscrape.URLSource = (*LoggingSource)(nil)

// LoggingSource wraps a URLSource with logging.
type LoggingSource struct {
	name   string
	next   edscrape.URLSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource. name identifies the source
// in log records.
func NewLoggingSource(name string, next edscrape.URLSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{name: name, next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Discover(ctx context.Context) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("discover",
			"source", s.name,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx)
}
