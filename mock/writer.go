package mock

import (
	"context"

	"github.com/fwojciec/edscrape"
)

var (
	_ edscrape.ArticleWriter = (*ArticleWriter)(nil)
	_ edscrape.ArticleIndex  = (*ArticleIndex)(nil)
)

// ArticleWriter is a mock implementation of edscrape.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, article *edscrape.Article) error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, article *edscrape.Article) error {
	return w.WriteArticleFn(ctx, article)
}

// ArticleIndex is a mock implementation of edscrape.ArticleIndex.
type ArticleIndex struct {
	HasArticleFn func(ctx context.Context, sourceURL string) (bool, error)
}

func (i *ArticleIndex) HasArticle(ctx context.Context, sourceURL string) (bool, error) {
	return i.HasArticleFn(ctx, sourceURL)
}
