package edscrape

import "context"

// ArticleWriter persists accepted articles.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, article *Article) error
}

// ArticleIndex reports which source URLs have already been stored.
type ArticleIndex interface {
	HasArticle(ctx context.Context, sourceURL string) (bool, error)
}

// MultiWriter writes each article to every writer in order.
// It stops at the first error.
type MultiWriter []ArticleWriter

// WriteArticle implements ArticleWriter.
func (w MultiWriter) WriteArticle(ctx context.Context, article *Article) error {
	for _, next := range w {
		if err := next.WriteArticle(ctx, article); err != nil {
			return err
		}
	}
	return nil
}
