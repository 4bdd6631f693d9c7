package mock

import (
	"context"

	"github.com/fwojciec/edscrape"
)

var _ edscrape.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of edscrape.ArticleService.
type ArticleService struct {
	WriteArticleFn     func(ctx context.Context, article *edscrape.Article) error
	HasArticleFn       func(ctx context.Context, sourceURL string) (bool, error)
	FindArticleByURLFn func(ctx context.Context, sourceURL string) (*edscrape.StoredArticle, error)
	FindArticlesFn     func(ctx context.Context, filter edscrape.ArticleFilter) ([]*edscrape.StoredArticle, error)
}

func (s *ArticleService) WriteArticle(ctx context.Context, article *edscrape.Article) error {
	return s.WriteArticleFn(ctx, article)
}

func (s *ArticleService) HasArticle(ctx context.Context, sourceURL string) (bool, error) {
	return s.HasArticleFn(ctx, sourceURL)
}

func (s *ArticleService) FindArticleByURL(ctx context.Context, sourceURL string) (*edscrape.StoredArticle, error) {
	return s.FindArticleByURLFn(ctx, sourceURL)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter edscrape.ArticleFilter) ([]*edscrape.StoredArticle, error) {
	return s.FindArticlesFn(ctx, filter)
}
