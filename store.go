package edscrape

import (
	"context"
	"time"
)

// StoredArticle is an Article recorded in the article index.
type StoredArticle struct {
	ID string `json:"id"`
	Article

	// ContentHash changes whenever the title or paragraphs change.
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	// Since restricts results to articles stored at or after the given time.
	Since *time.Time

	// Restrict to subset of results.
	Offset int
	Limit  int
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	ArticleWriter
	ArticleIndex

	// FindArticleByURL retrieves an article by its source URL.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByURL(ctx context.Context, sourceURL string) (*StoredArticle, error)

	// FindArticles retrieves articles matching the filter, most recently
	// stored first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*StoredArticle, error)
}
