package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/edscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ edscrape.ArticleService = (*ArticleService)(nil)

// ArticleService implements edscrape.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashArticle computes the xxHash of the title and paragraphs as a hex string.
func hashArticle(a *edscrape.Article) string {
	d := xxhash.New()
	_, _ = d.WriteString(a.Title)
	for _, p := range a.Paragraphs {
		_, _ = d.WriteString("\n\n")
		_, _ = d.WriteString(p)
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], d.Sum64())
	return hex.EncodeToString(b[:])
}

// WriteArticle stores the article, replacing any previous record with the
// same source URL. The record keeps its ID and creation time on replace.
func (s *ArticleService) WriteArticle(ctx context.Context, article *edscrape.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	paragraphs, err := json.Marshal(nonNil(article.Paragraphs))
	if err != nil {
		return fmt.Errorf("failed to encode paragraphs: %w", err)
	}

	now := formatTime(time.Now())
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, source_url, title, published_at, author, paragraphs, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_url) DO UPDATE SET
			title = excluded.title,
			published_at = excluded.published_at,
			author = excluded.author,
			paragraphs = excluded.paragraphs,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
	`, uuid.New().String(), article.SourceURL, article.Title, article.PublishedAt, article.Author,
		string(paragraphs), hashArticle(article), now, now)
	if err != nil {
		return fmt.Errorf("failed to store article: %w", err)
	}
	return nil
}

// HasArticle reports whether an article with the source URL is stored.
func (s *ArticleService) HasArticle(ctx context.Context, sourceURL string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE source_url = ?", sourceURL).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const selectArticle = "SELECT id, source_url, title, published_at, author, paragraphs, content_hash, created_at, updated_at FROM articles"

// FindArticleByURL retrieves an article by its source URL.
func (s *ArticleService) FindArticleByURL(ctx context.Context, sourceURL string) (*edscrape.StoredArticle, error) {
	row := s.db.QueryRowContext(ctx, selectArticle+" WHERE source_url = ?", sourceURL)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, edscrape.Errorf(edscrape.ENOTFOUND, "article not found: %s", sourceURL)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindArticles retrieves articles matching the filter, most recently stored first.
func (s *ArticleService) FindArticles(ctx context.Context, filter edscrape.ArticleFilter) ([]*edscrape.StoredArticle, error) {
	var query strings.Builder
	var args []any

	query.WriteString(selectArticle + " WHERE 1=1")

	if filter.Since != nil {
		query.WriteString(" AND created_at >= ?")
		args = append(args, formatTime(*filter.Since))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*edscrape.StoredArticle{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*edscrape.StoredArticle, error) {
	var a edscrape.StoredArticle
	var paragraphs, createdAt, updatedAt string

	if err := row.Scan(&a.ID, &a.SourceURL, &a.Title, &a.PublishedAt, &a.Author,
		&paragraphs, &a.ContentHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(paragraphs), &a.Paragraphs); err != nil {
		return nil, fmt.Errorf("failed to decode paragraphs: %w", err)
	}

	var err error
	if a.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
