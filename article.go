package edscrape

import "strings"

// RawDocument is the HTML of one loaded page.
// It is the immutable input of a single extraction.
type RawDocument struct {
	URL  string
	HTML string
}

// Article represents an extracted editorial article.
// Articles are produced by Assemble and are not modified afterwards.
type Article struct {
	Title       string   `json:"title"`
	PublishedAt string   `json:"publishedAt"`
	Author      string   `json:"author"`
	Paragraphs  []string `json:"paragraphs"`
	SourceURL   string   `json:"sourceUrl"`
}

// Valid reports whether the article has a title.
func (a *Article) Valid() bool {
	return a != nil && a.Title != ""
}

// Complete reports whether the article has a title and at least one paragraph.
func (a *Article) Complete() bool {
	return a.Valid() && len(a.Paragraphs) > 0
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if !a.Valid() {
		return Errorf(ENOTITLE, "article title required")
	}
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	return nil
}

// Assemble combines extracted fields into an Article.
// It returns ENOTITLE when the title is empty. An article without
// paragraphs is accepted; callers decide how to account for it using
// Complete.
func Assemble(title, publishedAt, author string, paragraphs []string, sourceURL string) (*Article, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, Errorf(ENOTITLE, "no title found at %s", sourceURL)
	}

	ps := make([]string, len(paragraphs))
	copy(ps, paragraphs)

	return &Article{
		Title:       title,
		PublishedAt: strings.TrimSpace(publishedAt),
		Author:      strings.TrimSpace(author),
		Paragraphs:  ps,
		SourceURL:   sourceURL,
	}, nil
}
