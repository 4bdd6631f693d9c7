// Package readability extracts articles using go-readability to isolate
// the content node of a page.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/edscrape"
	edgoquery "github.com/fwojciec/edscrape/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements edscrape.Extractor at compile time.
var _ edscrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to locate the article body. Paragraphs
// are cleaned with the heuristic content filter; title and author fall back
// to the heuristic rule chains when readability finds none.
type Extractor struct {
	heuristic *edgoquery.Extractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHeuristic sets the extractor used for field fallbacks and the
// content filter. Defaults to edgoquery.NewExtractor() if not specified.
func WithHeuristic(h *edgoquery.Extractor) Option {
	return func(e *Extractor) {
		e.heuristic = h
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		heuristic: edgoquery.NewExtractor(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the article.
func (e *Extractor) Extract(doc *edscrape.RawDocument) (*edscrape.Article, error) {
	if doc == nil {
		return nil, edscrape.Errorf(edscrape.EINVALID, "nil document")
	}

	parsed, err := edgoquery.ParseHTML(doc.HTML)
	if err != nil {
		return nil, err
	}
	fields := e.heuristic.ExtractFields(parsed.Selection)
	filter := e.heuristic.Filter()

	var pageURL *url.URL
	if u, err := url.Parse(doc.URL); err == nil && u.Host != "" {
		pageURL = u
	}

	title, author := fields.Title, fields.Author
	var paragraphs []string

	article, err := readability.FromReader(strings.NewReader(doc.HTML), pageURL)
	if err == nil {
		if t := strings.TrimSpace(article.Title); t != "" {
			title = t
		}
		if b := strings.TrimSpace(article.Byline); b != "" {
			author = b
		}
		if article.Node != nil {
			paragraphs = edgoquery.DropFused(filter.ParagraphsIn(edgoquery.ParseNode(article.Node).Selection, doc.URL))
		}
	}

	if err != nil || (len(paragraphs) == 0 && filter.FallbackOnEmpty) {
		paragraphs, _ = filter.Paragraphs(parsed.Selection, doc.URL)
	}

	if title == "" {
		return nil, edscrape.Errorf(edscrape.ENOTITLE, "no title found at %s", doc.URL)
	}
	return edscrape.Assemble(title, fields.PublishedAt, author, paragraphs, doc.URL)
}
