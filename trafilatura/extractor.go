// Package trafilatura extracts articles using go-trafilatura to isolate
// the content node and read page metadata.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/edscrape"
	edgoquery "github.com/fwojciec/edscrape/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements edscrape.Extractor at compile time.
var _ edscrape.Extractor = (*Extractor)(nil)

// dateLayout formats metadata dates.
const dateLayout = "2006-01-02"

// Extractor wraps go-trafilatura to locate the article body. Title, author
// and date come from trafilatura metadata and fall back to the heuristic
// rule chains.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(doc.URL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	title, date, author := fields.Title, fields.PublishedAt, fields.Author
	var paragraphs []string

	result, err := trafilatura.Extract(strings.NewReader(doc.HTML), opts)
	if err == nil {
		if t := strings.TrimSpace(result.Metadata.Title); t != "" {
			title = t
		}
		if a := strings.TrimSpace(result.Metadata.Author); a != "" {
			author = a
		}
		if !result.Metadata.Date.IsZero() {
			date = result.Metadata.Date.Format(dateLayout)
		}
		if result.ContentNode != nil {
			paragraphs = edgoquery.DropFused(filter.ParagraphsIn(edgoquery.ParseNode(result.ContentNode).Selection, doc.URL))
		}
	}

	// A recognised body container is more precise than the fallback node
	// trafilatura builds for short pages.
	if container, _ := edgoquery.SelectContainer(parsed.Selection); container != nil {
		if inner := filter.ParagraphsIn(container, doc.URL); len(inner) > 0 {
			paragraphs = inner
		}
	}

	if err != nil || (len(paragraphs) == 0 && filter.FallbackOnEmpty) {
		paragraphs, _ = filter.Paragraphs(parsed.Selection, doc.URL)
	}

	if title == "" {
		return nil, edscrape.Errorf(edscrape.ENOTITLE, "no title found at %s", doc.URL)
	}
	return edscrape.Assemble(title, date, author, paragraphs, doc.URL)
}
