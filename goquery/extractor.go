package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/edscrape"
)

// Ensure Extractor implements edscrape.Extractor at compile time.
var _ edscrape.Extractor = (*Extractor)(nil)

// Fields holds the field candidates of one page before assembly,
// together with the rule that produced each value.
type Fields struct {
	Title       string
	PublishedAt string
	Author      string

	TitleRule  Rule
	DateRule   Rule
	AuthorRule Rule
}

// Extractor extracts articles from arbitrary markup using ordered rule
// chains for each field and a ContentFilter for the body.
type Extractor struct {
	title  Chain
	date   Chain
	author Chain
	filter *ContentFilter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTitleChain overrides the title rules.
func WithTitleChain(c Chain) Option {
	return func(e *Extractor) {
		e.title = c
	}
}

// WithDateChain overrides the publication date rules.
func WithDateChain(c Chain) Option {
	return func(e *Extractor) {
		e.date = c
	}
}

// WithAuthorChain overrides the author rules.
func WithAuthorChain(c Chain) Option {
	return func(e *Extractor) {
		e.author = c
	}
}

// WithContentFilter sets the paragraph filter.
// Defaults to NewContentFilter() if not specified.
func WithContentFilter(f *ContentFilter) Option {
	return func(e *Extractor) {
		e.filter = f
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		title:  DefaultTitleChain(),
		date:   DefaultDateChain(),
		author: DefaultAuthorChain(),
		filter: NewContentFilter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Filter returns the paragraph filter used by the extractor.
func (e *Extractor) Filter() *ContentFilter {
	return e.filter
}

// ExtractFields evaluates the title, date and author chains against root.
func (e *Extractor) ExtractFields(root *goquery.Selection) Fields {
	var f Fields
	f.Title, f.TitleRule = e.title.Evaluate(root)
	f.PublishedAt, f.DateRule = e.date.Evaluate(root)
	f.Author, f.AuthorRule = e.author.Evaluate(root)
	return f
}

// Extract parses the document, extracts its fields and paragraphs and
// assembles an Article. Returns EMALFORMED for unparseable markup and
// ENOTITLE when no title rule matches.
func (e *Extractor) Extract(doc *edscrape.RawDocument) (*edscrape.Article, error) {
	if doc == nil {
		return nil, edscrape.Errorf(edscrape.EINVALID, "nil document")
	}

	parsed, err := ParseHTML(doc.HTML)
	if err != nil {
		return nil, err
	}

	fields := e.ExtractFields(parsed.Selection)
	if fields.Title == "" {
		return nil, edscrape.Errorf(edscrape.ENOTITLE, "no title found at %s", doc.URL)
	}

	paragraphs, _ := e.filter.Paragraphs(parsed.Selection, doc.URL)
	return edscrape.Assemble(fields.Title, fields.PublishedAt, fields.Author, paragraphs, doc.URL)
}
