package mock

import "github.com/fwojciec/edscrape"

var _ edscrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of edscrape.Extractor.
type Extractor struct {
	ExtractFn func(doc *edscrape.RawDocument) (*edscrape.Article, error)
}

func (e *Extractor) Extract(doc *edscrape.RawDocument) (*edscrape.Article, error) {
	return e.ExtractFn(doc)
}
