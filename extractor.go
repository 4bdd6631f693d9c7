package edscrape

// Extractor derives an Article from one loaded page.
type Extractor interface {
	// Extract runs field extraction, content filtering and assembly on doc.
	// Returns ENOTITLE when no title could be found and EMALFORMED when
	// the markup cannot be parsed. An article without paragraphs is
	// returned without error.
	Extract(doc *RawDocument) (*Article, error)
}
