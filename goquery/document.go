// Package goquery implements the article extraction heuristics on top of
// github.com/PuerkitoBio/goquery: ordered rule chains for the title,
// publication date and author, a paragraph content filter, and link
// extraction for section pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/edscrape"
	"golang.org/x/net/html"
)

// invisibleSelector matches elements whose text is never visible.
const invisibleSelector = "script, style, noscript, template"

// ParseHTML parses raw HTML into a document with invisible elements removed.
// Returns EMALFORMED if no document tree can be built.
func ParseHTML(rawHTML string) (*goquery.Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, edscrape.Errorf(edscrape.EMALFORMED, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, edscrape.Errorf(edscrape.EMALFORMED, "failed to parse HTML: %v", err)
	}
	doc.Find(invisibleSelector).Remove()
	return doc, nil
}

// ParseNode wraps an already parsed node, removing invisible elements.
func ParseNode(n *html.Node) *goquery.Document {
	doc := goquery.NewDocumentFromNode(n)
	doc.Find(invisibleSelector).Remove()
	return doc
}

// classContains reports whether the class attribute of sel contains token,
// ignoring case. The attribute is matched as a whole string, so compound
// class lists such as "story-headline big" match "headline".
func classContains(sel *goquery.Selection, token string) bool {
	class, ok := sel.Attr("class")
	return ok && strings.Contains(strings.ToLower(class), token)
}

// text returns the trimmed visible text of sel.
func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
