package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Container identifies how the content container of a page was located.
type Container int

// Container detection outcomes in priority order.
const (
	// ContainerNone means no container matched and the whole document was scanned.
	ContainerNone Container = iota
	// ContainerArticle is the first <article> element.
	ContainerArticle
	// ContainerBodyClass is a div, section or main whose class names the article body.
	ContainerBodyClass
	// ContainerGenericClass is a div whose class mentions article, content or body.
	ContainerGenericClass
)

// String returns the container name.
func (c Container) String() string {
	switch c {
	case ContainerArticle:
		return "article"
	case ContainerBodyClass:
		return "body-class"
	case ContainerGenericClass:
		return "generic-class"
	default:
		return "document"
	}
}

// Minimum paragraph lengths, in characters.
const (
	DefaultMinContainerLength = 21
	DefaultMinDocumentLength  = 31
)

// bodyClassTokens are checked in order; an earlier token wins over a later
// one regardless of document position.
var bodyClassTokens = []string{"article-body", "story-body", "content-body"}

// genericClassTokens are checked together; the first div in document
// order containing any of them wins.
var genericClassTokens = []string{"article", "content", "body"}

// adClassToken excludes advertisement slots interleaved in body markup.
const adClassToken = "ad"

// Denylist is a set of boilerplate markers. A paragraph containing any
// marker, compared case-insensitively, is rejected.
type Denylist []string

// DefaultDenylist returns the default boilerplate markers: the copyright
// sign, "copyright", the Korean term for copyright and the Korean term for
// a reporter byline.
func DefaultDenylist() Denylist {
	return Denylist{"©", "copyright", "저작권", "기자"}
}

// Contains reports whether text contains any marker.
func (d Denylist) Contains(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range d {
		m := strings.ToLower(strings.TrimSpace(marker))
		if m != "" && strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// ContentFilter selects the article body of a page and returns its cleaned
// paragraphs.
type ContentFilter struct {
	// Denylist holds boilerplate markers.
	Denylist Denylist

	// SiteDomain adds the page host, without a leading "www.", to the
	// denylist of each page.
	SiteDomain bool

	// MinContainerLength is the minimum paragraph length inside a container.
	MinContainerLength int

	// MinDocumentLength is the minimum paragraph length under the
	// whole-document fallback.
	MinDocumentLength int

	// FallbackOnEmpty scans the whole document when a container was found
	// but yielded no paragraphs.
	FallbackOnEmpty bool
}

// NewContentFilter returns a ContentFilter with default settings.
func NewContentFilter() *ContentFilter {
	return &ContentFilter{
		Denylist:           DefaultDenylist(),
		SiteDomain:         true,
		MinContainerLength: DefaultMinContainerLength,
		MinDocumentLength:  DefaultMinDocumentLength,
		FallbackOnEmpty:    true,
	}
}

// SelectContainer locates the content container of root.
// It returns (nil, ContainerNone) when no container matches.
func SelectContainer(root *goquery.Selection) (*goquery.Selection, Container) {
	if sel := root.Find("article").First(); sel.Length() > 0 {
		return sel, ContainerArticle
	}

	candidates := root.Find("div, section, main")
	for _, token := range bodyClassTokens {
		sel := candidates.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return classContains(s, token)
		}).First()
		if sel.Length() > 0 {
			return sel, ContainerBodyClass
		}
	}

	sel := root.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, token := range genericClassTokens {
			if classContains(s, token) {
				return true
			}
		}
		return false
	}).First()
	if sel.Length() > 0 {
		return sel, ContainerGenericClass
	}

	return nil, ContainerNone
}

// Paragraphs returns the cleaned paragraphs of root in document order
// together with the container detection outcome. pageURL is used for the
// site domain marker and may be empty.
func (f *ContentFilter) Paragraphs(root *goquery.Selection, pageURL string) ([]string, Container) {
	deny := f.denylistFor(pageURL)

	container, kind := SelectContainer(root)
	if container != nil {
		paragraphs := f.collect(container.Find("p, div").FilterFunction(isTextBlock), f.MinContainerLength, deny)
		if len(paragraphs) > 0 || !f.FallbackOnEmpty {
			return paragraphs, kind
		}
	}

	return f.collect(root.Find("p"), f.MinDocumentLength, deny), ContainerNone
}

// ParagraphsIn returns the cleaned paragraphs inside an already located
// container using the container length threshold.
func (f *ContentFilter) ParagraphsIn(container *goquery.Selection, pageURL string) []string {
	return f.collect(container.Find("p, div").FilterFunction(isTextBlock), f.MinContainerLength, f.denylistFor(pageURL))
}

// DropFused removes repeated paragraphs and paragraphs that end with
// another collected paragraph, such as a page title glued to the body text
// by a content extraction library. Order is preserved.
func DropFused(paragraphs []string) []string {
	out := make([]string, 0, len(paragraphs))
	for i, p := range paragraphs {
		fused := false
		for j, q := range paragraphs {
			if i == j {
				continue
			}
			if p == q && j < i {
				fused = true
				break
			}
			if len(q) < len(p) && strings.HasSuffix(p, q) {
				fused = true
				break
			}
		}
		if !fused {
			out = append(out, p)
		}
	}
	return out
}

func (f *ContentFilter) collect(sel *goquery.Selection, minLength int, deny Denylist) []string {
	paragraphs := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		if classContains(s, adClassToken) {
			return
		}
		t := text(s)
		if t == "" {
			return
		}
		if utf8.RuneCountInString(t) < minLength {
			return
		}
		if deny.Contains(t) {
			return
		}
		paragraphs = append(paragraphs, t)
	})
	return paragraphs
}

func (f *ContentFilter) denylistFor(pageURL string) Denylist {
	deny := append(Denylist(nil), f.Denylist...)
	if !f.SiteDomain || pageURL == "" {
		return deny
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return deny
	}
	if host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www."); host != "" {
		deny = append(deny, host)
	}
	return deny
}

// isTextBlock keeps paragraphs and leaf divs. A div wrapping other blocks
// would repeat the text of its children.
func isTextBlock(_ int, s *goquery.Selection) bool {
	if goquery.NodeName(s) != "div" {
		return true
	}
	return s.Find("p, div").Length() == 0
}
