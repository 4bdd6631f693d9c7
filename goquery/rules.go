package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule identifies one field extraction heuristic.
type Rule int

// Extraction rules, grouped by field. Within a field the declaration order
// matches the default priority: structured metadata and semantic tags first
// where they are reliable, class-name heuristics next, generic fallbacks last.
const (
	RuleNone Rule = iota

	// TitleHeadlineClass matches a heading whose class contains "headline".
	TitleHeadlineClass
	// TitleTitleClass matches a heading whose class contains "title".
	TitleTitleClass
	// TitleFirstHeading matches the first heading regardless of class.
	TitleFirstHeading
	// TitleOpenGraph reads <meta property="og:title">.
	TitleOpenGraph

	// DateTimeElement reads a <time> element, preferring its datetime attribute.
	DateTimeElement
	// DateClass matches any element whose class contains "date".
	DateClass
	// DatePublishedMeta reads <meta property="article:published_time">.
	DatePublishedMeta

	// AuthorClass matches any element whose class contains "author".
	AuthorClass
	// AuthorMeta reads <meta name="author">.
	AuthorMeta
)

var ruleNames = map[Rule]string{
	RuleNone:           "none",
	TitleHeadlineClass: "title-headline-class",
	TitleTitleClass:    "title-title-class",
	TitleFirstHeading:  "title-first-heading",
	TitleOpenGraph:     "title-og-meta",
	DateTimeElement:    "date-time-element",
	DateClass:          "date-class",
	DatePublishedMeta:  "date-published-meta",
	AuthorClass:        "author-class",
	AuthorMeta:         "author-meta",
}

// String returns the rule name.
func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// headingLevels lists heading elements in preference order. Every h1 is
// considered before any h2.
var headingLevels = []string{"h1", "h2"}

// Apply evaluates the rule against root and returns the trimmed candidate,
// or the empty string if the rule does not match.
func (r Rule) Apply(root *goquery.Selection) string {
	switch r {
	case TitleHeadlineClass:
		return firstHeadingText(root, func(s *goquery.Selection) bool {
			return classContains(s, "headline")
		})
	case TitleTitleClass:
		return firstHeadingText(root, func(s *goquery.Selection) bool {
			return classContains(s, "title")
		})
	case TitleFirstHeading:
		return firstHeadingText(root, func(*goquery.Selection) bool { return true })
	case TitleOpenGraph:
		return metaContent(root, `meta[property="og:title"]`)
	case DateTimeElement:
		return firstValue(root.Find("time"), func(s *goquery.Selection) string {
			if dt := strings.TrimSpace(s.AttrOr("datetime", "")); dt != "" {
				return dt
			}
			return text(s)
		})
	case DateClass:
		return firstClassText(root, "date")
	case DatePublishedMeta:
		return metaContent(root, `meta[property="article:published_time"]`)
	case AuthorClass:
		return firstClassText(root, "author")
	case AuthorMeta:
		return metaContent(root, `meta[name="author"]`)
	}
	return ""
}

// Chain is an ordered list of rules for one field.
// The first rule producing a non-empty value wins and evaluation stops.
type Chain []Rule

// Evaluate returns the first non-empty candidate and the rule that
// produced it. It returns ("", RuleNone) when no rule matches.
func (c Chain) Evaluate(root *goquery.Selection) (string, Rule) {
	for _, rule := range c {
		if v := rule.Apply(root); v != "" {
			return v, rule
		}
	}
	return "", RuleNone
}

// DefaultTitleChain returns the default title rules in priority order.
func DefaultTitleChain() Chain {
	return Chain{TitleHeadlineClass, TitleTitleClass, TitleFirstHeading, TitleOpenGraph}
}

// DefaultDateChain returns the default publication date rules in priority order.
func DefaultDateChain() Chain {
	return Chain{DateTimeElement, DateClass, DatePublishedMeta}
}

// DefaultAuthorChain returns the default author rules in priority order.
func DefaultAuthorChain() Chain {
	return Chain{AuthorClass, AuthorMeta}
}

func firstHeadingText(root *goquery.Selection, match func(*goquery.Selection) bool) string {
	for _, level := range headingLevels {
		v := firstValue(root.Find(level), func(s *goquery.Selection) string {
			if !match(s) {
				return ""
			}
			return text(s)
		})
		if v != "" {
			return v
		}
	}
	return ""
}

// firstClassText returns the text of the first element, in document order,
// whose class contains token and whose text is non-empty.
func firstClassText(root *goquery.Selection, token string) string {
	return firstValue(root.Find("[class]"), func(s *goquery.Selection) string {
		if !classContains(s, token) {
			return ""
		}
		return text(s)
	})
}

func metaContent(root *goquery.Selection, selector string) string {
	return firstValue(root.Find(selector), func(s *goquery.Selection) string {
		return strings.TrimSpace(s.AttrOr("content", ""))
	})
}

// firstValue returns the first non-empty value of fn over sel.
func firstValue(sel *goquery.Selection, fn func(*goquery.Selection) string) string {
	var v string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v = fn(s)
		return v == ""
	})
	return v
}
