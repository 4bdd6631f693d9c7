package goquery_test

import (
	"testing"

	"github.com/fwojciec/edscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, chain goquery.Chain, html string) (string, goquery.Rule) {
	t.Helper()
	doc, err := goquery.ParseHTML(html)
	require.NoError(t, err)
	return chain.Evaluate(doc.Selection)
}

func TestTitleChain(t *testing.T) {
	t.Parallel()

	t.Run("prefers headline class over other headings", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Site Name</h1>
<h1 class="page-title">Section</h1>
<h1 class="Story-HEADLINE big">  The Real Headline  </h1>
</body></html>`

		title, rule := evaluate(t, goquery.DefaultTitleChain(), html)

		assert.Equal(t, "The Real Headline", title)
		assert.Equal(t, goquery.TitleHeadlineClass, rule)
	})

	t.Run("considers every h1 before any h2", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2 class="headline">Sidebar Headline</h2>
<h1 class="headline">Main Headline</h1>
</body></html>`

		title, _ := evaluate(t, goquery.DefaultTitleChain(), html)

		assert.Equal(t, "Main Headline", title)
	})

	t.Run("falls back to title class", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>Site</h1><h1 class="article-title">Titled</h1></body></html>`

		title, rule := evaluate(t, goquery.DefaultTitleChain(), html)

		assert.Equal(t, "Titled", title)
		assert.Equal(t, goquery.TitleTitleClass, rule)
	})

	t.Run("falls back to first heading", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>  </h1><h1>First Non-empty</h1><h1>Second</h1></body></html>`

		title, rule := evaluate(t, goquery.DefaultTitleChain(), html)

		assert.Equal(t, "First Non-empty", title)
		assert.Equal(t, goquery.TitleFirstHeading, rule)
	})

	t.Run("falls back to og:title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="Fallback Title"></head><body><p>text</p></body></html>`

		title, rule := evaluate(t, goquery.DefaultTitleChain(), html)

		assert.Equal(t, "Fallback Title", title)
		assert.Equal(t, goquery.TitleOpenGraph, rule)
	})

	t.Run("returns empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Document title is not used</title></head><body><p>text</p></body></html>`

		title, rule := evaluate(t, goquery.DefaultTitleChain(), html)

		assert.Empty(t, title)
		assert.Equal(t, goquery.RuleNone, rule)
	})

	t.Run("ignores script text inside headings", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1 class="headline">Clean<script>var x = 1;</script></h1></body></html>`

		title, _ := evaluate(t, goquery.DefaultTitleChain(), html)

		assert.Equal(t, "Clean", title)
	})
}

func TestDateChain(t *testing.T) {
	t.Parallel()

	t.Run("prefers datetime attribute over text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><time datetime="2025-01-05">Jan 5</time><span class="date">yesterday</span></body></html>`

		date, rule := evaluate(t, goquery.DefaultDateChain(), html)

		assert.Equal(t, "2025-01-05", date)
		assert.Equal(t, goquery.DateTimeElement, rule)
	})

	t.Run("uses time text without datetime attribute", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><time> 2025.01.05 09:00 </time></body></html>`

		date, _ := evaluate(t, goquery.DefaultDateChain(), html)

		assert.Equal(t, "2025.01.05 09:00", date)
	})

	t.Run("falls back to date class", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="Article-Date">입력 2025.01.05</div></body></html>`

		date, rule := evaluate(t, goquery.DefaultDateChain(), html)

		assert.Equal(t, "입력 2025.01.05", date)
		assert.Equal(t, goquery.DateClass, rule)
	})

	t.Run("falls back to published_time meta", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="article:published_time" content="2025-01-05T09:00:00+09:00"></head><body></body></html>`

		date, rule := evaluate(t, goquery.DefaultDateChain(), html)

		assert.Equal(t, "2025-01-05T09:00:00+09:00", date)
		assert.Equal(t, goquery.DatePublishedMeta, rule)
	})

	t.Run("does not validate plausibility", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><time datetime="not a date">x</time></body></html>`

		date, _ := evaluate(t, goquery.DefaultDateChain(), html)

		assert.Equal(t, "not a date", date)
	})
}

func TestAuthorChain(t *testing.T) {
	t.Parallel()

	t.Run("uses author class", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="author" content="Meta Author"></head><body><span class="byline-author">Kim Minsu</span></body></html>`

		author, rule := evaluate(t, goquery.DefaultAuthorChain(), html)

		assert.Equal(t, "Kim Minsu", author)
		assert.Equal(t, goquery.AuthorClass, rule)
	})

	t.Run("falls back to author meta", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="author" content="Meta Author"></head><body></body></html>`

		author, rule := evaluate(t, goquery.DefaultAuthorChain(), html)

		assert.Equal(t, "Meta Author", author)
		assert.Equal(t, goquery.AuthorMeta, rule)
	})
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	html := `<html><head><meta property="og:title" content="Meta Title"></head><body><h1 class="headline">Heading Title</h1></body></html>`

	title, rule := evaluate(t, goquery.Chain{goquery.TitleOpenGraph, goquery.TitleHeadlineClass}, html)

	assert.Equal(t, "Meta Title", title)
	assert.Equal(t, goquery.TitleOpenGraph, rule)
}

func TestRule_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "title-og-meta", goquery.TitleOpenGraph.String())
	assert.Equal(t, "none", goquery.RuleNone.String())
	assert.Equal(t, "unknown", goquery.Rule(999).String())
}
