package edscrape_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/edscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()

		article, err := edscrape.Assemble("", "2025-01-05", "Kim", []string{"body"}, "https://example.com/a")

		require.Error(t, err)
		assert.Nil(t, article)
		assert.Equal(t, edscrape.ENOTITLE, edscrape.ErrorCode(err))
	})

	t.Run("rejects whitespace-only title", func(t *testing.T) {
		t.Parallel()

		_, err := edscrape.Assemble("  \n\t ", "", "", nil, "https://example.com/a")

		assert.Equal(t, edscrape.ENOTITLE, edscrape.ErrorCode(err))
	})

	t.Run("accepts article without paragraphs", func(t *testing.T) {
		t.Parallel()

		article, err := edscrape.Assemble("Title", "", "", nil, "https://example.com/a")

		require.NoError(t, err)
		assert.True(t, article.Valid())
		assert.False(t, article.Complete())
		assert.NotNil(t, article.Paragraphs)
		assert.Empty(t, article.Paragraphs)
	})

	t.Run("encodes missing paragraphs as an empty list", func(t *testing.T) {
		t.Parallel()

		article, err := edscrape.Assemble("Title", "", "", nil, "https://example.com/a")
		require.NoError(t, err)

		data, err := json.Marshal(article)

		require.NoError(t, err)
		assert.NotContains(t, string(data), "null")
	})

	t.Run("keeps paragraph order and copies the slice", func(t *testing.T) {
		t.Parallel()

		paragraphs := []string{"first paragraph", "second paragraph"}
		article, err := edscrape.Assemble("Title", "2025-01-05", "Kim", paragraphs, "https://example.com/a")
		require.NoError(t, err)

		paragraphs[0] = "mutated"

		assert.Equal(t, []string{"first paragraph", "second paragraph"}, article.Paragraphs)
		assert.True(t, article.Complete())
		assert.Equal(t, "2025-01-05", article.PublishedAt)
		assert.Equal(t, "Kim", article.Author)
		assert.Equal(t, "https://example.com/a", article.SourceURL)
	})
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires title", func(t *testing.T) {
		t.Parallel()

		a := &edscrape.Article{SourceURL: "https://example.com/a"}
		assert.Equal(t, edscrape.ENOTITLE, edscrape.ErrorCode(a.Validate()))
	})

	t.Run("requires source URL", func(t *testing.T) {
		t.Parallel()

		a := &edscrape.Article{Title: "Title"}
		assert.Equal(t, edscrape.EINVALID, edscrape.ErrorCode(a.Validate()))
	})

	t.Run("nil article is not valid", func(t *testing.T) {
		t.Parallel()

		var a *edscrape.Article
		assert.False(t, a.Valid())
		assert.False(t, a.Complete())
	})
}
