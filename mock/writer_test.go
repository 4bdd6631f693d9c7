package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/edscrape"
	"github.com/fwojciec/edscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleWriter_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteArticleFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *edscrape.Article
		w := &mock.ArticleWriter{
			WriteArticleFn: func(_ context.Context, a *edscrape.Article) error {
				calledWith = a
				return nil
			},
		}

		a := &edscrape.Article{
			Title:      "Test Title",
			SourceURL:  "https://example.com/a",
			Paragraphs: []string{"Body."},
		}

		err := w.WriteArticle(context.Background(), a)

		require.NoError(t, err)
		assert.Equal(t, a, calledWith)
	})
}
