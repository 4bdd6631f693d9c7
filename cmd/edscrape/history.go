package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/edscrape"
)

// historyTimeLayout formats storage times in listings.
const historyTimeLayout = "2006-01-02 15:04"

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.URL != "" {
		return c.show(deps)
	}

	filter := edscrape.ArticleFilter{Limit: c.Limit}
	if c.Since > 0 {
		since := time.Now().Add(-c.Since)
		filter.Since = &since
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles stored yet. Use 'edscrape run' to scrape some.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", a.CreatedAt.Local().Format(historyTimeLayout), a.Title, a.SourceURL)
	}
	return nil
}

func (c *HistoryCmd) show(deps *Dependencies) error {
	a, err := deps.Articles.FindArticleByURL(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:          %s\n", a.ID)
	fmt.Fprintf(deps.Stdout, "Title:       %s\n", a.Title)
	if a.PublishedAt != "" {
		fmt.Fprintf(deps.Stdout, "Published:   %s\n", a.PublishedAt)
	}
	if a.Author != "" {
		fmt.Fprintf(deps.Stdout, "Author:      %s\n", a.Author)
	}
	fmt.Fprintf(deps.Stdout, "Source:      %s\n", a.SourceURL)
	fmt.Fprintf(deps.Stdout, "Paragraphs:  %d\n", len(a.Paragraphs))
	fmt.Fprintf(deps.Stdout, "Hash:        %s\n", a.ContentHash)
	fmt.Fprintf(deps.Stdout, "Stored:      %s\n", a.CreatedAt.Local().Format(historyTimeLayout))
	fmt.Fprintf(deps.Stdout, "Updated:     %s\n", a.UpdatedAt.Local().Format(historyTimeLayout))
	return nil
}
