package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/edscrape"
	"github.com/fwojciec/edscrape/crawl"
)

// maxURLWidth is the display width of URLs in progress lines.
const maxURLWidth = 70

// progressPrinter returns a ProgressFunc writing one line per URL to w.
func progressPrinter(w io.Writer) crawl.ProgressFunc {
	return func(ev crawl.ProgressEvent) {
		switch ev.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(w, "Scraping %d articles\n", ev.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(w, "  [%d/%d] saved %s\n", ev.Completed, ev.Total, ev.Title)
		case crawl.ProgressPartial:
			fmt.Fprintf(w, "  [%d/%d] saved %s (no body text)\n", ev.Completed, ev.Total, ev.Title)
		case crawl.ProgressSkipped:
			fmt.Fprintf(w, "  [%d/%d] skip %s (already stored)\n", ev.Completed, ev.Total, crawl.TruncateURL(ev.URL, maxURLWidth))
		case crawl.ProgressFailed:
			fmt.Fprintf(w, "  [%d/%d] fail %s: %s\n", ev.Completed, ev.Total, crawl.TruncateURL(ev.URL, maxURLWidth), describe(ev.Error))
		}
	}
}

// describe returns the message of an application error or the full text
// of any other error.
func describe(err error) string {
	if err == nil {
		return ""
	}
	if edscrape.ErrorCode(err) != edscrape.EINTERNAL {
		return edscrape.ErrorMessage(err)
	}
	return err.Error()
}

// scrape runs the batch and prints the summary to stdout.
func scrape(deps *Dependencies, urls []string) error {
	result, err := deps.Runner.Run(deps.Ctx, urls, progressPrinter(deps.Stderr))
	fmt.Fprintln(deps.Stdout, crawl.FormatResult(result))
	if err != nil {
		return err
	}
	if result.Succeeded+result.Partial > 0 {
		fmt.Fprintf(deps.Stdout, "Articles saved to %s\n", deps.Config.Output.Dir)
	}
	return nil
}
