package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/edscrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls := append([]string(nil), c.URLs...)
	if c.File != "" {
		fromFile, err := readURLFile(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		urls = append(urls, fromFile...)
	}

	if len(urls) == 0 {
		return edscrape.Errorf(edscrape.EINVALID, "no URLs given; pass article URLs or --file")
	}
	return scrape(deps, urls)
}

// readURLFile returns the lines of path that start with http, in order.
// Blank lines, comments and other text are ignored.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "http") {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URL file: %w", err)
	}
	return urls, nil
}
