package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/edscrape"
	"github.com/fwojciec/edscrape/config"
	"github.com/fwojciec/edscrape/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config

	Source   edscrape.URLSource
	Runner   *crawl.Runner
	Articles edscrape.ArticleService
}

// CLI defines the command-line interface structure for Kong.
// Flags left unset keep the values of the config file.
type CLI struct {
	Config      string         `help:"Config file (default: $EDSCRAPE_CONFIG or ~/.edscrape/config.yaml)"`
	Out         string         `short:"o" help:"Output directory for markdown files"`
	DB          string         `name:"db" help:"SQLite article index; stored URLs are skipped"`
	Delay       *time.Duration `help:"Minimum interval between requests to one host (at least 1s)"`
	Concurrency int            `short:"c" help:"Concurrent article fetches"`
	Timeout     time.Duration  `short:"t" help:"Fetch timeout per page"`
	UserAgent   string         `name:"user-agent" help:"User-Agent header"`
	RenderDelay *time.Duration `name:"render-delay" help:"Wait after page load in browser mode"`
	Loader      string         `short:"l" help:"Document loader: http or browser"`
	Engine      string         `short:"e" help:"Extraction engine: heuristic, readability or trafilatura"`
	Strict      bool           `help:"Count articles without paragraphs as failed"`
	LogLevel    string         `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape the given article URLs"`
	Discover DiscoverCmd `cmd:"" help:"List article URLs of the configured section"`
	Run      RunCmd      `cmd:"" help:"Discover and scrape the configured section"`
	History  HistoryCmd  `cmd:"" help:"List articles recorded in the index"`
}

// Apply overrides cfg with the flags that were set.
func (c *CLI) Apply(cfg *config.Config) {
	if c.Out != "" {
		cfg.Output.Dir = c.Out
	}
	if c.DB != "" {
		cfg.Output.DB = c.DB
	}
	if c.Delay != nil {
		cfg.Fetch.Delay = *c.Delay
	}
	if c.Concurrency != 0 {
		cfg.Fetch.Concurrency = c.Concurrency
	}
	if c.Timeout != 0 {
		cfg.Fetch.Timeout = c.Timeout
	}
	if c.UserAgent != "" {
		cfg.Fetch.UserAgent = c.UserAgent
	}
	if c.RenderDelay != nil {
		cfg.Fetch.RenderDelay = *c.RenderDelay
	}
	if c.Loader != "" {
		cfg.Fetch.Loader = c.Loader
	}
	if c.Engine != "" {
		cfg.Extract.Engine = c.Engine
	}
	if c.Strict {
		cfg.Extract.Strict = true
	}
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs []string `arg:"" optional:"" name:"url" help:"Article URLs"`
	File string   `short:"f" help:"Read article URLs from a file, one per line"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct{}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Preview bool `short:"p" help:"Show discovered URLs without scraping"`
	Limit   int  `short:"n" help:"Scrape at most this many URLs"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string        `arg:"" optional:"" help:"Show the stored record of one article"`
	Limit int           `short:"n" default:"20" help:"Maximum number of articles to list"`
	Since time.Duration `help:"Only list articles stored within this duration"`
}
