package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/edscrape"
	"github.com/fwojciec/edscrape/config"
	"github.com/fwojciec/edscrape/crawl"
	"github.com/fwojciec/edscrape/fs"
	"github.com/fwojciec/edscrape/gofeed"
	edgoquery "github.com/fwojciec/edscrape/goquery"
	edhttp "github.com/fwojciec/edscrape/http"
	"github.com/fwojciec/edscrape/readability"
	"github.com/fwojciec/edscrape/rod"
	edslog "github.com/fwojciec/edscrape/slog"
	"github.com/fwojciec/edscrape/sqlite"
	"github.com/fwojciec/edscrape/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path used when --config is not given.
	ConfigPath string

	// Resources held for the duration of a command.
	DB      *sqlite.DB
	Fetcher edscrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: config.DefaultPath(),
	}
}

// Close releases the fetcher and the database.
func (m *Main) Close() error {
	var errs []error
	if m.Fetcher != nil {
		errs = append(errs, m.Fetcher.Close())
		m.Fetcher = nil
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
		m.DB = nil
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("edscrape"),
		kong.Description("Scrape newspaper editorials to local markdown files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'edscrape --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	configPath := cli.Config
	if configPath == "" {
		configPath = m.ConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cli.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cli.LogLevel)

	defer m.Close()

	if cfg.Output.DB != "" || cmd == "history" {
		if cfg.Output.DB == "" {
			return edscrape.Errorf(edscrape.EINVALID, "no article index configured; set --db or output.db")
		}
		m.DB = sqlite.NewDB(cfg.Output.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cfg.Output.DB, err)
		}
		deps.Articles = sqlite.NewArticleService(m.DB)
	}

	if cmd != "history" {
		fetcher, err := newFetcher(cfg)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --loader browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Fetcher = fetcher
		logged := edslog.NewLoggingFetcher(fetcher, deps.Logger)

		deps.Source = newSource(cfg, logged, deps.Logger)
		deps.Runner = newRunner(cfg, logged, deps.Articles, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newLogger creates a text logger on w with the given level name.
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromString(level),
	}))
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// newFetcher creates the configured document loader.
func newFetcher(cfg *config.Config) (edscrape.Fetcher, error) {
	if cfg.Fetch.Loader == config.LoaderBrowser {
		opts := []rod.Option{
			rod.WithFetchTimeout(cfg.Fetch.Timeout),
			rod.WithRenderDelay(cfg.Fetch.RenderDelay),
			rod.WithBrowserRecycling(cfg.Fetch.MaxPages),
		}
		if cfg.Fetch.BrowserBin != "" {
			opts = append(opts, rod.WithBrowserBin(cfg.Fetch.BrowserBin))
		}
		if cfg.Fetch.UserAgent != "" {
			opts = append(opts, rod.WithUserAgent(cfg.Fetch.UserAgent))
		}
		return rod.NewFetcher(opts...)
	}

	opts := []edhttp.Option{edhttp.WithTimeout(cfg.Fetch.Timeout)}
	if cfg.Fetch.UserAgent != "" {
		opts = append(opts, edhttp.WithUserAgent(cfg.Fetch.UserAgent))
	}
	return edhttp.NewFetcher(opts...), nil
}

// newExtractor creates the configured extraction engine.
func newExtractor(cfg *config.Config) edscrape.Extractor {
	filter := edgoquery.NewContentFilter()
	filter.Denylist = append(filter.Denylist, cfg.Extract.Denylist...)
	filter.SiteDomain = cfg.SiteDomainEnabled()
	heuristic := edgoquery.NewExtractor(edgoquery.WithContentFilter(filter))

	switch cfg.Extract.Engine {
	case config.EngineReadability:
		return readability.NewExtractor(readability.WithHeuristic(heuristic))
	case config.EngineTrafilatura:
		return trafilatura.NewExtractor(trafilatura.WithHeuristic(heuristic))
	default:
		return heuristic
	}
}

// newSource builds the discovery chain: feeds, story feed, sitemap and
// finally the section page. The first source yielding URLs wins.
func newSource(cfg *config.Config, fetcher edscrape.Fetcher, logger *slog.Logger) *crawl.CompositeSource {
	filter := edscrape.NewSectionFilter(cfg.Section.Segment)
	client := &http.Client{Timeout: cfg.Fetch.Timeout}

	var sources []crawl.NamedSource
	add := func(name string, src edscrape.URLSource) {
		sources = append(sources, crawl.NamedSource{
			Name:   name,
			Source: edslog.NewLoggingSource(name, src, logger),
		})
	}

	for _, feedURL := range cfg.Sources.Feeds {
		opts := []gofeed.Option{gofeed.WithClient(client)}
		if cfg.Fetch.UserAgent != "" {
			opts = append(opts, gofeed.WithUserAgent(cfg.Fetch.UserAgent))
		}
		src, err := gofeed.NewFeedSource(feedURL, opts...)
		if err != nil {
			logger.Warn("skipping feed", "url", feedURL, "err", err)
			continue
		}
		add("feed "+feedURL, src)
	}

	if sf := cfg.Sources.StoryFeed; sf.Endpoint != "" {
		opts := []edhttp.StoryFeedOption{edhttp.WithStoryFeedClient(client)}
		if sf.Size > 0 {
			opts = append(opts, edhttp.WithStoryFeedSize(sf.Size))
		}
		src, err := edhttp.NewStoryFeedSource(sf.Endpoint, strings.TrimSuffix(cfg.Section.Segment, "/"), opts...)
		if err != nil {
			logger.Warn("skipping story feed", "url", sf.Endpoint, "err", err)
		} else {
			add("story feed", src)
		}
	}

	if cfg.Sources.Sitemap != "" {
		add("sitemap", edhttp.NewSitemapSource(cfg.Section.URL,
			edhttp.WithSitemapClient(client),
			edhttp.WithSitemapURL(cfg.Sources.Sitemap)))
	}

	if cfg.Section.URL != "" {
		add("section page", &crawl.PageSource{
			Fetcher: fetcher,
			Links:   edgoquery.NewLinkExtractor(),
			URL:     cfg.Section.URL,
		})
	}

	return &crawl.CompositeSource{
		Sources: sources,
		Filter:  filter,
		OnError: func(name string, err error) {
			logger.Warn("discovery source failed", "source", name, "err", err)
		},
	}
}

// newRunner wires the batch driver. When an article index is available,
// articles are recorded in it alongside the markdown files and stored URLs
// are skipped.
func newRunner(cfg *config.Config, fetcher edscrape.Fetcher, articles edscrape.ArticleService, logger *slog.Logger) *crawl.Runner {
	labels := fs.KoreanLabels
	if cfg.Output.Labels == config.LabelsEnglish {
		labels = fs.DefaultLabels
	}

	var writer edscrape.ArticleWriter = fs.NewWriter(cfg.Output.Dir, fs.WithLabels(labels))
	var index edscrape.ArticleIndex
	if articles != nil {
		writer = edscrape.MultiWriter{writer, articles}
		index = articles
	}

	policy := crawl.PolicyLenient
	if cfg.Extract.Strict {
		policy = crawl.PolicyStrict
	}

	return &crawl.Runner{
		Fetcher:     fetcher,
		Extractor:   edslog.NewLoggingExtractor(newExtractor(cfg), logger),
		Writer:      edslog.NewLoggingWriter(writer, logger),
		Index:       index,
		Limiter:     crawl.NewDomainLimiter(cfg.Fetch.Delay),
		Concurrency: cfg.Fetch.Concurrency,
		Policy:      policy,
	}
}
