// Package config loads edscrape settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/edscrape"
	"gopkg.in/yaml.v3"
)

// Loaders.
const (
	LoaderHTTP    = "http"
	LoaderBrowser = "browser"
)

// Extraction engines.
const (
	EngineHeuristic   = "heuristic"
	EngineReadability = "readability"
	EngineTrafilatura = "trafilatura"
)

// MinDelay is the smallest accepted interval between request starts to
// one host. Lower values get the scraper rate limited by news sites.
const MinDelay = time.Second

// Label sets.
const (
	LabelsEnglish = "english"
	LabelsKorean  = "korean"
)

// Config holds all settings. Zero values are replaced by Default values
// when a file is loaded.
type Config struct {
	Section SectionConfig `yaml:"section"`
	Sources SourcesConfig `yaml:"sources"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Extract ExtractConfig `yaml:"extract"`
	Output  OutputConfig  `yaml:"output"`
}

// SectionConfig identifies the editorial section to scrape.
type SectionConfig struct {
	// URL of the section front page.
	URL string `yaml:"url"`
	// Segment is the path segment article URLs must contain.
	Segment string `yaml:"segment"`
}

// SourcesConfig lists the link discovery sources tried in order: feeds,
// story feed, sitemap, then the section page itself.
type SourcesConfig struct {
	Feeds     []string        `yaml:"feeds"`
	StoryFeed StoryFeedConfig `yaml:"story_feed"`
	Sitemap   string          `yaml:"sitemap"`
}

// StoryFeedConfig configures the JSON story-feed API.
type StoryFeedConfig struct {
	Endpoint string `yaml:"endpoint"`
	Size     int    `yaml:"size"`
}

// FetchConfig configures page loading.
type FetchConfig struct {
	Loader      string        `yaml:"loader"`
	Delay       time.Duration `yaml:"delay"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	RenderDelay time.Duration `yaml:"render_delay"`

	// Browser loader only. MaxPages of zero keeps one browser for the run.
	BrowserBin string `yaml:"browser_bin"`
	MaxPages   int64  `yaml:"max_pages"`
}

// ExtractConfig configures article extraction.
type ExtractConfig struct {
	Engine   string   `yaml:"engine"`
	Strict   bool     `yaml:"strict"`
	Denylist []string `yaml:"denylist"`
	// SiteDomain adds the page host to the denylist. Nil means true.
	SiteDomain *bool `yaml:"site_domain"`
}

// OutputConfig configures persistence.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// DB is the SQLite index path. Empty disables the index.
	DB     string `yaml:"db"`
	Labels string `yaml:"labels"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Section: SectionConfig{
			URL:     "https://www.chosun.com/opinion/editorial/",
			Segment: "/opinion/editorial/",
		},
		Sources: SourcesConfig{
			Feeds: []string{"https://www.chosun.com/arc/outboundfeeds/rss/?outputType=xml&size=100"},
			StoryFeed: StoryFeedConfig{
				Endpoint: "https://www.chosun.com/pf/api/v3/content/fetch/story-feed",
				Size:     20,
			},
		},
		Fetch: FetchConfig{
			Loader:      LoaderHTTP,
			Delay:       2 * time.Second,
			Concurrency: 1,
			Timeout:     30 * time.Second,
			RenderDelay: 3 * time.Second,
			MaxPages:    75,
		},
		Extract: ExtractConfig{
			Engine: EngineHeuristic,
		},
		Output: OutputConfig{
			Dir:    "articles",
			Labels: LabelsKorean,
		},
	}
}

// DefaultPath returns $EDSCRAPE_CONFIG or ~/.edscrape/config.yaml.
func DefaultPath() string {
	if path := os.Getenv("EDSCRAPE_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "edscrape.yaml"
	}
	return filepath.Join(home, ".edscrape", "config.yaml")
}

// Load reads the file at path over Default values. A missing file is not
// an error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, edscrape.Errorf(edscrape.EINVALID, "failed to parse config file %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SiteDomainEnabled reports whether the page host is added to the denylist.
func (c *Config) SiteDomainEnabled() bool {
	return c.Extract.SiteDomain == nil || *c.Extract.SiteDomain
}

// Validate returns EINVALID describing the first invalid setting.
func (c *Config) Validate() error {
	switch c.Fetch.Loader {
	case LoaderHTTP, LoaderBrowser:
	default:
		return edscrape.Errorf(edscrape.EINVALID, "unknown loader %q (want %s or %s)", c.Fetch.Loader, LoaderHTTP, LoaderBrowser)
	}
	switch c.Extract.Engine {
	case EngineHeuristic, EngineReadability, EngineTrafilatura:
	default:
		return edscrape.Errorf(edscrape.EINVALID, "unknown engine %q", c.Extract.Engine)
	}
	switch c.Output.Labels {
	case LabelsEnglish, LabelsKorean:
	default:
		return edscrape.Errorf(edscrape.EINVALID, "unknown labels %q (want %s or %s)", c.Output.Labels, LabelsEnglish, LabelsKorean)
	}
	if c.Fetch.Concurrency < 1 {
		return edscrape.Errorf(edscrape.EINVALID, "concurrency must be at least 1")
	}
	if c.Fetch.Delay < MinDelay {
		return edscrape.Errorf(edscrape.EINVALID, "delay must be at least %s", MinDelay)
	}
	if c.Fetch.Timeout <= 0 {
		return edscrape.Errorf(edscrape.EINVALID, "timeout must be positive")
	}
	if c.Fetch.RenderDelay < 0 {
		return edscrape.Errorf(edscrape.EINVALID, "render delay must not be negative")
	}
	if c.Fetch.MaxPages < 0 {
		return edscrape.Errorf(edscrape.EINVALID, "max pages must not be negative")
	}
	if c.Sources.StoryFeed.Size < 0 {
		return edscrape.Errorf(edscrape.EINVALID, "story feed size must not be negative")
	}
	if c.Output.Dir == "" {
		return edscrape.Errorf(edscrape.EINVALID, "output directory required")
	}
	return nil
}
