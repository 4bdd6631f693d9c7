// Package fs stores articles as markdown files in a directory.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/edscrape"
)

// Labels are the field captions used in the rendered markdown.
type Labels struct {
	Date   string
	Author string
	Source string

	// NoContent is rendered in place of the body when an article has no
	// paragraphs. Empty means no placeholder.
	NoContent string
}

// DefaultLabels renders English captions.
var DefaultLabels = Labels{
	Date:      "Date",
	Author:    "Author",
	Source:    "Source",
	NoContent: "*The article body could not be extracted.*",
}

// KoreanLabels renders Korean captions.
var KoreanLabels = Labels{
	Date:      "날짜",
	Author:    "저자",
	Source:    "출처",
	NoContent: "*본문 내용을 추출할 수 없습니다.*",
}

// untitled is the file name used when a title sanitizes to nothing.
const untitled = "untitled"

// FormatArticle renders an article as markdown: a heading, the optional
// date and author lines, the source link, a rule and the paragraphs.
func FormatArticle(a *edscrape.Article, labels Labels) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	if a.PublishedAt != "" {
		fmt.Fprintf(&b, "**%s:** %s\n\n", labels.Date, a.PublishedAt)
	}
	if a.Author != "" {
		fmt.Fprintf(&b, "**%s:** %s\n\n", labels.Author, a.Author)
	}
	fmt.Fprintf(&b, "**%s:** [%s](%s)\n\n", labels.Source, a.SourceURL, a.SourceURL)
	b.WriteString("---\n\n")

	if len(a.Paragraphs) == 0 && labels.NoContent != "" {
		b.WriteString(labels.NoContent)
		b.WriteString("\n\n")
	}
	for _, p := range a.Paragraphs {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Filename returns the file name an article is stored under.
func Filename(a *edscrape.Article) string {
	name := edscrape.SanitizeFilename(a.Title)
	if name == "" {
		name = untitled
	}
	return name + ".md"
}

// Ensure Writer implements edscrape.ArticleWriter at compile time.
var _ edscrape.ArticleWriter = (*Writer)(nil)

// Writer writes articles as markdown files to a directory. An article
// replaces an existing file with the same name.
type Writer struct {
	dir    string
	labels Labels
}

// Option configures a Writer.
type Option func(*Writer)

// WithLabels sets the field captions.
// Defaults to DefaultLabels if not specified.
func WithLabels(l Labels) Option {
	return func(w *Writer) {
		w.labels = l
	}
}

// NewWriter creates a new Writer that writes to dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{
		dir:    dir,
		labels: DefaultLabels,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteArticle writes the article to <dir>/<sanitized title>.md.
// The file is written to a temporary name first and renamed into place so
// readers never observe a partial file.
func (w *Writer) WriteArticle(ctx context.Context, a *edscrape.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(w.dir, Filename(a))

	tmp, err := os.CreateTemp(w.dir, ".edscrape-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(FormatArticle(a, w.labels)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("moving %s into place: %w", path, err)
	}
	return nil
}
