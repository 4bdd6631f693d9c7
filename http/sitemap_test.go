package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/edscrape"
	edhttp "github.com/fwojciec/edscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// urlset renders a sitemap listing the given paths under {{BASE}}.
func urlset(paths ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, p := range paths {
		b.WriteString("  <url><loc>{{BASE}}" + p + "</loc></url>\n")
	}
	b.WriteString("</urlset>")
	return b.String()
}

// sitemapIndex renders a sitemap index pointing at the given paths.
func sitemapIndex(paths ...string) string {
	var b strings.Builder
	b.WriteString(`<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, p := range paths {
		b.WriteString("<sitemap><loc>{{BASE}}" + p + "</loc></sitemap>")
	}
	b.WriteString("</sitemapindex>")
	return b.String()
}

// sitemapServer serves files by path. Bodies may reference the server
// URL as {{BASE}}.
func sitemapServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, ".txt") {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSitemapSource_Discover(t *testing.T) {
	t.Parallel()

	const (
		first  = "/opinion/editorial/2025/01/05/first/"
		second = "/opinion/editorial/2025/01/04/second/"
		column = "/opinion/column/2025/01/03/third/"
		sports = "/sports/2025/01/05/match/"
	)

	tests := []struct {
		name   string
		files  map[string]string
		base   string
		filter *edscrape.URLFilter
		want   []string
	}{
		{
			name: "reads sitemaps named in robots.txt",
			files: map[string]string{
				"/robots.txt":  "User-agent: *\nDisallow: /private/\nsitemap: {{BASE}}/a.xml\nSitemap: {{BASE}}/b.xml\n",
				"/a.xml":       urlset(first),
				"/b.xml":       urlset(second),
				"/sitemap.xml": urlset(sports),
			},
			want: []string{first, second},
		},
		{
			name:  "falls back to sitemap.xml",
			files: map[string]string{"/sitemap.xml": urlset(first, second)},
			want:  []string{first, second},
		},
		{
			name: "follows sitemap indexes",
			files: map[string]string{
				"/sitemap.xml":   sitemapIndex("/editorial.xml", "/column.xml", "/editorial.xml"),
				"/editorial.xml": urlset(first),
				"/column.xml":    urlset(column, first),
			},
			want: []string{first, column},
		},
		{
			name:  "limits to the base path",
			files: map[string]string{"/sitemap.xml": urlset(first, "/opinions/2025/01/05/other/", sports)},
			base:  "/opinion",
			want:  []string{first},
		},
		{
			name:   "applies include filter",
			files:  map[string]string{"/sitemap.xml": urlset(first, sports, second)},
			filter: &edscrape.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/opinion/editorial/`)}},
			want:   []string{first, second},
		},
		{
			name:   "applies exclude filter",
			files:  map[string]string{"/sitemap.xml": urlset(first, "/opinion/editorial/internal/debug", second)},
			filter: &edscrape.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile(`/internal/`)}},
			want:   []string{first, second},
		},
		{
			name:  "returns empty when the site has no sitemap",
			files: map[string]string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := sitemapServer(t, tt.files)
			opts := []edhttp.SitemapOption{edhttp.WithSitemapClient(srv.Client())}
			if tt.filter != nil {
				opts = append(opts, edhttp.WithSitemapFilter(tt.filter))
			}

			urls, err := edhttp.NewSitemapSource(srv.URL+tt.base, opts...).Discover(context.Background())

			require.NoError(t, err)
			want := make([]string, 0, len(tt.want))
			for _, p := range tt.want {
				want = append(want, srv.URL+p)
			}
			assert.Equal(t, want, urls)
		})
	}
}

func TestSitemapSource_Discover_NewsSitemap(t *testing.T) {
	t.Parallel()

	srv := sitemapServer(t, map[string]string{
		"/news.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"
        xmlns:news="http://www.google.com/schemas/sitemap-news/0.9">
  <url>
    <loc>{{BASE}}/opinion/editorial/2025/01/05/first/</loc>
    <news:news><news:title>[사설] 첫 번째</news:title></news:news>
  </url>
  <url><loc>{{BASE}}/opinion/editorial/2025/01/05/first/</loc></url>
  <url><loc>{{BASE}}/national/2025/01/05/other/</loc></url>
</urlset>`,
	})

	src := edhttp.NewSitemapSource(srv.URL,
		edhttp.WithSitemapClient(srv.Client()),
		edhttp.WithSitemapURL(srv.URL+"/news.xml"),
		edhttp.WithSitemapFilter(edscrape.NewSectionFilter("/opinion/editorial/")),
	)
	urls, err := src.Discover(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/opinion/editorial/2025/01/05/first/"}, urls)
}

func TestSitemapSource_Discover_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing explicit sitemap is a fetch error", func(t *testing.T) {
		t.Parallel()

		srv := sitemapServer(t, map[string]string{})
		src := edhttp.NewSitemapSource(srv.URL,
			edhttp.WithSitemapClient(srv.Client()),
			edhttp.WithSitemapURL(srv.URL+"/missing.xml"),
		)

		_, err := src.Discover(context.Background())

		assert.Equal(t, edscrape.EFETCH, edscrape.ErrorCode(err))
	})

	t.Run("broken XML is malformed", func(t *testing.T) {
		t.Parallel()

		srv := sitemapServer(t, map[string]string{"/sitemap.xml": "<?xml version=\"1.0\"?>\n<<urlset>"})
		src := edhttp.NewSitemapSource(srv.URL, edhttp.WithSitemapClient(srv.Client()))

		_, err := src.Discover(context.Background())

		assert.Equal(t, edscrape.EMALFORMED, edscrape.ErrorCode(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		srv := sitemapServer(t, map[string]string{"/sitemap.xml": urlset("/a")})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := edhttp.NewSitemapSource(srv.URL, edhttp.WithSitemapClient(srv.Client())).Discover(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
