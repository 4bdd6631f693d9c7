package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatResult renders the tallies of a run as a one-line summary.
func FormatResult(r *Result) string {
	s := fmt.Sprintf("%d succeeded, %d failed", r.Succeeded, r.Failed)
	if r.Partial > 0 {
		s += fmt.Sprintf(", %d without content", r.Partial)
	}
	if r.Skipped > 0 {
		s += fmt.Sprintf(", %d already stored", r.Skipped)
	}
	return s
}
