package edscrape

import (
	"strings"
	"unicode"
)

// MaxFilenameLength is the maximum length, in characters, of a sanitized filename.
const MaxFilenameLength = 100

// SanitizeFilename derives a file-safe name from an article title.
// It removes the characters < > : " / \ | ? *, replaces every run of
// whitespace with a single underscore and truncates the result to
// MaxFilenameLength characters. The result may be empty.
func SanitizeFilename(title string) string {
	var b strings.Builder
	inSpace := false
	n := 0
	for _, r := range title {
		if n >= MaxFilenameLength {
			break
		}
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r):
			continue
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteRune('_')
				n++
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
		n++
	}
	return b.String()
}
