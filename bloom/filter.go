// Package bloom de-duplicates discovered article URLs with a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate keeps the chance of dropping a distinct URL
// negligible for batches of a few thousand links.
const DefaultFalsePositiveRate = 1e-6

// Seen records URLs and reports repeats.
type Seen struct {
	f *bloom.BloomFilter
}

// NewSeen creates a set sized for n expected URLs with the given false
// positive rate.
func NewSeen(n uint, fpRate float64) *Seen {
	if n == 0 {
		n = 1
	}
	return &Seen{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit records url and reports whether it had already been recorded.
// A false positive reports an unseen URL as seen.
func (s *Seen) Visit(url string) bool {
	return s.f.TestAndAddString(url)
}

// Dedup returns urls without repeats, keeping the first occurrence and the
// original order. The result is never nil.
func Dedup(urls []string) []string {
	out := make([]string, 0, len(urls))
	if len(urls) == 0 {
		return out
	}
	seen := NewSeen(uint(len(urls)), DefaultFalsePositiveRate)
	for _, u := range urls {
		if seen.Visit(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}
