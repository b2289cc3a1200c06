package mdx

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
)

// slugger assigns document-unique heading ids. The first occurrence of a
// heading keeps the base slug; later duplicates get a -2, -3, ... suffix in
// document order. If a suffixed form is itself taken the counter keeps
// advancing until a free id is found.
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: map[string]int{}}
}

func (s *slugger) assign(text string) string {
	base := headingSlug(text)
	count, ok := s.seen[base]
	if !ok {
		s.seen[base] = 1
		return base
	}

	for {
		count++
		candidate := fmt.Sprintf("%s-%d", base, count)
		if _, taken := s.seen[candidate]; !taken {
			s.seen[base] = count
			s.seen[candidate] = 1
			return candidate
		}
	}
}

// headingSlug normalizes heading text into a URL-safe id: lowercase,
// non-alphanumeric runs collapse to single hyphens, leading and trailing
// hyphens trimmed.
func headingSlug(text string) string {
	if normalized, err := slug.Normalize(text); err == nil && normalized != "" {
		return normalized
	}
	return fallbackSlug(text)
}

func fallbackSlug(text string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "section"
	}
	return out
}
