package openapi

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
)

// OperationSlug turns an operationId into a kebab-case URL segment.
// camelCase and underscore boundaries become hyphens; consecutive
// separators collapse.
func OperationSlug(id string) string {
	var b strings.Builder
	b.Grow(len(id) + 4)
	for i, r := range id {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '_' || r == ' ' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(r)
	}

	collapsed := collapseHyphens(b.String())
	if normalized, err := slug.Normalize(collapsed); err == nil && normalized != "" {
		return normalized
	}
	return collapsed
}

func collapseHyphens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := true
	for _, r := range s {
		if r == '-' {
			if !prevHyphen {
				b.WriteByte('-')
			}
			prevHyphen = true
			continue
		}
		b.WriteRune(r)
		prevHyphen = false
	}
	return strings.TrimRight(b.String(), "-")
}
