package registry

import (
	"strings"

	"github.com/goliatone/go-docskit/internal/mdx"
)

// GenerateLlmsTxt renders the llms.txt listing: site header then one line
// per document in nav order. Deterministic for identical build input.
func (r *Registry) GenerateLlmsTxt() string {
	var b strings.Builder
	r.writeLlmsHeader(&b)

	for _, path := range r.paths {
		doc := r.docs[path]
		b.WriteString("- [")
		b.WriteString(doc.Frontmatter.Title)
		b.WriteString("](")
		b.WriteString(r.docURL(path))
		b.WriteString(")")
		if desc := doc.Frontmatter.Description; desc != "" {
			b.WriteString(": ")
			b.WriteString(desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// GenerateLlmsFullTxt renders the full-corpus export: the llms.txt header
// then one plain-text block per document, separated by page markers.
func (r *Registry) GenerateLlmsFullTxt() string {
	var b strings.Builder
	r.writeLlmsHeader(&b)

	for _, path := range r.paths {
		doc := r.docs[path]
		b.WriteString("---\n\n## [")
		b.WriteString(doc.Frontmatter.Title)
		b.WriteString("](")
		b.WriteString(r.docURL(path))
		b.WriteString(")\n\n")
		if body := mdx.RenderText(doc.Body); body != "" {
			b.WriteString(body)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (r *Registry) writeLlmsHeader(b *strings.Builder) {
	b.WriteString("# ")
	b.WriteString(r.site.Title)
	b.WriteString("\n\n")
	if r.site.Description != "" {
		b.WriteString("> ")
		b.WriteString(r.site.Description)
		b.WriteString("\n\n")
	}
}

func (r *Registry) docURL(path string) string {
	base := strings.TrimRight(r.site.BaseURL, "/")
	return base + "/docs/" + path
}
