package registry

import (
	"strings"

	"github.com/goliatone/go-docskit/internal/mdx"
	"github.com/goliatone/go-docskit/internal/openapi"
	"github.com/goliatone/go-docskit/internal/search"
)

// GetParsedDoc returns the document built for path, or ErrNotFound.
func (r *Registry) GetParsedDoc(path string) (*mdx.Document, error) {
	if doc, ok := r.docs[path]; ok {
		return doc, nil
	}
	return nil, ErrNotFound
}

// GetAPIOperation resolves a path of the form <prefix>/<operation-slug>.
// The operation wins even when a document exists at the same path; API and
// document address spaces may overlap under a configured prefix.
func (r *Registry) GetAPIOperation(path string) (*openapi.Operation, error) {
	for _, entry := range r.specs {
		slug, ok := strings.CutPrefix(path, entry.prefix+"/")
		if !ok {
			continue
		}
		if op, ok := entry.ops[slug]; ok {
			return op, nil
		}
	}
	return nil, ErrNotFound
}

// GetAPISpec returns the normalized spec bound to prefix.
func (r *Registry) GetAPISpec(prefix string) (*openapi.Spec, error) {
	for _, entry := range r.specs {
		if entry.prefix == prefix {
			return entry.spec, nil
		}
	}
	return nil, ErrNotFound
}

// Resolve looks a path up across both address spaces, operations first.
func (r *Registry) Resolve(path string) (*openapi.Operation, *mdx.Document, error) {
	if op, err := r.GetAPIOperation(path); err == nil {
		return op, nil, nil
	}
	if doc, err := r.GetParsedDoc(path); err == nil {
		return nil, doc, nil
	}
	return nil, nil, ErrNotFound
}

// TabForPath returns the title of the nav tab owning path. Paths under an
// API prefix belong to the tab that lists the prefix as a page.
func (r *Registry) TabForPath(path string) (string, error) {
	for _, tab := range r.nav.Tabs {
		for _, group := range tab.Groups {
			for _, page := range group.Pages {
				if page == path || strings.HasPrefix(path, page+"/") {
					return tab.Title, nil
				}
			}
		}
	}
	return "", ErrNotFound
}

// SidebarTitle returns the short label for a path: an operation's title for
// API paths, otherwise the document's sidebarTitle, then title, then the
// final path segment.
func (r *Registry) SidebarTitle(path string) string {
	if op, err := r.GetAPIOperation(path); err == nil {
		return op.Title()
	}
	if doc, err := r.GetParsedDoc(path); err == nil {
		if doc.Frontmatter.SidebarTitle != "" {
			return doc.Frontmatter.SidebarTitle
		}
		if doc.Frontmatter.Title != "" {
			return doc.Frontmatter.Title
		}
	}
	return finalSegment(path)
}

// DefaultPath is the configured landing path, falling back to the first nav
// page.
func (r *Registry) DefaultPath() string {
	if r.defaultPath != "" {
		return r.defaultPath
	}
	for _, tab := range r.nav.Tabs {
		for _, group := range tab.Groups {
			if len(group.Pages) > 0 {
				return group.Pages[0]
			}
		}
	}
	return ""
}

// SearchDocs runs a ranked query over the document index. Operations are
// reached through the sidebar, not search.
func (r *Registry) SearchDocs(query string) []search.Result {
	return r.index.Query(query)
}

// Paths lists document paths in nav order.
func (r *Registry) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// SpecErrors reports OpenAPI sources that failed to parse during Build.
func (r *Registry) SpecErrors() []SpecError {
	out := make([]SpecError, len(r.specErrs))
	copy(out, r.specErrs)
	return out
}

// Site returns the site metadata the registry was built with.
func (r *Registry) Site() Site {
	return r.site
}
