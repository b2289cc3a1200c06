// Package registry reconciles parsed documents and normalized API operations
// into one immutable, path-addressable content model: sidebar, page lookup,
// full-text search and llms.txt export all read from the same build output.
package registry

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-docskit/internal/logging"
	"github.com/goliatone/go-docskit/internal/mdx"
	"github.com/goliatone/go-docskit/internal/openapi"
	"github.com/goliatone/go-docskit/internal/search"
)

// Site describes the documentation site for exports.
type Site struct {
	Title       string
	Description string
	BaseURL     string
}

// NavConfig is the ordered navigation tree: tabs hold groups, groups hold
// content paths. Paths must exist in the content map; a path may also name an
// API prefix, which expands into that spec's operations in the sidebar.
type NavConfig struct {
	Tabs []NavTab
}

// NavTab is one top-level navigation tab.
type NavTab struct {
	Title  string
	Groups []NavGroup
}

// NavGroup is an ordered list of content paths under a tab.
type NavGroup struct {
	Title string
	Pages []string
}

// SpecSource binds one OpenAPI document text to a sidebar path prefix.
type SpecSource struct {
	Prefix string
	Text   string
}

// Params carries everything Build needs. All inputs are pre-loaded text; the
// registry performs no I/O.
type Params struct {
	Site        Site
	Nav         NavConfig
	Content     map[string]string
	Specs       []SpecSource
	DefaultPath string
	Logger      logging.Logger
}

// Validate reports malformed nav structure as a field-keyed error map.
func (n NavConfig) Validate() error {
	errs := validation.Errors{}
	if len(n.Tabs) == 0 {
		errs["tabs"] = validation.NewError("validation_required", "at least one tab is required")
	}
	for i, tab := range n.Tabs {
		key := fmt.Sprintf("tabs.%d", i)
		if strings.TrimSpace(tab.Title) == "" {
			errs[key+".title"] = validation.NewError("validation_required", "tab title cannot be blank")
		}
		if len(tab.Groups) == 0 {
			errs[key+".groups"] = validation.NewError("validation_required", "tab has no groups")
		}
		for j, group := range tab.Groups {
			gkey := fmt.Sprintf("%s.groups.%d", key, j)
			if strings.TrimSpace(group.Title) == "" {
				errs[gkey+".title"] = validation.NewError("validation_required", "group title cannot be blank")
			}
			if len(group.Pages) == 0 {
				errs[gkey+".pages"] = validation.NewError("validation_required", "group has no pages")
			}
			for k, page := range group.Pages {
				if strings.TrimSpace(page) == "" {
					errs[fmt.Sprintf("%s.pages.%d", gkey, k)] = validation.NewError("validation_required", "page path cannot be blank")
				}
			}
		}
	}
	return errs.Filter()
}

func (s SpecSource) validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(s.Prefix) == "" {
		errs["prefix"] = validation.NewError("validation_required", "spec prefix cannot be blank")
	}
	return errs.Filter()
}

type specEntry struct {
	prefix string
	spec   *openapi.Spec
	ops    map[string]*openapi.Operation
}

// Registry is the immutable build output. Built once, read concurrently.
type Registry struct {
	site        Site
	nav         NavConfig
	docs        map[string]*mdx.Document
	paths       []string
	specs       []*specEntry
	specErrs    []SpecError
	index       *search.Index
	defaultPath string
}

// Build runs the single build pass: validate nav, parse every referenced
// document, normalize each OpenAPI source, index documents for search. A nav
// path missing from the content map is fatal; a bad OpenAPI source is
// recorded in SpecErrors and skipped.
func Build(p Params) (*Registry, error) {
	log := p.Logger
	if log == nil {
		log = logging.NoOp()
	}
	log = logging.ModuleLogger(log, "registry")

	if err := p.Nav.Validate(); err != nil {
		return nil, &BuildError{Reason: "invalid nav config", Err: err}
	}

	r := &Registry{
		site:        p.Site,
		nav:         p.Nav,
		docs:        map[string]*mdx.Document{},
		defaultPath: p.DefaultPath,
	}

	prefixes := map[string]bool{}
	for _, src := range p.Specs {
		if err := src.validate(); err != nil {
			return nil, &BuildError{Reason: "invalid spec source", Err: err}
		}
		prefixes[src.Prefix] = true
	}

	for _, tab := range p.Nav.Tabs {
		for _, group := range tab.Groups {
			for _, path := range group.Pages {
				if _, dup := r.docs[path]; dup {
					continue
				}
				text, ok := p.Content[path]
				if !ok {
					// A page naming a spec prefix expands into operations
					// instead of document content.
					if prefixes[path] {
						continue
					}
					return nil, &BuildError{Path: path, Reason: "nav references unknown content path"}
				}

				doc := mdx.Parse(text)
				doc.Path = path
				if doc.Frontmatter.Title == "" {
					doc.Frontmatter.Title = finalSegment(path)
				}
				if len(doc.Diagnostics) > 0 {
					log.Warn("document parsed with diagnostics",
						"path", path, "diagnostics", len(doc.Diagnostics))
				} else {
					log.Debug("document parsed", "path", path)
				}

				r.docs[path] = doc
				r.paths = append(r.paths, path)
			}
		}
	}

	for _, src := range p.Specs {
		spec, err := openapi.Parse(src.Text)
		if err != nil {
			log.Error("openapi source skipped", "prefix", src.Prefix, "error", err)
			r.specErrs = append(r.specErrs, SpecError{Prefix: src.Prefix, Err: err})
			continue
		}
		entry := &specEntry{
			prefix: src.Prefix,
			spec:   spec,
			ops:    make(map[string]*openapi.Operation, len(spec.Operations)),
		}
		for i := range spec.Operations {
			op := &spec.Operations[i]
			entry.ops[op.Slug] = op
		}
		log.Debug("openapi source normalized",
			"prefix", src.Prefix, "operations", len(spec.Operations))
		r.specs = append(r.specs, entry)
	}

	sources := make([]search.Source, 0, len(r.paths))
	for _, path := range r.paths {
		doc := r.docs[path]
		sources = append(sources, search.Source{
			Path:  path,
			Title: doc.Frontmatter.Title,
			Body:  doc.Body,
		})
	}
	r.index = search.Build(sources)

	log.Info("registry built",
		"documents", len(r.paths), "specs", len(r.specs), "spec_errors", len(r.specErrs))
	return r, nil
}

func finalSegment(path string) string {
	path = strings.Trim(path, "/")
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
