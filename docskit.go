// Package docskit converts documentation sources, an MDX-like markup dialect
// plus OpenAPI specifications, into one immutable registry powering a docs
// site: sidebar, page lookup, ranked search and llms.txt export.
package docskit

import (
	"github.com/goliatone/go-docskit/internal/logging"
	"github.com/goliatone/go-docskit/internal/mdx"
	"github.com/goliatone/go-docskit/internal/openapi"
	"github.com/goliatone/go-docskit/internal/registry"
	"github.com/goliatone/go-docskit/internal/search"
)

// Logger exports the structured logging contract consumers may implement.
type Logger = logging.Logger

// Document exports the parsed markup document.
type Document = mdx.Document

// Frontmatter exports document metadata.
type Frontmatter = mdx.Frontmatter

// Diagnostic exports the non-fatal parse diagnostic attached to documents.
type Diagnostic = mdx.Diagnostic

// Node exports the markup AST node variant.
type Node = mdx.Node

// Heading, Paragraph, CodeBlock, List and ComponentTag export the block
// variants; Inline, Text, Emphasis, Code and Link the inline ones.
type (
	Heading      = mdx.Heading
	Paragraph    = mdx.Paragraph
	CodeBlock    = mdx.CodeBlock
	List         = mdx.List
	ListItem     = mdx.ListItem
	ComponentTag = mdx.ComponentTag
	Inline       = mdx.Inline
	Text         = mdx.Text
	Emphasis     = mdx.Emphasis
	Code         = mdx.Code
	Link         = mdx.Link
)

// APISpec exports the normalized OpenAPI document.
type APISpec = openapi.Spec

// Operation exports one normalized method+path entry.
type Operation = openapi.Operation

// SearchResult exports one ranked search hit.
type SearchResult = search.Result

// Registry exports the immutable build output and its query surface.
type Registry = registry.Registry

// Site, NavConfig, NavTab, NavGroup and SpecSource export the build inputs.
type (
	Site       = registry.Site
	NavConfig  = registry.NavConfig
	NavTab     = registry.NavTab
	NavGroup   = registry.NavGroup
	SpecSource = registry.SpecSource
)

// SidebarTab, SidebarGroup and SidebarEntry export the resolved sidebar.
type (
	SidebarTab   = registry.SidebarTab
	SidebarGroup = registry.SidebarGroup
	SidebarEntry = registry.SidebarEntry
)

// BuildError and SpecError export the registry error types; ErrNotFound is
// returned by lookups that miss.
type (
	BuildError = registry.BuildError
	SpecError  = registry.SpecError
)

var ErrNotFound = registry.ErrNotFound

// ParseDocument parses markup text on its own, outside a registry build.
// It never fails; malformed input degrades with diagnostics.
func ParseDocument(text string) *Document {
	return mdx.Parse(text)
}

// ParseAPISpec normalizes OpenAPI text on its own.
func ParseAPISpec(text string) (*APISpec, error) {
	return openapi.Parse(text)
}

// RenderText flattens AST nodes to deterministic plain text.
func RenderText(nodes []Node) string {
	return mdx.RenderText(nodes)
}

// Build validates the configuration and runs the single build pass. The
// returned registry is immutable and safe for concurrent reads.
func Build(cfg Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, wrapConfigError(err)
	}

	logger, err := cfg.logger()
	if err != nil {
		return nil, wrapConfigError(err)
	}

	params := cfg.params()
	params.Logger = logger

	reg, err := registry.Build(params)
	if err != nil {
		return nil, wrapBuildError(err)
	}
	return reg, nil
}
