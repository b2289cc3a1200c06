// Package openapi normalizes OpenAPI 3.x specification text into flat
// operation records suitable for sidebar grouping and per-operation pages.
package openapi

import (
	"sort"
	"strings"
)

// Method is an uppercase HTTP method name.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// methodOrder fixes the per-path emission order of operations.
var methodOrder = []Method{
	MethodGet, MethodPost, MethodPut, MethodDelete,
	MethodPatch, MethodHead, MethodOptions,
}

// Spec is a fully normalized OpenAPI document. Built once, immutable after.
type Spec struct {
	Info       Info
	Servers    []Server
	Tags       []Tag
	Operations []Operation
	Schemas    map[string]*Schema
}

// Info captures the spec's top-level metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Server is one entry of the spec's server list.
type Server struct {
	URL         string
	Description string
}

// Tag groups operations in the sidebar.
type Tag struct {
	Name        string
	Description string
}

// Operation is one method+path entry, keyed by Slug.
type Operation struct {
	ID          string
	Slug        string
	Method      Method
	Path        string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  []Parameter
	RequestBody *RequestBody
	Responses   map[string]Response
}

// Title returns the display name for the operation: the summary when
// present, otherwise the slug with hyphens spaced out.
func (o *Operation) Title() string {
	if o.Summary != "" {
		return o.Summary
	}
	return strings.ReplaceAll(o.Slug, "-", " ")
}

// ResponseCodes returns the response keys in deterministic order: numeric
// codes ascending, then "default" and any other named buckets.
func (o *Operation) ResponseCodes() []string {
	codes := make([]string, 0, len(o.Responses))
	for code := range o.Responses {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		ni, nj := isNumeric(codes[i]), isNumeric(codes[j])
		if ni != nj {
			return ni
		}
		return codes[i] < codes[j]
	})
	return codes
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Parameter is a normalized path/query/header/cookie parameter.
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	Deprecated  bool
	Schema      *Schema
}

// RequestBody describes an operation's request payload.
type RequestBody struct {
	Description string
	Required    bool
	Content     []MediaType
}

// MediaType binds a schema to a media type string.
type MediaType struct {
	MediaType string
	Schema    *Schema
}

// Response is one status-code bucket of an operation.
type Response struct {
	Description string
	Content     []MediaType
}

// Schema is a simplified, pre-resolved schema tree. Unknown is set when a
// reference could not be resolved or resolution was cut off by the cycle
// guard; Ref then still carries the reference name for display.
type Schema struct {
	Type                 string
	Format               string
	Description          string
	Ref                  string
	Unknown              bool
	Nullable             bool
	Enum                 []string
	Items                *Schema
	Properties           map[string]*Schema
	Required             []string
	AdditionalProperties *Schema
	OneOf                []*Schema
	AnyOf                []*Schema
	AllOf                []*Schema
}

// DisplayType renders a short human-readable type label.
func (s *Schema) DisplayType() string {
	if s == nil {
		return "any"
	}
	if s.Ref != "" {
		return s.Ref
	}
	switch s.Type {
	case "array":
		if s.Items != nil {
			return "array<" + s.Items.DisplayType() + ">"
		}
		return "array"
	case "":
		return "any"
	default:
		if s.Format != "" {
			return s.Type + " (" + s.Format + ")"
		}
		return s.Type
	}
}
