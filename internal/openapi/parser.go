package openapi

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError is returned when a spec cannot be normalized at all. A bad spec
// is fatal for itself only; callers isolate it from the rest of the build.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("openapi: %s: %v", e.Reason, e.Err)
	}
	return "openapi: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// maxRefDepth caps schema reference resolution so cyclic references degrade
// to an unknown-schema marker instead of recursing forever.
const maxRefDepth = 5

type rawDocument struct {
	OpenAPI    string        `yaml:"openapi"`
	Swagger    string        `yaml:"swagger"`
	Info       rawInfo       `yaml:"info"`
	Servers    []rawServer   `yaml:"servers"`
	Tags       []rawTag      `yaml:"tags"`
	Paths      yaml.Node     `yaml:"paths"`
	Components rawComponents `yaml:"components"`
}

type rawInfo struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

type rawServer struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type rawTag struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type rawComponents struct {
	Schemas       map[string]*rawSchema      `yaml:"schemas"`
	Parameters    map[string]*rawParameter   `yaml:"parameters"`
	RequestBodies map[string]*rawRequestBody `yaml:"requestBodies"`
	Responses     map[string]*rawResponse    `yaml:"responses"`
}

type rawPathItem struct {
	Parameters []rawParameter `yaml:"parameters"`
	Get        *rawOperation  `yaml:"get"`
	Post       *rawOperation  `yaml:"post"`
	Put        *rawOperation  `yaml:"put"`
	Delete     *rawOperation  `yaml:"delete"`
	Patch      *rawOperation  `yaml:"patch"`
	Head       *rawOperation  `yaml:"head"`
	Options    *rawOperation  `yaml:"options"`
}

func (p *rawPathItem) operation(m Method) *rawOperation {
	switch m {
	case MethodGet:
		return p.Get
	case MethodPost:
		return p.Post
	case MethodPut:
		return p.Put
	case MethodDelete:
		return p.Delete
	case MethodPatch:
		return p.Patch
	case MethodHead:
		return p.Head
	case MethodOptions:
		return p.Options
	}
	return nil
}

type rawOperation struct {
	OperationID string                 `yaml:"operationId"`
	Summary     string                 `yaml:"summary"`
	Description string                 `yaml:"description"`
	Tags        []string               `yaml:"tags"`
	Deprecated  bool                   `yaml:"deprecated"`
	Parameters  []rawParameter         `yaml:"parameters"`
	RequestBody *rawRequestBody        `yaml:"requestBody"`
	Responses   map[string]rawResponse `yaml:"responses"`
}

type rawParameter struct {
	Ref         string     `yaml:"$ref"`
	Name        string     `yaml:"name"`
	In          string     `yaml:"in"`
	Description string     `yaml:"description"`
	Required    bool       `yaml:"required"`
	Deprecated  bool       `yaml:"deprecated"`
	Schema      *rawSchema `yaml:"schema"`
}

type rawRequestBody struct {
	Ref         string              `yaml:"$ref"`
	Description string              `yaml:"description"`
	Required    bool                `yaml:"required"`
	Content     map[string]rawMedia `yaml:"content"`
}

type rawMedia struct {
	Schema *rawSchema `yaml:"schema"`
}

type rawResponse struct {
	Ref         string              `yaml:"$ref"`
	Description string              `yaml:"description"`
	Content     map[string]rawMedia `yaml:"content"`
}

type rawSchema struct {
	Ref                  string                `yaml:"$ref"`
	Type                 string                `yaml:"type"`
	Format               string                `yaml:"format"`
	Description          string                `yaml:"description"`
	Nullable             bool                  `yaml:"nullable"`
	Enum                 []any                 `yaml:"enum"`
	Items                *rawSchema            `yaml:"items"`
	Properties           map[string]*rawSchema `yaml:"properties"`
	Required             []string              `yaml:"required"`
	AdditionalProperties yaml.Node             `yaml:"additionalProperties"`
	OneOf                []*rawSchema          `yaml:"oneOf"`
	AnyOf                []*rawSchema          `yaml:"anyOf"`
	AllOf                []*rawSchema          `yaml:"allOf"`
}

// Parse normalizes OpenAPI text (YAML or JSON; YAML is a JSON superset so a
// single decoder covers both) into a Spec. It returns a *ParseError when the
// text is not valid structured data or lacks a top-level path map.
func Parse(text string) (*Spec, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Reason: "empty specification"}
	}

	var doc rawDocument
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ParseError{Reason: "invalid YAML/JSON", Err: err}
	}
	if doc.Paths.Kind == 0 {
		return nil, &ParseError{Reason: "missing top-level paths map"}
	}
	if doc.Paths.Kind != yaml.MappingNode {
		return nil, &ParseError{Reason: "paths is not a map"}
	}

	spec := &Spec{
		Info: Info{
			Title:       doc.Info.Title,
			Version:     doc.Info.Version,
			Description: doc.Info.Description,
		},
		Schemas: map[string]*Schema{},
	}

	for _, s := range doc.Servers {
		spec.Servers = append(spec.Servers, Server{URL: s.URL, Description: s.Description})
	}
	for _, t := range doc.Tags {
		spec.Tags = append(spec.Tags, Tag{Name: t.Name, Description: t.Description})
	}

	// Iterate the paths mapping node directly to preserve document order.
	for i := 0; i+1 < len(doc.Paths.Content); i += 2 {
		path := doc.Paths.Content[i].Value

		var item rawPathItem
		if err := doc.Paths.Content[i+1].Decode(&item); err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("invalid path item %q", path), Err: err}
		}

		for _, method := range methodOrder {
			op := item.operation(method)
			if op == nil {
				continue
			}
			spec.Operations = append(spec.Operations,
				normalizeOperation(path, method, op, item.Parameters, &doc.Components))
		}
	}

	// Component schemas, resolved for direct display.
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec.Schemas[name] = resolveSchema(doc.Components.Schemas[name], &doc.Components, 0)
	}

	return spec, nil
}

func normalizeOperation(path string, method Method, op *rawOperation, pathParams []rawParameter, comps *rawComponents) Operation {
	id := op.OperationID
	if id == "" {
		id = fallbackOperationID(method, path)
	}

	out := Operation{
		ID:          id,
		Slug:        OperationSlug(id),
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        append([]string(nil), op.Tags...),
		Deprecated:  op.Deprecated,
		Responses:   map[string]Response{},
	}

	// Path-level parameters first; operation-level declarations override by
	// name and otherwise append.
	index := map[string]int{}
	for _, raw := range pathParams {
		if p, ok := resolveParameter(raw, comps); ok {
			index[p.Name] = len(out.Parameters)
			out.Parameters = append(out.Parameters, p)
		}
	}
	for _, raw := range op.Parameters {
		p, ok := resolveParameter(raw, comps)
		if !ok {
			continue
		}
		if at, seen := index[p.Name]; seen {
			out.Parameters[at] = p
			continue
		}
		index[p.Name] = len(out.Parameters)
		out.Parameters = append(out.Parameters, p)
	}

	if op.RequestBody != nil {
		out.RequestBody = resolveRequestBody(*op.RequestBody, comps)
	}

	for code, raw := range op.Responses {
		out.Responses[code] = resolveResponse(raw, comps)
	}

	return out
}

// fallbackOperationID builds `<method>-<path-slug>` for operations that do
// not declare an operationId.
func fallbackOperationID(method Method, path string) string {
	pathSlug := strings.Trim(path, "/")
	pathSlug = strings.ReplaceAll(pathSlug, "/", "-")
	pathSlug = strings.ReplaceAll(pathSlug, "{", "")
	pathSlug = strings.ReplaceAll(pathSlug, "}", "")
	return strings.ToLower(string(method)) + "-" + pathSlug
}

func resolveParameter(raw rawParameter, comps *rawComponents) (Parameter, bool) {
	if raw.Ref != "" {
		name, ok := strings.CutPrefix(raw.Ref, "#/components/parameters/")
		if !ok || comps.Parameters[name] == nil {
			return Parameter{}, false
		}
		raw = *comps.Parameters[name]
	}
	if raw.Name == "" {
		return Parameter{}, false
	}
	return Parameter{
		Name:        raw.Name,
		In:          raw.In,
		Description: raw.Description,
		Required:    raw.Required,
		Deprecated:  raw.Deprecated,
		Schema:      resolveSchema(raw.Schema, comps, 0),
	}, true
}

func resolveRequestBody(raw rawRequestBody, comps *rawComponents) *RequestBody {
	if raw.Ref != "" {
		name, ok := strings.CutPrefix(raw.Ref, "#/components/requestBodies/")
		if !ok || comps.RequestBodies[name] == nil {
			return nil
		}
		raw = *comps.RequestBodies[name]
	}
	return &RequestBody{
		Description: raw.Description,
		Required:    raw.Required,
		Content:     resolveContent(raw.Content, comps),
	}
}

func resolveResponse(raw rawResponse, comps *rawComponents) Response {
	if raw.Ref != "" {
		name, ok := strings.CutPrefix(raw.Ref, "#/components/responses/")
		if ok && comps.Responses[name] != nil {
			raw = *comps.Responses[name]
		}
	}
	return Response{
		Description: raw.Description,
		Content:     resolveContent(raw.Content, comps),
	}
}

func resolveContent(content map[string]rawMedia, comps *rawComponents) []MediaType {
	if len(content) == 0 {
		return nil
	}
	types := make([]string, 0, len(content))
	for mt := range content {
		types = append(types, mt)
	}
	sort.Strings(types)

	out := make([]MediaType, 0, len(types))
	for _, mt := range types {
		out = append(out, MediaType{
			MediaType: mt,
			Schema:    resolveSchema(content[mt].Schema, comps, 0),
		})
	}
	return out
}

// resolveSchema walks a schema, inlining component references. Unresolved
// references and resolutions deeper than maxRefDepth (cycles) become an
// opaque unknown-schema marker carrying the reference name.
func resolveSchema(raw *rawSchema, comps *rawComponents, depth int) *Schema {
	if raw == nil {
		return nil
	}

	if raw.Ref != "" {
		name, ok := strings.CutPrefix(raw.Ref, "#/components/schemas/")
		if !ok || comps.Schemas[name] == nil || depth >= maxRefDepth {
			return &Schema{Ref: refDisplayName(raw.Ref), Unknown: true}
		}
		resolved := resolveSchema(comps.Schemas[name], comps, depth+1)
		resolved.Ref = name
		return resolved
	}

	out := &Schema{
		Type:        raw.Type,
		Format:      raw.Format,
		Description: raw.Description,
		Nullable:    raw.Nullable,
		Required:    append([]string(nil), raw.Required...),
	}

	for _, v := range raw.Enum {
		out.Enum = append(out.Enum, fmt.Sprintf("%v", v))
	}
	if raw.Items != nil {
		out.Items = resolveSchema(raw.Items, comps, depth+1)
	}
	if len(raw.Properties) > 0 {
		out.Properties = make(map[string]*Schema, len(raw.Properties))
		for name, prop := range raw.Properties {
			out.Properties[name] = resolveSchema(prop, comps, depth+1)
		}
	}
	if raw.AdditionalProperties.Kind == yaml.MappingNode {
		var ap rawSchema
		if err := raw.AdditionalProperties.Decode(&ap); err == nil {
			out.AdditionalProperties = resolveSchema(&ap, comps, depth+1)
		}
	}
	for _, s := range raw.OneOf {
		out.OneOf = append(out.OneOf, resolveSchema(s, comps, depth+1))
	}
	for _, s := range raw.AnyOf {
		out.AnyOf = append(out.AnyOf, resolveSchema(s, comps, depth+1))
	}
	for _, s := range raw.AllOf {
		out.AllOf = append(out.AllOf, resolveSchema(s, comps, depth+1))
	}

	return out
}

func refDisplayName(ref string) string {
	if idx := strings.LastIndexByte(ref, '/'); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}
