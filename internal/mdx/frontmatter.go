package mdx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

type frontmatterEnvelope struct {
	Title        string         `yaml:"title"`
	Description  string         `yaml:"description"`
	SidebarTitle string         `yaml:"sidebarTitle"`
	Icon         string         `yaml:"icon"`
	Extra        map[string]any `yaml:",inline"`
}

// extractFrontmatter splits the metadata block from the body. A document
// without a leading delimiter passes through untouched. Malformed YAML or a
// missing closing delimiter degrades to an empty Frontmatter plus a
// diagnostic; the document body is preserved on a best-effort basis.
func extractFrontmatter(source string) (Frontmatter, string, []Diagnostic) {
	var env frontmatterEnvelope
	var diags []Diagnostic

	// The decoder treats an unclosed block as "no frontmatter"; a leading
	// delimiter with no closing line still signals frontmatter intent, so
	// flag it instead of silently reading the delimiter as body text.
	if unclosedFrontmatter(source) {
		diags = append(diags, Diagnostic{Line: 1, Message: "frontmatter: missing closing delimiter"})
		return Frontmatter{Extra: map[string]string{}}, source, diags
	}

	body, err := frontmatter.Parse(strings.NewReader(source), &env)
	if err != nil {
		diags = append(diags, Diagnostic{Line: 1, Message: fmt.Sprintf("frontmatter: %v", err)})
		return Frontmatter{Extra: map[string]string{}}, stripUnparsedFrontmatter(source), diags
	}

	fm := Frontmatter{
		Title:        strings.TrimSpace(env.Title),
		Description:  strings.TrimSpace(env.Description),
		SidebarTitle: strings.TrimSpace(env.SidebarTitle),
		Icon:         strings.TrimSpace(env.Icon),
		Extra:        map[string]string{},
	}

	// Deterministic diagnostic order for non-scalar values.
	keys := make([]string, 0, len(env.Extra))
	for key := range env.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := env.Extra[key].(type) {
		case nil:
			fm.Extra[key] = ""
		case string:
			fm.Extra[key] = value
		case bool, int, int64, uint64, float64:
			fm.Extra[key] = fmt.Sprintf("%v", value)
		default:
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("frontmatter field %q: non-scalar value ignored", key),
			})
		}
	}

	return fm, string(body), diags
}

// unclosedFrontmatter reports whether the document opens with a `---`
// delimiter line that no later delimiter line closes.
func unclosedFrontmatter(source string) bool {
	trimmed := strings.TrimLeft(source, "\n\r \t")
	first, rest, _ := strings.Cut(trimmed, "\n")
	if strings.TrimSpace(first) != "---" {
		return false
	}
	for rest != "" {
		line, tail, found := strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == "---" {
			return false
		}
		if !found {
			break
		}
		rest = tail
	}
	return true
}

// stripUnparsedFrontmatter removes a delimited block the YAML decoder
// rejected so the body still parses. An unclosed block leaves the source
// as-is; the opening delimiter then reads as body text.
func stripUnparsedFrontmatter(source string) string {
	trimmed := strings.TrimLeft(source, "\n\r \t")
	if !strings.HasPrefix(trimmed, "---") {
		return source
	}
	rest := trimmed[3:]
	if idx := strings.Index(rest, "\n---"); idx >= 0 {
		after := rest[idx+4:]
		return strings.TrimLeft(after, "\n\r")
	}
	return source
}
