package mdx

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Parse turns raw document text into a Document. It never fails: malformed
// input degrades to a best-effort tree with diagnostics attached.
func Parse(source string) *Document {
	fm, body, diags := extractFrontmatter(source)

	p := &parser{
		lines: strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n"),
		slugs: newSlugger(),
		diags: diags,
	}
	nodes := p.parseBlocks("")

	return &Document{
		Frontmatter: fm,
		Body:        nodes,
		Diagnostics: p.diags,
	}
}

type parser struct {
	lines []string
	pos   int
	slugs *slugger
	diags []Diagnostic
}

func (p *parser) diag(format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{Line: p.pos + 1, Message: fmt.Sprintf(format, args...)})
}

var importLine = regexp.MustCompile(`^import\s+.*(?:;|from\s+['"][^'"]*['"])\s*;?\s*$`)

// parseBlocks consumes lines until end of input or, when stop is non-empty,
// a matching `</stop>` close tag. The close tag line is consumed.
func (p *parser) parseBlocks(stop string) []Node {
	var nodes []Node
	closeTag := ""
	if stop != "" {
		closeTag = "</" + stop + ">"
	}

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		trimmed := strings.TrimSpace(line)

		if closeTag != "" {
			if trimmed == closeTag {
				p.pos++
				return nodes
			}
			// A close tag sharing a line with content: split the line so
			// the tag sits alone, with any leading or trailing text on its
			// own lines, and reprocess.
			if idx := strings.Index(trimmed, closeTag); idx >= 0 {
				p.lines[p.pos] = strings.TrimSpace(trimmed[:idx])
				insert := []string{closeTag}
				if after := strings.TrimSpace(trimmed[idx+len(closeTag):]); after != "" {
					insert = append(insert, after)
				}
				p.lines = slices.Insert(p.lines, p.pos+1, insert...)
				continue
			}
		}

		switch {
		case trimmed == "":
			p.pos++
		case importLine.MatchString(trimmed):
			p.pos++
		case strings.HasPrefix(trimmed, "```"):
			nodes = append(nodes, p.parseFence(trimmed))
		case isHeadingLine(trimmed):
			nodes = append(nodes, p.parseHeading(trimmed))
		case isListLine(trimmed):
			nodes = append(nodes, p.parseList())
		case isComponentOpen(trimmed):
			if node, ok := p.parseComponent(); ok {
				nodes = append(nodes, node)
			} else {
				// Degrade the open-tag line to literal text; the diagnostic
				// is already recorded.
				nodes = append(nodes, Paragraph{Spans: []Inline{Text{Value: trimmed}}})
				p.pos++
			}
		default:
			nodes = append(nodes, p.parseParagraph(closeTag))
		}
	}

	if stop != "" {
		// Callers pre-scan for the close tag, so this is unreachable in
		// practice; guard anyway.
		p.diag("missing </%s> close tag", stop)
	}
	return nodes
}

func isHeadingLine(trimmed string) bool {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	return level >= 1 && level <= 6 && level < len(trimmed) && trimmed[level] == ' '
}

func (p *parser) parseHeading(trimmed string) Node {
	level := 0
	for trimmed[level] == '#' {
		level++
	}
	text := inlineText(parseInline(strings.TrimSpace(trimmed[level:])))
	p.pos++
	return Heading{Level: level, Text: text, ID: p.slugs.assign(text)}
}

// parseFence captures a triple-backtick block verbatim. The info string
// carries an optional language tag and, after whitespace, an optional
// filename. A missing closing fence captures to end of input with a
// diagnostic.
func (p *parser) parseFence(trimmed string) Node {
	info := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	block := CodeBlock{}
	if fields := strings.Fields(info); len(fields) > 0 {
		block.Language = fields[0]
		if len(fields) > 1 {
			block.Filename = strings.Join(fields[1:], " ")
		}
	}

	start := p.pos
	p.pos++
	var body []string
	for p.pos < len(p.lines) {
		if strings.TrimSpace(p.lines[p.pos]) == "```" {
			p.pos++
			block.Code = strings.Join(body, "\n")
			return block
		}
		body = append(body, p.lines[p.pos])
		p.pos++
	}

	p.diags = append(p.diags, Diagnostic{Line: start + 1, Message: "unterminated code fence"})
	block.Code = strings.Join(body, "\n")
	return block
}

func isListLine(trimmed string) bool {
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return true
	}
	return orderedItem(trimmed) != ""
}

// orderedItem returns the text after a `N. ` marker, or "".
func orderedItem(trimmed string) string {
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(trimmed) || trimmed[i] != '.' || trimmed[i+1] != ' ' {
		return ""
	}
	return strings.TrimSpace(trimmed[i+2:])
}

func (p *parser) parseList() Node {
	first := strings.TrimSpace(p.lines[p.pos])
	list := List{Ordered: orderedItem(first) != ""}

	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if !isListLine(trimmed) {
			break
		}
		item := orderedItem(trimmed)
		if item == "" {
			item = strings.TrimSpace(trimmed[2:])
		}
		list.Items = append(list.Items, ListItem{Spans: parseInline(item)})
		p.pos++
	}
	return list
}

// parseParagraph collects lines until a blank line or the start of another
// block form.
func (p *parser) parseParagraph(closeTag string) Node {
	var lines []string
	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if trimmed == "" || strings.HasPrefix(trimmed, "```") ||
			isHeadingLine(trimmed) || isListLine(trimmed) || isComponentOpen(trimmed) {
			break
		}
		if closeTag != "" && strings.Contains(trimmed, closeTag) {
			break
		}
		lines = append(lines, trimmed)
		p.pos++
	}
	return Paragraph{Spans: parseInline(strings.Join(lines, " "))}
}

func isComponentOpen(trimmed string) bool {
	return len(trimmed) >= 2 && trimmed[0] == '<' && trimmed[1] >= 'A' && trimmed[1] <= 'Z'
}

// parseComponent parses a `<Name ...>` tag at the current line. The open tag
// may span multiple lines up to its closing `>`. Returns false after
// recording a diagnostic when the tag is malformed or unterminated, leaving
// the position unchanged so the caller degrades the text to a paragraph.
func (p *parser) parseComponent() (Node, bool) {
	openStart := p.pos
	raw, endLine, rest, ok := p.scanOpenTag()
	if !ok {
		p.diag("malformed component tag")
		return nil, false
	}

	name, attrs, selfClosing, ok := parseTagHeader(raw)
	if !ok {
		p.diag("malformed attribute list in component tag")
		return nil, false
	}

	node := ComponentTag{Name: name, Kind: KindForTag(name), Attrs: attrs}

	if selfClosing {
		p.pos = endLine + 1
		if strings.TrimSpace(rest) != "" {
			p.lines[endLine] = rest
			p.pos = endLine
		}
		return node, true
	}

	// Confirm a matching close tag exists before consuming anything, so an
	// unterminated tag degrades to literal text instead of swallowing the
	// remainder of the document.
	if !p.hasCloseTag(name, endLine, rest) {
		p.diags = append(p.diags, Diagnostic{
			Line:    openStart + 1,
			Message: fmt.Sprintf("unterminated <%s> tag", name),
		})
		return nil, false
	}

	p.pos = endLine + 1
	if strings.TrimSpace(rest) != "" {
		p.lines[endLine] = rest
		p.pos = endLine
	}
	node.Children = p.parseBlocks(name)
	return node, true
}

// scanOpenTag reads from the current line's `<` to the first unquoted `>`,
// possibly spanning lines. It returns the tag interior (without angle
// brackets), the line index the tag ends on, and any trailing content after
// the `>` on that line.
func (p *parser) scanOpenTag() (raw string, endLine int, rest string, ok bool) {
	var b strings.Builder
	inQuote := byte(0)

	for lineIdx := p.pos; lineIdx < len(p.lines); lineIdx++ {
		line := p.lines[lineIdx]
		start := 0
		if lineIdx == p.pos {
			start = strings.IndexByte(line, '<') + 1
		} else {
			b.WriteByte(' ')
		}
		for i := start; i < len(line); i++ {
			c := line[i]
			switch {
			case inQuote != 0:
				if c == inQuote {
					inQuote = 0
				}
			case c == '"' || c == '\'':
				inQuote = c
			case c == '>':
				return b.String(), lineIdx, line[i+1:], true
			case c == '<':
				return "", 0, "", false
			}
			b.WriteByte(c)
		}
	}
	return "", 0, "", false
}

// parseTagHeader splits the tag interior into name, attribute map and
// self-closing flag. Attributes are `key="value"` pairs (single quotes also
// accepted) or bare boolean flags, which map to "true".
func parseTagHeader(raw string) (name string, attrs map[string]string, selfClosing bool, ok bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "/") {
		selfClosing = true
		raw = strings.TrimSpace(raw[:len(raw)-1])
	}

	i := 0
	for i < len(raw) && isTagNameChar(raw[i]) {
		i++
	}
	name = raw[:i]
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return "", nil, false, false
	}

	attrs = map[string]string{}
	for i < len(raw) {
		for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
			i++
		}
		if i >= len(raw) {
			break
		}

		start := i
		for i < len(raw) && isAttrNameChar(raw[i]) {
			i++
		}
		key := raw[start:i]
		if key == "" {
			return "", nil, false, false
		}

		if i < len(raw) && raw[i] == '=' {
			i++
			if i >= len(raw) || (raw[i] != '"' && raw[i] != '\'') {
				return "", nil, false, false
			}
			quote := raw[i]
			i++
			end := strings.IndexByte(raw[i:], quote)
			if end < 0 {
				return "", nil, false, false
			}
			attrs[key] = raw[i : i+end]
			i += end + 1
		} else {
			attrs[key] = "true"
		}
	}
	return name, attrs, selfClosing, true
}

func isTagNameChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func isAttrNameChar(c byte) bool {
	return isTagNameChar(c) || c == '_' || c == '-'
}

// hasCloseTag scans ahead for a `</name>` balancing the open tag just
// parsed, accounting for nested tags of the same name.
func (p *parser) hasCloseTag(name string, endLine int, rest string) bool {
	openMarker := "<" + name
	closeMarker := "</" + name + ">"
	depth := 1

	scan := func(s string) bool {
		for {
			openIdx := indexTagToken(s, openMarker)
			closeIdx := strings.Index(s, closeMarker)
			switch {
			case closeIdx < 0 && openIdx < 0:
				return false
			case closeIdx >= 0 && (openIdx < 0 || closeIdx < openIdx):
				depth--
				if depth == 0 {
					return true
				}
				s = s[closeIdx+len(closeMarker):]
			default:
				after := s[openIdx+len(openMarker):]
				// A self-closing occurrence does not open a nesting level.
				if gt := strings.IndexByte(after, '>'); gt <= 0 || after[gt-1] != '/' {
					depth++
				}
				s = after
			}
		}
	}

	if scan(rest) {
		return true
	}
	for i := endLine + 1; i < len(p.lines); i++ {
		if scan(p.lines[i]) {
			return true
		}
	}
	return false
}

// indexTagToken finds marker in s where the following character does not
// extend the tag name, so `<Card` does not match `<CardGroup`.
func indexTagToken(s, marker string) int {
	from := 0
	for {
		idx := strings.Index(s[from:], marker)
		if idx < 0 {
			return -1
		}
		idx += from
		next := idx + len(marker)
		if next >= len(s) || !isTagNameChar(s[next]) {
			return idx
		}
		from = next
	}
}
