package mdx

import "strings"

// parseInline scans a block's text into inline spans. Markers without a
// matching closer are kept as literal text; spans never cross block
// boundaries because the input is already a single block.
func parseInline(text string) []Inline {
	var spans []Inline
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Text{Value: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		switch text[i] {
		case '`':
			if end := strings.IndexByte(text[i+1:], '`'); end >= 0 {
				flush()
				spans = append(spans, Code{Value: text[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		case '*':
			// Longest match: try strong before emphasis.
			if strings.HasPrefix(text[i:], "**") {
				if end := strings.Index(text[i+2:], "**"); end > 0 {
					flush()
					spans = append(spans, Emphasis{Value: text[i+2 : i+2+end], Strong: true})
					i += end + 4
					continue
				}
			} else if end := strings.IndexByte(text[i+1:], '*'); end > 0 {
				flush()
				spans = append(spans, Emphasis{Value: text[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		case '_':
			if end := strings.IndexByte(text[i+1:], '_'); end > 0 {
				flush()
				spans = append(spans, Emphasis{Value: text[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		case '[':
			if label, url, size, ok := scanLink(text[i:]); ok {
				flush()
				spans = append(spans, Link{Text: label, URL: url})
				i += size
				continue
			}
		}
		plain.WriteByte(text[i])
		i++
	}

	flush()
	return spans
}

// scanLink matches a `[text](url)` span at the start of s.
func scanLink(s string) (label, url string, size int, ok bool) {
	closeBracket := strings.IndexByte(s, ']')
	if closeBracket < 0 || closeBracket+1 >= len(s) || s[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	closeParen := strings.IndexByte(s[closeBracket+2:], ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	label = s[1:closeBracket]
	url = s[closeBracket+2 : closeBracket+2+closeParen]
	return label, url, closeBracket + closeParen + 3, true
}

// inlineText flattens spans back to their textual content.
func inlineText(spans []Inline) string {
	var b strings.Builder
	for _, span := range spans {
		switch s := span.(type) {
		case Text:
			b.WriteString(s.Value)
		case Emphasis:
			b.WriteString(s.Value)
		case Code:
			b.WriteString(s.Value)
		case Link:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
