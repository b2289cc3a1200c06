package mdx

import "strings"

// RenderText flattens a node sequence into plain text: markup markers are
// dropped, component titles are kept, blocks are separated by blank lines.
// The output is deterministic for identical input and feeds the search index
// and the llms-full export.
func RenderText(nodes []Node) string {
	var b strings.Builder
	writeText(&b, nodes)
	return strings.TrimRight(b.String(), "\n")
}

func writeText(b *strings.Builder, nodes []Node) {
	for _, node := range nodes {
		switch n := node.(type) {
		case Heading:
			b.WriteString(n.Text)
			b.WriteString("\n\n")
		case Paragraph:
			if text := inlineText(n.Spans); text != "" {
				b.WriteString(text)
				b.WriteString("\n\n")
			}
		case CodeBlock:
			b.WriteString(n.Code)
			b.WriteString("\n\n")
		case List:
			for _, item := range n.Items {
				b.WriteString(inlineText(item.Spans))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		case ComponentTag:
			if title := componentTitle(n); title != "" {
				b.WriteString(title)
				b.WriteString("\n\n")
			}
			writeText(b, n.Children)
		}
	}
}

// componentTitle picks the attribute that names a component, if any.
func componentTitle(n ComponentTag) string {
	for _, key := range []string{"title", "label", "name"} {
		if v := n.Attrs[key]; v != "" {
			return v
		}
	}
	return ""
}
