// Package mdx parses the MDX-like documentation dialect: markdown prose
// (headings, paragraphs, lists, code fences) extended with nested custom
// component tags and an optional YAML frontmatter block.
package mdx
