// Package search builds an in-memory full-text index over parsed documents
// and answers ranked token-overlap queries. The index is built once and is
// safe for concurrent reads.
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-docskit/internal/mdx"
)

// Weights for token matches. A token found in a heading (or the document
// title) counts double; the trailing query token may match by prefix at half
// the exact weight.
const (
	headingWeight = 2.0
	bodyWeight    = 1.0
)

const excerptLimit = 160

// Source is one document to index, in sidebar order.
type Source struct {
	Path  string
	Title string
	Body  []mdx.Node
}

// Result is one ranked hit. Anchor is empty for hits in the preamble before
// the first heading.
type Result struct {
	Path    string
	Anchor  string
	Title   string
	Heading string
	Excerpt string
	Score   float64
}

// Index holds one entry per heading-delimited section. Entry order follows
// the source order, which breaks score ties.
type Index struct {
	entries []entry
}

type entry struct {
	path    string
	anchor  string
	title   string
	heading string
	excerpt string

	headingTokens map[string]struct{}
	bodyTokens    map[string]struct{}
}

// Build indexes the given documents. Each heading starts a section that runs
// until the next heading of equal or higher level; content before the first
// heading becomes a title-level entry. Document title tokens are folded into
// every entry so title words always rank as heading matches.
func Build(sources []Source) *Index {
	idx := &Index{}
	for _, src := range sources {
		idx.addDocument(src)
	}
	return idx
}

func (idx *Index) addDocument(src Source) {
	titleTokens := tokenize(src.Title)

	add := func(heading *mdx.Heading, body []mdx.Node) {
		headingTokens := map[string]struct{}{}
		for _, tok := range titleTokens {
			headingTokens[tok] = struct{}{}
		}

		e := entry{
			path:          src.Path,
			title:         src.Title,
			headingTokens: headingTokens,
			bodyTokens:    map[string]struct{}{},
		}
		if heading != nil {
			e.heading = heading.Text
			e.anchor = heading.ID
			for _, tok := range tokenize(heading.Text) {
				e.headingTokens[tok] = struct{}{}
			}
		}

		text := mdx.RenderText(body)
		for _, tok := range tokenize(text) {
			e.bodyTokens[tok] = struct{}{}
		}
		e.excerpt = excerpt(text)

		idx.entries = append(idx.entries, e)
	}

	// Preamble before the first heading becomes a title-level entry.
	preambleEnd := len(src.Body)
	for i, node := range src.Body {
		if _, ok := node.(mdx.Heading); ok {
			preambleEnd = i
			break
		}
	}
	if preambleEnd > 0 || preambleEnd == len(src.Body) {
		add(nil, src.Body[:preambleEnd])
	}

	// A section runs from its heading to the next heading of equal or
	// higher level; deeper headings stay in the enclosing body and also
	// start entries of their own.
	for i := preambleEnd; i < len(src.Body); i++ {
		h, ok := src.Body[i].(mdx.Heading)
		if !ok {
			continue
		}
		end := len(src.Body)
		for j := i + 1; j < len(src.Body); j++ {
			if next, ok := src.Body[j].(mdx.Heading); ok && next.Level <= h.Level {
				end = j
				break
			}
		}
		add(&h, src.Body[i+1:end])
	}
}

// Query ranks entries by summed token weight. Each query token scores its
// best match once: heading 2.0, body 1.0; the final token may instead match
// a token prefix at half weight. Blank queries return nothing.
func (idx *Index) Query(text string) []Result {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	var results []Result
	for _, e := range idx.entries {
		score := 0.0
		for i, tok := range tokens {
			score += e.match(tok, i == len(tokens)-1)
		}
		if score <= 0 {
			continue
		}
		heading := e.heading
		if heading == "" {
			heading = e.title
		}
		results = append(results, Result{
			Path:    e.path,
			Anchor:  e.anchor,
			Title:   e.title,
			Heading: heading,
			Excerpt: e.excerpt,
			Score:   score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (e *entry) match(tok string, allowPrefix bool) float64 {
	if _, ok := e.headingTokens[tok]; ok {
		return headingWeight
	}
	if _, ok := e.bodyTokens[tok]; ok {
		return bodyWeight
	}
	if !allowPrefix {
		return 0
	}
	for t := range e.headingTokens {
		if strings.HasPrefix(t, tok) {
			return headingWeight / 2
		}
	}
	for t := range e.bodyTokens {
		if strings.HasPrefix(t, tok) {
			return bodyWeight / 2
		}
	}
	return 0
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= excerptLimit {
		return text
	}
	cut := strings.LastIndexByte(text[:excerptLimit], ' ')
	if cut <= 0 {
		// No word boundary in range: back off to a rune boundary.
		cut = excerptLimit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
	}
	return text[:cut] + "…"
}
