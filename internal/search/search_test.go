package search

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goliatone/go-docskit/internal/mdx"
)

func sourceFor(path, title, markup string) Source {
	return Source{Path: path, Title: title, Body: mdx.Parse(markup).Body}
}

func TestQueryEmptyReturnsNothing(t *testing.T) {
	t.Parallel()

	idx := Build([]Source{sourceFor("intro", "Intro", "# Setup\n\nsome text")})
	for _, q := range []string{"", "   ", "\t\n", "?!"} {
		if got := idx.Query(q); got != nil {
			t.Fatalf("query %q should return nothing, got %#v", q, got)
		}
	}
}

func TestQueryHeadingOutranksBody(t *testing.T) {
	t.Parallel()

	idx := Build([]Source{
		sourceFor("a", "Alpha", "# Overview\n\nmentions deployment in the body"),
		sourceFor("b", "Beta", "# Deployment\n\nsome other prose"),
	})

	got := idx.Query("deployment")
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %#v", got)
	}
	if got[0].Path != "b" || got[0].Anchor != "deployment" {
		t.Fatalf("heading match should rank first: %#v", got)
	}
	if got[0].Score != headingWeight || got[1].Score != bodyWeight {
		t.Fatalf("unexpected scores: %v, %v", got[0].Score, got[1].Score)
	}
}

func TestQueryTitleCountsAsHeading(t *testing.T) {
	t.Parallel()

	idx := Build([]Source{sourceFor("guides/install", "Install Guide", "plain preamble text")})

	got := idx.Query("install")
	if len(got) != 1 || got[0].Score != headingWeight {
		t.Fatalf("title token should weigh as heading: %#v", got)
	}
	if got[0].Heading != "Install Guide" || got[0].Anchor != "" {
		t.Fatalf("preamble hit should surface the document title: %#v", got[0])
	}
}

func TestQueryFinalTokenPrefix(t *testing.T) {
	t.Parallel()

	idx := Build([]Source{sourceFor("a", "Alpha", "# Configuration\n\nbody words")})

	got := idx.Query("config")
	if len(got) != 1 {
		t.Fatalf("expected prefix hit, got %#v", got)
	}
	if got[0].Score != headingWeight/2 {
		t.Fatalf("prefix match should weigh half, got %v", got[0].Score)
	}

	// A non-final token does not match by prefix.
	if got := idx.Query("config missing"); len(got) != 0 {
		t.Fatalf("non-final prefix should not match: %#v", got)
	}
}

func TestQueryTieBreaksByOrder(t *testing.T) {
	t.Parallel()

	idx := Build([]Source{
		sourceFor("first", "First", "shared token here"),
		sourceFor("second", "Second", "shared token here"),
	})

	got := idx.Query("shared token")
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %#v", got)
	}
	var paths []string
	for _, r := range got {
		paths = append(paths, r.Path)
	}
	if !reflect.DeepEqual(paths, []string{"first", "second"}) {
		t.Fatalf("ties must keep insertion order, got %v", paths)
	}
}

func TestBuildSectionsByHeadingLevel(t *testing.T) {
	t.Parallel()

	idx := Build([]Source{sourceFor("doc", "Doc", `intro words

# Parent

parent prose

## Child

child prose

# Sibling

sibling prose`)})

	// preamble + three headings
	if len(idx.entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(idx.entries))
	}

	parent := idx.entries[1]
	if parent.heading != "Parent" {
		t.Fatalf("unexpected entry order: %#v", parent)
	}
	if _, ok := parent.bodyTokens["child"]; !ok {
		t.Fatalf("nested section text should stay in the enclosing body: %#v", parent.bodyTokens)
	}
	if _, ok := parent.bodyTokens["sibling"]; ok {
		t.Fatal("section must end at the next same-level heading")
	}

	child := idx.entries[2]
	if child.heading != "Child" || child.anchor != "child" {
		t.Fatalf("nested heading should get its own entry: %#v", child)
	}
}

func TestQueryScoresSumAcrossTokens(t *testing.T) {
	t.Parallel()

	idx := Build([]Source{sourceFor("a", "Alpha", "# Widget Setup\n\nruns on linux")})

	got := idx.Query("widget linux")
	if len(got) != 1 {
		t.Fatalf("expected one result, got %#v", got)
	}
	if want := headingWeight + bodyWeight; got[0].Score != want {
		t.Fatalf("expected summed score %v, got %v", want, got[0].Score)
	}
}

func TestExcerptKeepsUTF8Intact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{name: "unbroken_multibyte_run", in: strings.Repeat("日", 100)},
		{name: "multibyte_words", in: strings.Repeat("日本語テキスト ", 40)},
		{name: "short_passthrough", in: "short text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := excerpt(tc.in)
			if !utf8.ValidString(got) {
				t.Fatalf("excerpt split a rune: %q", got)
			}
			if len(tc.in) > excerptLimit && !strings.HasSuffix(got, "…") {
				t.Fatalf("truncated excerpt missing ellipsis: %q", got)
			}
			if len(tc.in) <= excerptLimit && got != tc.in {
				t.Fatalf("short text should pass through, got %q", got)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := tokenize("Hello, World! v2.0 (beta)")
	want := []string{"hello", "world", "v2", "0", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
