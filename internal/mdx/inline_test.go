package mdx

import (
	"reflect"
	"testing"
)

func TestParseInline(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []Inline
	}{
		{
			name: "plain",
			in:   "just text",
			want: []Inline{Text{Value: "just text"}},
		},
		{
			name: "strong",
			in:   "a **bold** word",
			want: []Inline{Text{Value: "a "}, Emphasis{Value: "bold", Strong: true}, Text{Value: " word"}},
		},
		{
			name: "emphasis_star",
			in:   "an *em* word",
			want: []Inline{Text{Value: "an "}, Emphasis{Value: "em"}, Text{Value: " word"}},
		},
		{
			name: "emphasis_underscore",
			in:   "an _em_ word",
			want: []Inline{Text{Value: "an "}, Emphasis{Value: "em"}, Text{Value: " word"}},
		},
		{
			name: "code",
			in:   "run `go build` now",
			want: []Inline{Text{Value: "run "}, Code{Value: "go build"}, Text{Value: " now"}},
		},
		{
			name: "link",
			in:   "see [the docs](https://example.com) here",
			want: []Inline{Text{Value: "see "}, Link{Text: "the docs", URL: "https://example.com"}, Text{Value: " here"}},
		},
		{
			name: "unclosed_marker_is_literal",
			in:   "a * dangling star",
			want: []Inline{Text{Value: "a * dangling star"}},
		},
		{
			name: "unclosed_bracket_is_literal",
			in:   "a [label without url",
			want: []Inline{Text{Value: "a [label without url"}},
		},
		{
			name: "strong_beats_emphasis",
			in:   "**x**",
			want: []Inline{Emphasis{Value: "x", Strong: true}},
		},
		{
			name: "code_keeps_markers_verbatim",
			in:   "`a *b* c`",
			want: []Inline{Code{Value: "a *b* c"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := parseInline(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}
