package mdx

import (
	"strings"
	"testing"
)

func TestRenderText(t *testing.T) {
	t.Parallel()

	source := `# Title

Some **bold** prose with [a link](https://example.com).

<Steps>
<Step title="First step">
Do the thing.
</Step>
</Steps>

` + "```go\nfmt.Println()\n```" + `

- alpha
- beta
`

	doc := Parse(source)
	got := RenderText(doc.Body)

	for _, want := range []string{
		"Title",
		"Some bold prose with a link.",
		"First step",
		"Do the thing.",
		"fmt.Println()",
		"alpha\nbeta",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered text missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "**") || strings.Contains(got, "<Steps>") || strings.Contains(got, "](") {
		t.Fatalf("markers leaked into rendered text:\n%s", got)
	}
}

func TestRenderTextDeterministic(t *testing.T) {
	t.Parallel()

	doc := Parse("# A\n\nB\n\n<Tip>C</Tip>")
	first := RenderText(doc.Body)
	second := RenderText(Parse("# A\n\nB\n\n<Tip>C</Tip>").Body)
	if first != second {
		t.Fatalf("render is not deterministic:\n%q\n%q", first, second)
	}
}
