package mdx

import "fmt"

// Document is a fully parsed documentation page. It is created once at build
// time and never mutated afterwards.
type Document struct {
	// Path is the registry-assigned content path; empty until the registry
	// binds the document.
	Path        string
	Frontmatter Frontmatter
	Body        []Node
	Diagnostics []Diagnostic
}

// Frontmatter carries the metadata extracted from the document's leading
// delimiter block. Extra holds unrecognized scalar keys, stringified.
type Frontmatter struct {
	Title        string
	Description  string
	SidebarTitle string
	Icon         string
	Extra        map[string]string
}

// Diagnostic records a non-fatal parse problem attached to a document.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

// Node is a block-level element of the parsed document tree.
type Node interface {
	node()
}

// Heading is a `#`-prefixed heading with a document-unique slug id.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// Paragraph is a blank-line separated run of inline content.
type Paragraph struct {
	Spans []Inline
}

// CodeBlock is a triple-backtick fenced block captured verbatim.
type CodeBlock struct {
	Language string
	Filename string
	Code     string
}

// List is a flat bullet or ordered list.
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem is one entry of a List.
type ListItem struct {
	Spans []Inline
}

// ComponentTag is a custom `<Name ...>` tag. Children hold the recursively
// parsed nested content; self-closing tags have none. Kind is KindUnknown for
// tags outside the recognized set, in which case Name and Attrs still carry
// the raw input so downstream renderers may act on them.
type ComponentTag struct {
	Name     string
	Kind     ComponentKind
	Attrs    map[string]string
	Children []Node
}

func (Heading) node()      {}
func (Paragraph) node()    {}
func (CodeBlock) node()    {}
func (List) node()         {}
func (ComponentTag) node() {}

// Inline is a span-level element inside a paragraph, heading or list item.
type Inline interface {
	inline()
}

// Text is a plain text span.
type Text struct {
	Value string
}

// Emphasis is an `*em*` or `**strong**` span.
type Emphasis struct {
	Value  string
	Strong bool
}

// Code is a backtick-delimited inline code span.
type Code struct {
	Value string
}

// Link is a `[text](url)` span.
type Link struct {
	Text string
	URL  string
}

func (Text) inline()     {}
func (Emphasis) inline() {}
func (Code) inline()     {}
func (Link) inline()     {}

// ComponentKind enumerates the recognized component tag library. Unrecognized
// tag names map to KindUnknown and survive parsing as opaque nodes.
type ComponentKind int

const (
	KindUnknown ComponentKind = iota
	KindCallout
	KindCard
	KindCardGroup
	KindColumns
	KindTabs
	KindTab
	KindSteps
	KindStep
	KindAccordion
	KindAccordionGroup
	KindParamField
	KindResponseField
	KindExpandable
	KindCodeGroup
	KindRequestExample
	KindResponseExample
	KindUpdate
)

var componentKinds = map[string]ComponentKind{
	"Tip":             KindCallout,
	"Note":            KindCallout,
	"Warning":         KindCallout,
	"Info":            KindCallout,
	"Card":            KindCard,
	"CardGroup":       KindCardGroup,
	"Columns":         KindColumns,
	"Tabs":            KindTabs,
	"Tab":             KindTab,
	"Steps":           KindSteps,
	"Step":            KindStep,
	"Accordion":       KindAccordion,
	"AccordionGroup":  KindAccordionGroup,
	"ParamField":      KindParamField,
	"ResponseField":   KindResponseField,
	"Expandable":      KindExpandable,
	"CodeGroup":       KindCodeGroup,
	"RequestExample":  KindRequestExample,
	"ResponseExample": KindResponseExample,
	"Update":          KindUpdate,
}

// KindForTag resolves a raw tag name to its component kind.
func KindForTag(name string) ComponentKind {
	if kind, ok := componentKinds[name]; ok {
		return kind
	}
	return KindUnknown
}
