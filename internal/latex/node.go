package latex

// Alignment is a table column alignment.
type Alignment int

// Column alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// letter returns the tabular column type for a.
func (a Alignment) letter() byte {
	switch a {
	case AlignCenter:
		return 'c'
	case AlignRight:
		return 'r'
	default:
		return 'l'
	}
}

// Break is the line ending that follows a text leaf.
type Break int

// Line endings of a text leaf.
const (
	BreakNone Break = iota
	BreakSoft
	BreakHard
)

// Node is one unit of the document as seen by a render rule.
// Nodes live for a single rule call. Children always hold final LaTeX text.
type Node struct {
	Kind     Kind
	Raw      string      // leaf content: text, code, formula, HTML
	Target   string      // link destination or image source, never escaped
	Language string      // fenced code info word, never escaped
	Level    int         // heading level
	Ordered  bool        // list numbering
	Align    []Alignment // table columns; nil when the source declares none
	Break    Break       // line ending after a text leaf
	Block    bool        // raw HTML that stood at block level
	Children []string    // rendered children, in document order
}

// Body returns the concatenation of the rendered children.
func (n *Node) Body() string {
	switch len(n.Children) {
	case 0:
		return ""
	case 1:
		return n.Children[0]
	}
	size := 0
	for _, c := range n.Children {
		size += len(c)
	}
	buf := make([]byte, 0, size)
	for _, c := range n.Children {
		buf = append(buf, c...)
	}
	return string(buf)
}
