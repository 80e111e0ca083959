package latex

import (
	"bytes"
	"fmt"
	"strings"

	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Options tunes the renderer.
type Options struct {
	// ResolveLanguages maps fenced-code info words to listings language
	// names, dropping the ones listings cannot highlight. When false the
	// info word is passed through as written.
	ResolveLanguages bool
}

// Render parses Markdown source and returns the LaTeX body.
// The output is a pure function of source and opts.
func Render(source []byte, opts Options) (string, error) {
	doc := NewMarkdown().Parser().Parse(text.NewReader(source))
	w := &walker{source: source, opts: opts}
	children, err := w.children(doc)
	if err != nil {
		return "", err
	}
	return strings.Join(children, ""), nil
}

// walker folds a goldmark tree into LaTeX, children before parents.
type walker struct {
	source []byte
	opts   Options
}

func (w *walker) render(n gast.Node) (string, error) {
	children, err := w.children(n)
	if err != nil {
		return "", err
	}
	node, err := w.classify(n, children)
	if err != nil {
		return "", err
	}
	return apply(node), nil
}

func (w *walker) children(n gast.Node) ([]string, error) {
	if n.ChildCount() == 0 {
		return nil, nil
	}
	out := make([]string, 0, n.ChildCount())
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s, err := w.render(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// classify builds the render node for a goldmark node whose children are
// already rendered.
func (w *walker) classify(n gast.Node, children []string) (*Node, error) {
	switch v := n.(type) {
	case *gast.Text:
		node := &Node{Kind: KindText, Raw: inlineText(v.Segment.Value(w.source))}
		switch {
		case v.HardLineBreak():
			node.Break = BreakHard
		case v.SoftLineBreak():
			node.Break = BreakSoft
		}
		return node, nil
	case *gast.String:
		return &Node{Kind: KindText, Raw: inlineText(v.Value)}, nil
	case *gast.Paragraph, *gast.TextBlock:
		return &Node{Kind: KindParagraph, Children: children}, nil
	case *gast.Emphasis:
		if v.Level >= 2 {
			return &Node{Kind: KindStrong, Children: children}, nil
		}
		return &Node{Kind: KindEmphasis, Children: children}, nil
	case *east.Strikethrough:
		return &Node{Kind: KindStrikethrough, Children: children}, nil
	case *gast.CodeSpan:
		return &Node{Kind: KindCodeSpan, Raw: w.codeSpan(v)}, nil
	case *gast.Link:
		return &Node{Kind: KindLink, Target: string(v.Destination), Children: children}, nil
	case *gast.AutoLink:
		label := Escape(string(v.Label(w.source)))
		return &Node{Kind: KindLink, Target: string(v.URL(w.source)), Children: []string{label}}, nil
	case *gast.Heading:
		return &Node{Kind: KindHeading, Level: v.Level, Children: children}, nil
	case *gast.ThematicBreak:
		return &Node{Kind: KindThematicBreak}, nil
	case *gast.List:
		return &Node{Kind: KindList, Ordered: v.IsOrdered(), Children: children}, nil
	case *gast.ListItem:
		return &Node{Kind: KindListItem, Children: children}, nil
	case *gast.FencedCodeBlock:
		return &Node{
			Kind:     KindBlockCode,
			Raw:      w.lines(v.Lines()),
			Language: w.language(string(v.Language(w.source))),
		}, nil
	case *gast.CodeBlock:
		return &Node{Kind: KindBlockCode, Raw: w.lines(v.Lines())}, nil
	case *gast.Blockquote:
		return &Node{Kind: KindBlockQuote, Children: children}, nil
	case *gast.Image:
		return &Node{Kind: KindImage, Target: string(v.Destination), Children: children}, nil
	case *gast.HTMLBlock:
		raw := w.lines(v.Lines())
		if v.HasClosure() {
			raw += string(v.ClosureLine.Value(w.source))
		}
		return &Node{Kind: KindRawHTML, Raw: raw, Block: true}, nil
	case *gast.RawHTML:
		var b bytes.Buffer
		for i := range v.Segments.Len() {
			seg := v.Segments.At(i)
			b.Write(seg.Value(w.source))
		}
		return &Node{Kind: KindRawHTML, Raw: b.String()}, nil
	case *east.Table:
		return w.table(v, children), nil
	case *east.TableHeader:
		return &Node{Kind: KindTableHead, Children: children}, nil
	case *east.TableRow:
		return &Node{Kind: KindTableRow, Children: children}, nil
	case *east.TableCell:
		return &Node{Kind: KindTableCell, Children: children}, nil
	case *Formula:
		if v.Display {
			return &Node{Kind: KindDisplayMath, Raw: v.Content}, nil
		}
		return &Node{Kind: KindInlineMath, Raw: v.Content}, nil
	case *MathBlock:
		return &Node{Kind: KindBlockMath, Raw: v.Content(w.source)}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Kind())
}

// table regroups the rendered header and rows as [head, body].
func (w *walker) table(t *east.Table, children []string) *Node {
	head, rows := "", children
	if _, ok := t.FirstChild().(*east.TableHeader); ok && len(children) > 0 {
		head, rows = children[0], children[1:]
	}
	body := apply(&Node{Kind: KindTableBody, Children: rows})
	return &Node{
		Kind:     KindTable,
		Align:    alignments(t.Alignments),
		Children: []string{head, body},
	}
}

// alignments converts declared column alignments. A table where no column
// declares one has no alignment metadata and yields nil.
func alignments(in []east.Alignment) []Alignment {
	declared := false
	out := make([]Alignment, len(in))
	for i, a := range in {
		switch a {
		case east.AlignCenter:
			out[i] = AlignCenter
		case east.AlignRight:
			out[i] = AlignRight
		case east.AlignLeft:
			out[i] = AlignLeft
		default:
			out[i] = AlignLeft
			continue
		}
		declared = true
	}
	if !declared {
		return nil
	}
	return out
}

func (w *walker) codeSpan(n *gast.CodeSpan) string {
	var b bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gast.Text:
			b.Write(t.Segment.Value(w.source))
		case *gast.String:
			b.Write(t.Value)
		}
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}

func (w *walker) lines(lines *text.Segments) string {
	var b bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(w.source))
	}
	return b.String()
}

func (w *walker) language(info string) string {
	if !w.opts.ResolveLanguages {
		return info
	}
	return ResolveLanguage(info)
}

// inlineText resolves backslash escapes and character references the way
// the parser leaves them in text segments.
func inlineText(raw []byte) string {
	raw = util.UnescapePunctuations(raw)
	raw = util.ResolveNumericReferences(raw)
	raw = util.ResolveEntityNames(raw)
	return string(raw)
}
