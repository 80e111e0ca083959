package latex

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Parser priorities. Lower runs first; goldmark's code span parser sits at 100.
// Both math parsers share the '$' trigger, so the display parser must come
// before the inline one.
const (
	displayMathPriority = 140
	inlineMathPriority  = 150
	mathBlockPriority   = 690
)

const mathDelimiter = '$'

// KindFormula is the goldmark node kind of Formula.
var KindFormula = gast.NewNodeKind("Formula")

// KindMathBlock is the goldmark node kind of MathBlock.
var KindMathBlock = gast.NewNodeKind("MathBlock")

// Formula is the token both inline math parsers produce.
// Content is copied verbatim from the source.
type Formula struct {
	gast.BaseInline
	Content string
	Display bool
}

// Kind implements ast.Node.
func (n *Formula) Kind() gast.NodeKind { return KindFormula }

// Dump implements ast.Node.
func (n *Formula) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Content": n.Content,
		"Display": boolString(n.Display),
	}, nil)
}

// MathBlock is a display formula standing at block level between "$$" lines.
type MathBlock struct {
	gast.BaseBlock
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() gast.NodeKind { return KindMathBlock }

// IsRaw implements ast.Node. The lines are never parsed as inlines.
func (n *MathBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// Content returns the formula lines without the final newline.
func (n *MathBlock) Content(source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return string(bytes.TrimRight(buf.Bytes(), "\r\n"))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// mathParser scans "$...$" or, when display is set, "$$...$$".
type mathParser struct {
	display bool
}

func (p *mathParser) Trigger() []byte {
	return []byte{mathDelimiter}
}

func (p *mathParser) width() int {
	if p.display {
		return 2
	}
	return 1
}

func (p *mathParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if !p.opens(line) {
		return nil
	}
	width := p.width()
	savedLine, savedPos := block.Position()
	block.Advance(width)

	var content []byte
	for {
		line, _ := block.PeekLine()
		if line == nil {
			block.SetPosition(savedLine, savedPos)
			return nil
		}
		if end := p.closing(line); end >= 0 {
			content = append(content, line[:end]...)
			if len(content) == 0 {
				block.SetPosition(savedLine, savedPos)
				return nil
			}
			block.Advance(end + width)
			return &Formula{Content: string(content), Display: p.display}
		}
		content = append(content, line...)
		block.AdvanceLine()
	}
}

// opens reports whether line starts with this parser's opening delimiter.
func (p *mathParser) opens(line []byte) bool {
	if len(line) < p.width() || line[0] != mathDelimiter {
		return false
	}
	double := len(line) > 1 && line[1] == mathDelimiter
	return double == p.display
}

// closing returns the offset of the closing delimiter in line, or -1.
// A backslash-escaped delimiter never closes. Inline math closes at the first
// unescaped delimiter, even when a second one follows it.
func (p *mathParser) closing(line []byte) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case mathDelimiter:
			if !p.display {
				return i
			}
			if i+1 < len(line) && line[i+1] == mathDelimiter {
				return i
			}
		}
	}
	return -1
}

// mathBlockParser recognizes a block of lines fenced by "$$" lines.
type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte {
	return []byte{mathDelimiter}
}

func (b *mathBlockParser) Open(_ gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !isMathFence(line[pos:]) {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - trailingNewline(line))
	return &MathBlock{}, parser.NoChildren
}

func (b *mathBlockParser) Continue(node gast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isMathFence(line) {
		reader.Advance(segment.Len() - trailingNewline(line))
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(gast.Node, text.Reader, parser.Context) {}

func (b *mathBlockParser) CanInterruptParagraph() bool { return false }

func (b *mathBlockParser) CanAcceptIndentedLine() bool { return false }

func trailingNewline(line []byte) int {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		return 1
	}
	return 0
}

// isMathFence reports whether line holds only "$$" and surrounding blanks.
func isMathFence(line []byte) bool {
	return bytes.Equal(util.TrimRightSpace(util.TrimLeftSpace(line)), []byte("$$"))
}

// mathExtension registers the math parsers with a goldmark instance.
type mathExtension struct{}

// Math is a goldmark extension adding "$"/"$$" inline formulas and "$$" blocks.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&mathBlockParser{}, mathBlockPriority),
		),
		parser.WithInlineParsers(
			util.Prioritized(&mathParser{display: true}, displayMathPriority),
			util.Prioritized(&mathParser{display: false}, inlineMathPriority),
		),
	)
}
