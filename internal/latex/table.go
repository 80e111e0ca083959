package latex

import "strings"

// Table reconstruction markers.
const (
	cellSeparator = " & "
	rowTerminator = ` \\` + "\n"
	tableRule     = `\hline` + "\n"
)

func renderTableCell(n *Node) string {
	return n.Body() + cellSeparator
}

func renderTableRow(n *Node) string {
	return strings.TrimSuffix(n.Body(), cellSeparator) + rowTerminator
}

// renderTableHead renders the header row followed by the header/body divider.
func renderTableHead(n *Node) string {
	return renderTableRow(n) + tableRule
}

func renderTableBody(n *Node) string {
	return n.Body()
}

// renderTable expects Children to be [head, body].
func renderTable(n *Node) string {
	var first string
	if len(n.Children) > 0 {
		first = n.Children[0]
	}
	var b strings.Builder
	b.WriteString(`\begin{center}` + "\n")
	b.WriteString(`\begin{tabular}{` + ColumnSpec(n.Align, first) + "}\n")
	b.WriteString(tableRule)
	b.WriteString(n.Body())
	b.WriteString(tableRule)
	b.WriteString(`\end{tabular}` + "\n")
	b.WriteString(`\end{center}` + "\n")
	return b.String()
}

// ColumnSpec returns the tabular column specification for a table.
//
// Declared alignments win. Without them the column count is inferred from the
// separators in the rendered first row, with every column left-aligned. The
// inference holds because Escape never leaves a bare separator in cell text;
// unescaped formula content inside a cell can still contain one.
func ColumnSpec(align []Alignment, firstRow string) string {
	if len(align) > 0 {
		spec := make([]byte, len(align))
		for i, a := range align {
			spec[i] = a.letter()
		}
		return string(spec)
	}
	columns := strings.Count(firstRow, cellSeparator) + 1
	return strings.Repeat("l", columns)
}
