package latex

import (
	"strings"
)

// rule renders one node from its fields and rendered children.
type rule func(n *Node) string

// rules maps every kind to its rule. The array length ties the table to the
// Kind enumeration; TestRulesCoverEveryKind guards against nil entries.
var rules = [kindCount]rule{
	KindText:          renderText,
	KindParagraph:     renderParagraph,
	KindEmphasis:      wrapCommand("textit"),
	KindStrong:        wrapCommand("textbf"),
	KindStrikethrough: wrapCommand("sout"),
	KindCodeSpan:      renderCodeSpan,
	KindLink:          renderLink,
	KindHeading:       renderHeading,
	KindThematicBreak: renderThematicBreak,
	KindList:          renderList,
	KindListItem:      renderListItem,
	KindBlockCode:     renderBlockCode,
	KindBlockQuote:    renderBlockQuote,
	KindImage:         renderImage,
	KindTable:         renderTable,
	KindTableHead:     renderTableHead,
	KindTableBody:     renderTableBody,
	KindTableRow:      renderTableRow,
	KindTableCell:     renderTableCell,
	KindInlineMath:    renderInlineMath,
	KindDisplayMath:   renderDisplayMath,
	KindBlockMath:     renderBlockMath,
	KindRawHTML:       renderRawHTML,
}

// headingCommands maps heading levels to sectioning commands.
// Deeper levels fall back to bold text.
var headingCommands = map[int]string{
	1: "section",
	2: "subsection",
	3: "subsubsection",
	4: "paragraph",
}

// headingFallback is used for levels without a sectioning command.
const headingFallback = "textbf"

// apply runs the rule for n.Kind.
func apply(n *Node) string {
	return rules[n.Kind](n)
}

func wrapCommand(name string) rule {
	return func(n *Node) string {
		return `\` + name + "{" + n.Body() + "}"
	}
}

func renderText(n *Node) string {
	s := Escape(n.Raw)
	switch n.Break {
	case BreakSoft:
		s += "\n"
	case BreakHard:
		s += ` \\` + "\n"
	}
	return s
}

func renderParagraph(n *Node) string {
	return n.Body() + "\n\n"
}

func renderCodeSpan(n *Node) string {
	return `\texttt{` + Escape(n.Raw) + "}"
}

func renderLink(n *Node) string {
	label := n.Body()
	if label == "" {
		label = n.Target
	}
	return `\href{` + n.Target + "}{" + label + "}"
}

func renderHeading(n *Node) string {
	cmd, ok := headingCommands[n.Level]
	if !ok {
		cmd = headingFallback
	}
	return `\` + cmd + "{" + n.Body() + "}\n"
}

func renderThematicBreak(*Node) string {
	return `\noindent\rule{\textwidth}{0.4pt}` + "\n"
}

func renderList(n *Node) string {
	env := "itemize"
	if n.Ordered {
		env = "enumerate"
	}
	return `\begin{` + env + "}\n" + n.Body() + `\end{` + env + "}\n"
}

func renderListItem(n *Node) string {
	return `  \item ` + strings.TrimRight(n.Body(), "\n") + "\n"
}

func renderBlockCode(n *Node) string {
	var b strings.Builder
	b.WriteString(`\begin{lstlisting}`)
	if n.Language != "" {
		b.WriteString("[language=" + n.Language + "]")
	}
	b.WriteString("\n")
	b.WriteString(n.Raw)
	if n.Raw != "" && !strings.HasSuffix(n.Raw, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(`\end{lstlisting}` + "\n")
	return b.String()
}

func renderBlockQuote(n *Node) string {
	return `\begin{quote}` + "\n" + n.Body() + `\end{quote}` + "\n"
}

func renderImage(n *Node) string {
	return `\begin{figure}[htbp]` + "\n" +
		`  \centering` + "\n" +
		`  \includegraphics[width=0.8\textwidth]{` + n.Target + "}\n" +
		`  \caption{` + n.Body() + "}\n" +
		`\end{figure}` + "\n"
}

func renderInlineMath(n *Node) string {
	return `\( ` + n.Raw + ` \)`
}

func renderDisplayMath(n *Node) string {
	return `\[` + n.Raw + `\]` + "\n"
}

func renderBlockMath(n *Node) string {
	return `\[` + "\n" + n.Raw + "\n" + `\]` + "\n"
}

func renderRawHTML(n *Node) string {
	if n.Block {
		text := htmlBlockText(n.Raw)
		if text == "" {
			return ""
		}
		return Escape(text) + "\n\n"
	}
	return inlineHTMLToTeX(n.Raw)
}
