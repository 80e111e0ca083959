package latex

// Kind tags a node of the rendered document.
type Kind int

// Node kinds. The set is closed: every value below kindCount has a rule.
const (
	KindText Kind = iota
	KindParagraph
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindCodeSpan
	KindLink
	KindHeading
	KindThematicBreak
	KindList
	KindListItem
	KindBlockCode
	KindBlockQuote
	KindImage
	KindTable
	KindTableHead
	KindTableBody
	KindTableRow
	KindTableCell
	KindInlineMath
	KindDisplayMath
	KindBlockMath
	KindRawHTML

	kindCount
)

var kindNames = [kindCount]string{
	KindText:          "text",
	KindParagraph:     "paragraph",
	KindEmphasis:      "emphasis",
	KindStrong:        "strong",
	KindStrikethrough: "strikethrough",
	KindCodeSpan:      "code-span",
	KindLink:          "link",
	KindHeading:       "heading",
	KindThematicBreak: "thematic-break",
	KindList:          "list",
	KindListItem:      "list-item",
	KindBlockCode:     "block-code",
	KindBlockQuote:    "block-quote",
	KindImage:         "image",
	KindTable:         "table",
	KindTableHead:     "table-head",
	KindTableBody:     "table-body",
	KindTableRow:      "table-row",
	KindTableCell:     "table-cell",
	KindInlineMath:    "inline-math",
	KindDisplayMath:   "display-math",
	KindBlockMath:     "block-math",
	KindRawHTML:       "raw-html",
}

// String returns the kind's name, e.g. "code-span".
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}
