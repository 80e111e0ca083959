package latex

// Notes:
// - The separator-count fallback is deliberately kept; the formula case
//   documents its known blind spot rather than asserting a fix

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestColumnSpec - Alignment Letters and Fallback
// ---------------------------------------------------------------------------

func TestColumnSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		align    []Alignment
		firstRow string
		want     string
	}{
		{
			name:  "declared alignments",
			align: []Alignment{AlignLeft, AlignCenter, AlignRight},
			want:  "lcr",
		},
		{
			name:     "declared alignments win over row",
			align:    []Alignment{AlignRight},
			firstRow: "a & b \\\\\n",
			want:     "r",
		},
		{
			name:     "fallback counts separators",
			firstRow: "a & b & c \\\\\n\\hline\n",
			want:     "lll",
		},
		{
			name:     "fallback single column",
			firstRow: "a \\\\\n",
			want:     "l",
		},
		{
			name:     "escaped ampersand is not a separator",
			firstRow: `Q\&A & b \\` + "\n",
			want:     "ll",
		},
		{
			name:     "unescaped formula content inflates the count",
			firstRow: `\( a & b \) & c \\` + "\n",
			want:     "lll",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ColumnSpec(tt.align, tt.firstRow)
			if got != tt.want {
				t.Errorf("ColumnSpec() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTableRules - Row Reconstruction
// ---------------------------------------------------------------------------

func TestTableRow_StripsOneSeparator(t *testing.T) {
	t.Parallel()

	cells := []string{
		apply(&Node{Kind: KindTableCell, Children: []string{"a"}}),
		apply(&Node{Kind: KindTableCell, Children: []string{"b"}}),
		apply(&Node{Kind: KindTableCell}),
	}
	got := apply(&Node{Kind: KindTableRow, Children: cells})
	want := "a & b &  \\\\\n"
	if got != want {
		t.Errorf("row = %q, want %q", got, want)
	}
}

func TestTableHead_AddsDivider(t *testing.T) {
	t.Parallel()

	got := apply(&Node{Kind: KindTableHead, Children: []string{"a & ", "b & "}})
	want := "a & b \\\\\n\\hline\n"
	if got != want {
		t.Errorf("head = %q, want %q", got, want)
	}
}

func TestTable_Layout(t *testing.T) {
	t.Parallel()

	head := "a & b \\\\\n\\hline\n"
	body := "1 & 2 \\\\\n"
	got := apply(&Node{Kind: KindTable, Children: []string{head, body}})
	want := "\\begin{center}\n" +
		"\\begin{tabular}{ll}\n" +
		"\\hline\n" +
		head + body +
		"\\hline\n" +
		"\\end{tabular}\n" +
		"\\end{center}\n"
	if got != want {
		t.Errorf("table =\n%s\nwant\n%s", got, want)
	}
	if strings.Count(got, `\hline`) != 3 {
		t.Errorf("expected 3 rules, got %d", strings.Count(got, `\hline`))
	}
}
