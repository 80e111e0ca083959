package latex

// Notes:
// - Escape is total and single-pass; cases check that replacement output is
//   never re-escaped (a backslash becomes \textbackslash{} and its braces stay)

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEscape - Reserved Characters
// ---------------------------------------------------------------------------

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "hello world", "hello world"},
		{"empty string", "", ""},
		{"ampersand", "a & b", `a \& b`},
		{"percent", "100%", `100\%`},
		{"dollar", "$5", `\$5`},
		{"hash", "#1", `\#1`},
		{"underscore", "snake_case", `snake\_case`},
		{"braces", "{x}", `\{x\}`},
		{"tilde", "~", `\textasciitilde{}`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"backslash", `\`, `\textbackslash{}`},
		{"backslash before brace not doubled", `\{`, `\textbackslash{}\{`},
		{"every reserved character", `&%$#_{}~^\`, `\&\%\$\#\_\{\}\textasciitilde{}\textasciicircum{}\textbackslash{}`},
		{"utf-8 passes through", "数学 é", "数学 é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Escape(tt.input)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscape_NoBareSeparator(t *testing.T) {
	t.Parallel()

	inputs := []string{"a & b", "&&", " & ", "x&y & z"}
	for _, in := range inputs {
		if got := Escape(in); strings.Contains(got, cellSeparator) {
			t.Errorf("Escape(%q) = %q, contains bare cell separator", in, got)
		}
	}
}
