package latex

import "strings"

// escaper replaces every reserved character in one pass over the input.
// strings.Replacer never rescans its own output, so the backslashes it inserts
// are not escaped again.
var escaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`\`, `\textbackslash{}`,
)

// Escape returns text with the LaTeX reserved characters replaced by their
// escape sequences. It is meant for literal text only: formulas, verbatim
// bodies and paths must not go through it.
func Escape(text string) string {
	return escaper.Replace(text)
}
