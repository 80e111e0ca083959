package latex

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// listingsLanguages maps lower-cased chroma lexer names to the language
// names the listings package ships drivers for.
var listingsLanguages = map[string]string{
	"ada":         "Ada",
	"awk":         "Awk",
	"bash":        "bash",
	"c":           "C",
	"c++":         "C++",
	"cobol":       "Cobol",
	"common lisp": "Lisp",
	"delphi":      "Delphi",
	"erlang":      "erlang",
	"fortran":     "Fortran",
	"gnuplot":     "Gnuplot",
	"haskell":     "Haskell",
	"html":        "HTML",
	"java":        "Java",
	"lua":         "Lua",
	"makefile":    "make",
	"mathematica": "Mathematica",
	"matlab":      "Matlab",
	"ocaml":       "Caml",
	"octave":      "Octave",
	"perl":        "Perl",
	"php":         "PHP",
	"postscript":  "PostScript",
	"prolog":      "Prolog",
	"python":      "Python",
	"r":           "R",
	"ruby":        "Ruby",
	"scilab":      "Scilab",
	"sql":         "SQL",
	"tcl":         "tcl",
	"tex":         "TeX",
	"vhdl":        "VHDL",
	"verilog":     "Verilog",
	"xml":         "XML",
}

// ResolveLanguage maps a fenced-code info word to a listings language name.
// Aliases are resolved through chroma's lexer registry ("py" becomes
// "Python"). It returns "" when listings has no driver for the language.
func ResolveLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	name := strings.ToLower(tag)
	if lexer := lexers.Get(tag); lexer != nil {
		name = strings.ToLower(lexer.Config().Name)
	}
	return listingsLanguages[name]
}
