package assets

import (
	"fmt"

	"github.com/alnah/go-md2tex/internal/yamlutil"
)

// TemplateSet holds the per-template pieces of a document.
type TemplateSet struct {
	Name       string      // Identifier (template name)
	Header     string      // Title block template
	Directives []Directive // Front matter keys emitted as preamble commands, in order
}

// Directive maps a front matter key to a one-argument preamble command.
// A value "Algebra" under key "course" with command "course" yields \course{Algebra}.
type Directive struct {
	Key     string `yaml:"key"`
	Command string `yaml:"command"`
}

// DefaultTemplateSetName is the template set used when a template has none.
const DefaultTemplateSetName = "default"

// DefaultSkeletonName is the name of the built-in document skeleton.
const DefaultSkeletonName = "article"

type directivesFile struct {
	Directives []Directive `yaml:"directives"`
}

// parseDirectives decodes a directives.yaml document.
func parseDirectives(data []byte) ([]Directive, error) {
	var f directivesFile
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirectives, err)
	}
	for i, d := range f.Directives {
		if d.Key == "" {
			return nil, fmt.Errorf("%w: directive %d has no key", ErrInvalidDirectives, i)
		}
		if !isCommandName(d.Command) {
			return nil, fmt.Errorf("%w: directive %q: command %q must be ASCII letters", ErrInvalidDirectives, d.Key, d.Command)
		}
	}
	return f.Directives, nil
}

// isCommandName reports whether s is a valid LaTeX control word.
func isCommandName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
