package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/alnah/go-md2tex/internal/assets"
)

// ErrAssemble indicates the document skeleton could not be filled.
var ErrAssemble = errors.New("document assembly failed")

// Fallbacks for metadata the front matter does not provide.
const (
	DefaultTitle       = "Untitled"
	DefaultHeaderTitle = "Untitled Document"
	DefaultAuthor      = "MatNoble"
	DefaultDate        = `\today`
)

// Template delimiters; {{ }} collides with LaTeX groups.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

// TemplateSource supplies skeletons and per-template header sets.
// *assets.AssetResolver satisfies it.
type TemplateSource interface {
	LoadSkeleton(name string) (string, error)
	LoadTemplateSetOrDefault(name string) (*assets.TemplateSet, error)
}

// headerData feeds a template set's header.tex.
type headerData struct {
	Title    string
	Subtitle string
	Author   string
	Date     string
}

// documentData feeds the skeleton.
type documentData struct {
	DocClass      string
	Title         string
	Author        string
	Date          string
	ExtraPreamble string
	Header        string
	Content       string
}

// Assembler fills the document skeleton with the rendered body and metadata.
type Assembler struct {
	source   TemplateSource
	skeleton string
}

// NewAssembler creates an Assembler reading the default skeleton from source.
func NewAssembler(source TemplateSource) *Assembler {
	return &Assembler{source: source, skeleton: assets.DefaultSkeletonName}
}

// Assemble builds a complete .tex document.
// templateName is both the \documentclass argument and the template set
// that provides the header and preamble directives; unknown names use the
// default set. Metadata values are inserted without escaping.
// Trailing newlines of body are dropped; \end{document} follows on the next line.
func (a *Assembler) Assemble(templateName string, fm FrontMatter, body string) (string, error) {
	skeleton, err := a.source.LoadSkeleton(a.skeleton)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}
	set, err := a.source.LoadTemplateSetOrDefault(templateName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}

	header, err := execute("header", set.Header, headerData{
		Title:    valueOr(fm, "title", DefaultHeaderTitle),
		Subtitle: fm.Subtitle,
		Author:   valueOr(fm, "author", DefaultAuthor),
		Date:     valueOr(fm, "date", DefaultDate),
	})
	if err != nil {
		return "", err
	}

	return execute("skeleton", skeleton, documentData{
		DocClass:      templateName,
		Title:         valueOr(fm, "title", DefaultTitle),
		Author:        valueOr(fm, "author", DefaultAuthor),
		Date:          valueOr(fm, "date", DefaultDate),
		ExtraPreamble: preamble(set.Directives, fm),
		Header:        strings.TrimSpace(header),
		Content:       strings.TrimRight(body, "\n"),
	})
}

// preamble emits \command{value} for each directive whose key is set, in
// directive order.
func preamble(directives []assets.Directive, fm FrontMatter) string {
	lines := make([]string, 0, len(directives))
	for _, d := range directives {
		if v, ok := fm.Get(d.Key); ok {
			lines = append(lines, `\`+d.Command+"{"+v+"}")
		}
	}
	return strings.Join(lines, "\n")
}

// valueOr returns the front matter value for key, or fallback when unset.
func valueOr(fm FrontMatter, key, fallback string) string {
	if v, ok := fm.Get(key); ok {
		return v
	}
	return fallback
}

func execute(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Delims(leftDelim, rightDelim).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", ErrAssemble, name, err)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: executing %s: %v", ErrAssemble, name, err)
	}
	return buf.String(), nil
}
