package latex

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// NewMarkdown returns a goldmark instance configured for LaTeX output:
// GFM tables, strikethrough, bare-URL links and the math syntaxes.
// Each call builds an independent instance; extra options are applied last.
func NewMarkdown(opts ...goldmark.Option) goldmark.Markdown {
	base := []goldmark.Option{
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			Math,
		),
	}
	return goldmark.New(append(base, opts...)...)
}
