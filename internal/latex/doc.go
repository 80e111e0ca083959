// Package latex renders a goldmark document tree to LaTeX source.
//
// The renderer is a strict post-order fold: every child is reduced to its final
// LaTeX text before the parent's rule runs. Rules live in a fixed table indexed
// by Kind, so every kind has exactly one rule and nothing falls back to plain text.
//
// Two inline extensions recognize formulas that CommonMark does not know about:
//
//	$$ ... $$   display formula, tried first
//	$ ... $     inline formula
//
// A block-level form, a line holding only "$$" up to a closing "$$" line,
// renders to the same display environment.
//
// Literal text is escaped with Escape. Formula content, code-block bodies,
// URLs, image paths and code language tags are emitted unescaped.
package latex
