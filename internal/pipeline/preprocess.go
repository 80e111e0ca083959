package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// byteOrderMark is stripped from the start of the input.
const byteOrderMark = "\uFEFF"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before parsing.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines collapses runs of blank lines into one, except inside
// fenced code blocks and $$ math blocks, whose bodies are emitted verbatim.
func compressBlankLines(content string) string {
	if !strings.Contains(content, "\n\n\n") {
		return content
	}

	lines := strings.SplitAfter(content, "\n")
	var out strings.Builder
	out.Grow(len(content))

	var chunk strings.Builder
	flush := func() {
		out.WriteString(multipleBlankLines.ReplaceAllString(chunk.String(), "\n\n"))
		chunk.Reset()
	}

	var fence string // active fence marker, empty outside verbatim blocks
	for _, line := range lines {
		marker := fenceMarker(line)
		switch {
		case fence == "" && marker != "":
			chunk.WriteString(line)
			flush()
			fence = marker
		case fence != "":
			if closesFence(line, fence) {
				chunk.WriteString(line)
				fence = ""
				continue
			}
			out.WriteString(line)
		default:
			chunk.WriteString(line)
		}
	}
	flush()
	return out.String()
}

// fenceMarker returns the fence that line opens, or "" when it opens none.
// Recognizes ``` and ~~~ runs (three or more) and a bare $$ line, each
// indented by at most three spaces.
func fenceMarker(line string) string {
	trimmed := strings.TrimRight(line, " \t\n")
	indent := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
	if indent > 3 {
		return ""
	}
	trimmed = trimmed[indent:]

	if trimmed == "$$" {
		return "$$"
	}
	for _, c := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == c {
			n++
		}
		if n >= 3 {
			if c == '`' && strings.ContainsRune(trimmed[n:], '`') {
				return ""
			}
			return trimmed[:n]
		}
	}
	return ""
}

// closesFence reports whether line closes a block opened with fence.
func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if fence == "$$" {
		return trimmed == "$$"
	}
	if len(trimmed) < len(fence) || trimmed[0] != fence[0] {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}
