package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-md2tex/internal/latex"
)

// ErrTeXConversion indicates the Markdown body could not be rendered.
var ErrTeXConversion = errors.New("LaTeX conversion failed")

// TeXConverter abstracts Markdown to LaTeX body conversion.
type TeXConverter interface {
	ToTeX(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter renders Markdown to a LaTeX body with goldmark and the
// latex package rule table.
type GoldmarkConverter struct {
	opts latex.Options
}

// NewGoldmarkConverter creates a GoldmarkConverter.
// resolveLanguages maps fenced code info words to listings language names.
func NewGoldmarkConverter(resolveLanguages bool) *GoldmarkConverter {
	return &GoldmarkConverter{opts: latex.Options{ResolveLanguages: resolveLanguages}}
}

// ToTeX converts Markdown content to a LaTeX body fragment.
// Goldmark does not take a context, so the render runs in a goroutine and
// ToTeX returns ctx.Err() as soon as ctx is done. A cancelled render still
// runs to completion in the background; its result is discarded.
func (c *GoldmarkConverter) ToTeX(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		tex string
		err error
	}

	done := make(chan result, 1)

	go func() {
		tex, err := latex.Render([]byte(content), c.opts)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrTeXConversion, err)}
			return
		}
		done <- result{tex: tex}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.tex, r.err
	}
}

// Compile-time interface check.
var _ TeXConverter = (*GoldmarkConverter)(nil)
