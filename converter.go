package md2tex

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/alnah/go-md2tex/internal/assets"
	"github.com/alnah/go-md2tex/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.TeXConverter         = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TemplateSource       = (*assets.AssetResolver)(nil)
)

// assembler fills the skeleton; *pipeline.Assembler implements it.
type assembler interface {
	Assemble(templateName string, fm pipeline.FrontMatter, body string) (string, error)
}

// Converter orchestrates the markdown-to-LaTeX conversion pipeline.
// A Converter is safe for concurrent use: every Convert call parses with a
// fresh goldmark instance.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.MarkdownPreprocessor
	texConverter pipeline.TeXConverter
	assembler    assembler
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithAssetPath, WithResolveLanguages).
// Returns error if the asset path is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{now: time.Now},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.texConverter == nil {
		c.texConverter = pipeline.NewGoldmarkConverter(c.cfg.resolveLanguages)
	}

	if c.assembler == nil {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assembler = pipeline.NewAssembler(resolver)
	}

	if _, err := resolveDefaultDate(c.cfg.defaultDate, c.cfg.now()); err != nil {
		return nil, err
	}

	return c, nil
}

// Convert runs the full pipeline and returns the assembled document.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	template := input.Template
	if template == "" {
		template = DefaultTemplate
	}

	// Preprocess markdown
	content := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	now := c.cfg.now()
	fm, body, err := pipeline.SplitFrontMatter(content, now)
	if err != nil {
		return nil, err
	}
	if err := c.applyDefaults(&fm, now); err != nil {
		return nil, err
	}

	// Convert to LaTeX
	tex, err := c.texConverter.ToTeX(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("converting to LaTeX: %w", err)
	}

	doc, err := c.assembler.Assemble(template, fm, tex)
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}

	return &ConvertResult{
		TeX:  []byte(doc),
		Body: tex,
		Metadata: Metadata{
			Title:    fm.Title,
			Subtitle: fm.Subtitle,
			Author:   fm.Author,
			Date:     fm.Date,
			Fields:   maps.Clone(fm.Fields),
		},
		Template: template,
	}, nil
}

// applyDefaults fills author and date from the converter options when the
// front matter leaves them unset.
func (c *Converter) applyDefaults(fm *pipeline.FrontMatter, now time.Time) error {
	if fm.Fields == nil {
		fm.Fields = map[string]string{}
	}
	if _, ok := fm.Get("author"); !ok && c.cfg.defaultAuthor != "" {
		fm.Author = c.cfg.defaultAuthor
		fm.Fields["author"] = fm.Author
	}
	if _, ok := fm.Get("date"); !ok && c.cfg.defaultDate != "" {
		date, err := resolveDefaultDate(c.cfg.defaultDate, now)
		if err != nil {
			return err
		}
		fm.Date = date
		fm.Fields["date"] = date
	}
	return nil
}
