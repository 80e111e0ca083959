package md2tex

import (
	"fmt"
	"time"

	"github.com/alnah/go-md2tex/internal/assets"
	"github.com/alnah/go-md2tex/internal/dateutil"
)

// DefaultTemplate is the class used when Input.Template is empty.
const DefaultTemplate = "matnoble"

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content with optional front matter (required)
	Template string // Class name and header set (default: DefaultTemplate)
}

// Validate checks that the template name is safe to use as a class name.
func (in Input) Validate() error {
	if in.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if in.Template == "" {
		return nil
	}
	if err := assets.ValidateAssetName(in.Template); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return nil
}

// Metadata is the front matter that filled the skeleton.
type Metadata struct {
	Title    string
	Subtitle string
	Author   string
	Date     string
	Fields   map[string]string // All scalar keys, lower-cased with "-" as "_"
}

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	TeX      []byte   // Complete document
	Body     string   // Rendered Markdown body only
	Metadata Metadata // Front matter after defaults
	Template string   // Template actually used
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	assetPath        string
	resolveLanguages bool
	defaultAuthor    string
	defaultDate      string
	now              func() time.Time
}

// WithAssetPath loads skeletons and header templates from dir first,
// falling back to the embedded assets.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithResolveLanguages maps fenced code info words to listings language
// names and drops the ones listings cannot highlight.
func WithResolveLanguages(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.resolveLanguages = enabled
	}
}

// WithDefaultAuthor sets the author for documents whose front matter has none.
func WithDefaultAuthor(author string) Option {
	return func(c *Converter) {
		c.cfg.defaultAuthor = author
	}
}

// WithDefaultDate sets the date for documents whose front matter has none.
// Accepts "auto", "auto:FORMAT" or a literal value.
func WithDefaultDate(date string) Option {
	return func(c *Converter) {
		c.cfg.defaultDate = date
	}
}

// withClock overrides the time source for "auto" dates (tests only).
func withClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}

// resolveDefaultDate expands an "auto" default date against now.
func resolveDefaultDate(value string, now time.Time) (string, error) {
	if value == "" {
		return "", nil
	}
	d, err := dateutil.Resolve(value, now)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return d, nil
}
