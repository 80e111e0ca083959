package md2tex

import (
	"errors"

	"github.com/alnah/go-md2tex/internal/pipeline"
	"github.com/alnah/go-md2tex/internal/resources"
	"github.com/alnah/go-md2tex/internal/toolchain"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrInvalidTemplate  = errors.New("invalid template name")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidDate      = errors.New("invalid default date")

	// Pipeline stage errors.
	ErrConversion  = pipeline.ErrTeXConversion
	ErrFrontMatter = pipeline.ErrFrontMatter
	ErrAssemble    = pipeline.ErrAssemble

	// Build errors.
	ErrCompile           = toolchain.ErrCompile
	ErrCompileTimeout    = toolchain.ErrCompileTimeout
	ErrToolchainNotFound = toolchain.ErrToolchainNotFound
	ErrCopyResource      = resources.ErrCopyResource
)
