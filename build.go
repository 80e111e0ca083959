package md2tex

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/resources"
	"github.com/alnah/go-md2tex/internal/toolchain"
)

// Compile-time interface implementation check.
var _ compiler = (*toolchain.Latexmk)(nil)

// compiler runs the TeX toolchain; *toolchain.Latexmk implements it.
type compiler interface {
	Compile(ctx context.Context, texPath string) (toolchain.Result, error)
	Clean(ctx context.Context, texPath string) (toolchain.Result, error)
}

// BuildOptions configures a Build.
type BuildOptions struct {
	ResourcesDir string // Directory holding <Template>.cls and images (optional)
	Template     string // Class name selecting the .cls file to copy
	Compile      bool   // Run latexmk
	Clean        bool   // Remove latexmk intermediates after a successful compile
}

// BuildResult reports what a Build did.
type BuildResult struct {
	PDFPath     string        // Set when a PDF exists after compiling
	Log         string        // Combined latexmk output (stdout, newline, stderr)
	ExitCode    int           // latexmk exit status
	Duration    time.Duration // Time spent in latexmk
	ClassCopied bool          // A <Template>.cls was copied next to the .tex file
	Images      []string      // Copied images
	Cleaned     bool          // Intermediates were removed
}

// Builder copies resources next to a .tex file and typesets it.
type Builder struct {
	compiler compiler
}

// NewBuilder creates a Builder running latexmk with the given timeout
// (zero means no limit).
func NewBuilder(timeout time.Duration) *Builder {
	return &Builder{compiler: toolchain.NewLatexmk(timeout)}
}

// Build prepares and optionally compiles texPath.
//
// Resources are copied first; a missing resources directory is skipped.
// With Compile set, latexmk runs in the .tex file's directory; a failure
// returns ErrCompile with the log in the result and keeps the
// intermediates. With Clean set, intermediates are removed after a
// successful compile, or right away when Compile is not set.
func (b *Builder) Build(ctx context.Context, texPath string, opts BuildOptions) (*BuildResult, error) {
	res := &BuildResult{}

	if opts.Compile {
		report, err := resources.Copy(opts.ResourcesDir, filepath.Dir(texPath), opts.Template)
		res.ClassCopied = report.ClassCopied()
		res.Images = report.Images
		if err != nil {
			return res, err
		}

		out, err := b.compiler.Compile(ctx, texPath)
		res.Log = out.Log()
		res.ExitCode = out.ExitCode
		res.Duration = out.Duration
		if err != nil {
			return res, err
		}
		if pdf := toolchain.PDFPath(texPath); fileutil.FileExists(pdf) {
			res.PDFPath = pdf
		}
	}

	if opts.Clean {
		if _, err := b.compiler.Clean(ctx, texPath); err != nil {
			// Cleaning is cosmetic; only a missing toolchain is worth reporting.
			if errors.Is(err, ErrToolchainNotFound) || ctx.Err() != nil {
				return res, err
			}
			return res, nil
		}
		res.Cleaned = true
	}

	return res, nil
}
