package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/alnah/go-md2tex/internal/fileutil"
)

// Sentinel errors for toolchain runs.
var (
	ErrToolchainNotFound = errors.New("TeX toolchain not found")
	ErrCompile           = errors.New("LaTeX compilation failed")
	ErrCompileTimeout    = errors.New("LaTeX compilation timed out")
	ErrEmptyTeXPath      = errors.New("tex path cannot be empty")
)

// Binaries the toolchain depends on.
const (
	LatexmkBinary = "latexmk"
	EngineBinary  = "xelatex"
)

// compileArgs drive xelatex through latexmk's pdf mode.
var compileArgs = []string{"-pdf", "-pdflatex=" + EngineBinary + " %O %S", "-interaction=nonstopmode"}

// Result holds the outcome of a latexmk run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Log returns the combined output as stdout, a newline, then stderr.
func (r Result) Log() string {
	return r.Stdout + "\n" + r.Stderr
}

// Latexmk compiles .tex files with latexmk and xelatex.
type Latexmk struct {
	Runner  CommandRunner
	Binary  string        // Defaults to LatexmkBinary
	Timeout time.Duration // Zero means no limit
}

// NewLatexmk creates a Latexmk with a real command runner.
func NewLatexmk(timeout time.Duration) *Latexmk {
	return &Latexmk{Runner: &ExecRunner{}, Binary: LatexmkBinary, Timeout: timeout}
}

// Compile typesets texPath in its own directory, where latexmk writes the
// PDF and the intermediates. A non-zero exit returns ErrCompile together
// with the Result carrying the full log.
func (l *Latexmk) Compile(ctx context.Context, texPath string) (Result, error) {
	args := append(append([]string{}, compileArgs...), filepath.Base(texPath))
	return l.run(ctx, texPath, args)
}

// Clean removes latexmk intermediates for texPath, keeping the PDF.
func (l *Latexmk) Clean(ctx context.Context, texPath string) (Result, error) {
	return l.run(ctx, texPath, []string{"-c", filepath.Base(texPath)})
}

// PDFPath returns where Compile writes the PDF for texPath.
func PDFPath(texPath string) string {
	return fileutil.ReplaceExt(texPath, ".pdf")
}

func (l *Latexmk) run(ctx context.Context, texPath string, args []string) (Result, error) {
	if texPath == "" {
		return Result{}, ErrEmptyTeXPath
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	binary := l.Binary
	if binary == "" {
		binary = LatexmkBinary
	}

	start := time.Now()
	stdout, stderr, err := l.Runner.Run(ctx, filepath.Dir(texPath), binary, args...)
	result := Result{Stdout: stdout, Stderr: stderr, Duration: time.Since(start)}
	if err == nil {
		return result, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return result, fmt.Errorf("%w: %v", ErrToolchainNotFound, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return result, fmt.Errorf("%w after %s", ErrCompileTimeout, l.Timeout)
		}
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, fmt.Errorf("%w with exit code %d", ErrCompile, result.ExitCode)
	}
	return result, fmt.Errorf("%w: %v", ErrCompile, err)
}

// Check reports the resolved paths of latexmk and the xelatex engine.
// A missing binary is returned as ErrToolchainNotFound naming it.
func Check() (map[string]string, error) {
	found := make(map[string]string, 2)
	for _, bin := range []string{LatexmkBinary, EngineBinary} {
		path, err := exec.LookPath(bin)
		if err != nil {
			return found, fmt.Errorf("%w: %s not in PATH", ErrToolchainNotFound, bin)
		}
		found[bin] = path
	}
	return found, nil
}
