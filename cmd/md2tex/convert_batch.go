package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/hints"
	"github.com/alnah/go-md2tex/internal/toolchain"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// MaxWorkers bounds --workers; each worker may run its own latexmk.
const MaxWorkers = 16

// Compile log output on failure.
const (
	logTailLines     = 40
	defaultWrapWidth = 100
	minWrapWidth     = 40
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string
	Size       int                 // Bytes of LaTeX written
	Build      *md2tex.BuildResult // Set when latexmk ran
	Err        error
	Duration   time.Duration
}

// resolvePoolSize determines the worker count.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0) / 2
	return min(max(n, 1), 8)
}

// convertBatch processes files concurrently with size workers.
// Results keep the order of files.
func convertBatch(ctx context.Context, size int, files []FileToConvert, conv Converter, builder Builder, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(size, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, builder, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, builder Builder, f FileToConvert, params *conversionParams) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}

	res, err := conv.Convert(ctx, md2tex.Input{Markdown: string(content), Template: params.template})
	if err != nil {
		result.Err = err
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: creating output directory: %v%s", ErrWriteTeX, err, hints.ForOutputDirectory())
		return result
	}
	// #nosec G306 -- LaTeX sources are meant to be readable
	if err := fileutil.WriteAtomic(f.OutputPath, res.TeX, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteTeX, err)
		return result
	}
	result.Size = len(res.TeX)

	if !params.build() {
		return result
	}

	build, err := builder.Build(ctx, f.OutputPath, md2tex.BuildOptions{
		ResourcesDir: params.resourcesDir,
		Template:     res.Template,
		Compile:      params.compile,
		Clean:        params.clean,
	})
	result.Build = build
	if build != nil {
		result.PDFPath = build.PDFPath
	}
	if err != nil {
		result.Err = withBuildHint(err, res.Template, build)
	}
	return result
}

// withBuildHint appends an actionable hint to toolchain errors.
func withBuildHint(err error, template string, build *md2tex.BuildResult) error {
	switch {
	case errors.Is(err, md2tex.ErrToolchainNotFound):
		return fmt.Errorf("%w%s", err, hints.ForToolchainNotFound(toolchain.LatexmkBinary))
	case errors.Is(err, md2tex.ErrCompileTimeout):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, md2tex.ErrCompile):
		copied := build != nil && build.ClassCopied
		return fmt.Errorf("%w%s", err, hints.ForCompileFailure(template, copied))
	}
	return err
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	FirstErr  error
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			if summary.FirstErr == nil {
				summary.FirstErr = r.Err
			}
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Single-file failures are left to the caller, which prints the returned error.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			if r.Build != nil && errors.Is(r.Err, md2tex.ErrCompile) {
				printCompileLog(env.Stderr, r.Build.Log)
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %s)\n",
				r.InputPath, r.OutputPath, humanize.Bytes(uint64(r.Size)), formatDuration(r.Duration))
			if r.Build != nil && r.Build.Duration > 0 {
				fmt.Fprintf(env.Stdout, "  latexmk: %s\n", formatDuration(r.Build.Duration))
			}
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.PDFPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.PDFPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%s succeeded, %s failed\n",
			humanize.Comma(int64(summary.Succeeded)), humanize.Comma(int64(summary.Failed)))
	}

	return summary
}

// formatDuration renders d with SI prefixes ("12.5 ms", "3.2 s").
func formatDuration(d time.Duration) string {
	return humanize.SIWithDigits(d.Seconds(), 1, "s")
}

// printCompileLog writes the tail of a latexmk log, wrapped to the
// terminal width.
func printCompileLog(w io.Writer, log string) {
	log = strings.TrimSpace(log)
	if log == "" {
		return
	}

	lines := strings.Split(log, "\n")
	if len(lines) > logTailLines {
		fmt.Fprintf(w, "... %d earlier log lines omitted\n", len(lines)-logTailLines)
		lines = lines[len(lines)-logTailLines:]
	}
	fmt.Fprintln(w, wordwrap.String(strings.Join(lines, "\n"), termWidth(w)))
}

// termWidth returns the width of w when it is a terminal.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWrapWidth
	}
	fd := int(f.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return defaultWrapWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < minWrapWidth {
		return defaultWrapWidth
	}
	return width
}
