package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	flag "github.com/spf13/pflag"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/hints"
	"github.com/alnah/go-md2tex/internal/resources"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWriteTeX       = errors.New("failed to write LaTeX file")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrUsage          = errors.New("invalid usage")
)

// Converter turns Markdown into a complete .tex document.
type Converter interface {
	Convert(ctx context.Context, input md2tex.Input) (*md2tex.ConvertResult, error)
}

// Builder typesets a generated .tex file.
type Builder interface {
	Build(ctx context.Context, texPath string, opts md2tex.BuildOptions) (*md2tex.BuildResult, error)
}

// Compile-time interface implementation checks.
var (
	_ Converter = (*md2tex.Converter)(nil)
	_ Builder   = (*md2tex.Builder)(nil)
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	template     string
	resourcesDir string
	compile      bool
	clean        bool
}

// build reports whether latexmk runs at all.
func (p *conversionParams) build() bool {
	return p.compile || p.clean
}

// usageError marks flag parsing failures as usage errors.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return withConfigHint(err, flags.common.config)
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeoutWithEnv(flags.build.timeout, envCfg.Timeout, cfg.Compile.Timeout)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	builder := resolveBuilder(env, timeout)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	params := &conversionParams{
		template:     cfg.Template.Name,
		resourcesDir: cfg.Resources.Dir,
		compile:      cfg.Compile.Enabled,
		clean:        cfg.Compile.Clean,
	}
	if params.compile && !flags.common.quiet {
		warnMissingClass(env.Stderr, params)
	}

	poolSize := resolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	results := convertBatch(ctx, poolSize, files, conv, builder, params)

	summary := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if len(results) == 1 {
		return summary.FirstErr
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", summary.Failed, summary.FirstErr)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	mergeBuildFlags(&flags.build, cfg)
	mergeDocumentFlags(&flags.document, cfg)

	if flags.build.compile {
		cfg.Compile.Enabled = true
	}
	if flags.build.clean {
		cfg.Compile.Clean = true
	}
}

// mergeBuildFlags applies the template and resource flags.
func mergeBuildFlags(f *buildFlags, cfg *config.Config) {
	if f.template != "" {
		cfg.Template.Name = f.template
	}
	if f.resources != "" {
		cfg.Resources.Dir = f.resources
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.resolveLang {
		cfg.Template.ResolveLanguages = true
	}
}

// mergeDocumentFlags applies the metadata fallback flags.
func mergeDocumentFlags(f *documentFlags, cfg *config.Config) {
	if f.author != "" {
		cfg.Document.Author = f.author
	}
	if f.date != "" {
		cfg.Document.Date = f.date
	}
}

// newConverter builds the library converter from the merged config.
func newConverter(cfg *config.Config) (*md2tex.Converter, error) {
	return md2tex.NewConverter(
		md2tex.WithAssetPath(cfg.Assets.BasePath),
		md2tex.WithResolveLanguages(cfg.Template.ResolveLanguages),
		md2tex.WithDefaultAuthor(cfg.Document.Author),
		md2tex.WithDefaultDate(cfg.Document.Date),
	)
}

// resolveBuilder returns the injected builder or the latexmk one.
func resolveBuilder(env *Environment, timeout time.Duration) Builder {
	if env.Builder != nil {
		return env.Builder
	}
	return md2tex.NewBuilder(timeout)
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output location from flag or config.
// Without either, output goes to the resources directory so the class
// file and doc/ images resolve without copying.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir
	}
	return cfg.Resources.Dir
}

// warnMissingClass warns when the resources directory has no class file
// for the template; latexmk would stop at \documentclass.
func warnMissingClass(w io.Writer, params *conversionParams) {
	available, err := resources.ListClasses(params.resourcesDir)
	if err != nil || slices.Contains(available, params.template) {
		return
	}
	fmt.Fprintf(w, "warning: %s.cls not found in %s%s\n",
		params.template, params.resourcesDir, hints.ForTemplateNotFound(available))
}

// withConfigHint appends the config lookup hint to not-found errors.
func withConfigHint(err error, name string) error {
	if !errors.Is(err, config.ErrConfigNotFound) || name == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
}
