package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds metadata fallbacks for files without front matter.
type documentFlags struct {
	author string
	date   string
}

// buildFlags holds template, resource and toolchain flags.
type buildFlags struct {
	template    string
	resources   string
	assetPath   string
	resolveLang bool
	compile     bool
	clean       bool
	timeout     string
}

// convertFlags holds all flags for the convert and watch commands.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	document documentFlags
	build    buildFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	listen    string
	buildDir  string
	maxJobs   int
	webDir    string
	logLevel  string
	tokenHash string
	hashToken string
	document  documentFlags
	build     buildFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds metadata fallback flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.author, "author", "", "author when front matter has none")
	fs.StringVar(&f.date, "date", "", "date when front matter has none (\"auto\", \"auto:FORMAT\" or literal)")
}

// addTemplateFlags adds the template and resource flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.template, "template", "t", "", "document class and header set (default \"matnoble\")")
	fs.StringVar(&f.resources, "resources", "", "directory with .cls files and images (default \"doc\")")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (skeletons, template sets)")
	fs.BoolVar(&f.resolveLang, "resolve-lang", false, "map code block tags to listings language names")
	fs.StringVar(&f.timeout, "timeout", "", "latexmk timeout (e.g., 90s, 5m)")
}

// addToolchainFlags adds the latexmk switches to a FlagSet.
func addToolchainFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.BoolVar(&f.compile, "compile", false, "run latexmk on the generated file")
	fs.BoolVar(&f.clean, "clean", false, "remove latexmk intermediates")
}

// newConvertFlagSet registers the convert flags into a new FlagSet.
// Completion reuses it so flag definitions live in one place.
func newConvertFlagSet(name string, f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output .tex file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addTemplateFlags(fs, &f.build)
	addToolchainFlags(fs, &f.build)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet("convert", f)
	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags; they match convert's.
func parseWatchFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet("watch", f)
	fs.SetOutput(usage)
	fs.Usage = func() { printWatchUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// newServeFlagSet registers the serve flags into a new FlagSet.
func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)

	fs.StringVarP(&f.listen, "listen", "l", "", "listen address (default \":8000\")")
	fs.StringVar(&f.buildDir, "build-dir", "", "root of job work areas (default \"build\")")
	fs.IntVar(&f.maxJobs, "max-jobs", -1, "work areas kept by the retention sweep (0 = keep all)")
	fs.StringVar(&f.webDir, "web-dir", "", "static frontend served at /")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&f.tokenHash, "token-hash", "", "bcrypt hash of the bearer token guarding /api/render")
	fs.StringVar(&f.hashToken, "hash-token", "", "print the bcrypt hash of a token and exit")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addTemplateFlags(fs, &f.build)
	return fs
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newServeFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printServeUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}
