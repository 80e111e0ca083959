package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown files to LaTeX (default)")
	fmt.Fprintln(w, "  watch       Re-convert a file whenever it changes")
	fmt.Fprintln(w, "  serve       Run the HTTP job service")
	fmt.Fprintln(w, "  templates   List available document classes")
	fmt.Fprintln(w, "  doctor      Check the TeX toolchain and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2tex help <command>' for details on a specific command.")
}

// printConvertFlags prints the flags shared by convert and watch.
func printConvertFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .tex file or directory (default: resources dir)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "  -t, --template <name>     Document class and header set (default: matnoble)")
	fmt.Fprintln(w, "      --resources <dir>     Directory with .cls files and images (default: doc)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom skeletons and template sets")
	fmt.Fprintln(w, "      --resolve-lang        Map code block tags to listings language names")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --author <s>          Author when front matter has none")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Toolchain:")
	fmt.Fprintln(w, "      --compile             Run latexmk (xelatex) on the output")
	fmt.Fprintln(w, "      --clean               Remove latexmk intermediates")
	fmt.Fprintln(w, "      --timeout <d>         latexmk timeout (e.g., 90s, 5m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to LaTeX, optionally typesetting them.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printConvertFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex watch <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file, then convert it again on every save.")
	fmt.Fprintln(w, "Stop with Ctrl+C.")
	fmt.Fprintln(w)
	printConvertFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP job service.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  GET  /api/templates       Class names found in the resources dir")
	fmt.Fprintln(w, "  POST /api/render          {content, template, compile} -> job result")
	fmt.Fprintln(w, "  GET  /build/<job>/<file>  Job artifacts")
	fmt.Fprintln(w, "  GET  /healthz             Liveness probe")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Service:")
	fmt.Fprintln(w, "  -l, --listen <addr>       Listen address (default: :8000)")
	fmt.Fprintln(w, "      --build-dir <dir>     Root of job work areas (default: build)")
	fmt.Fprintln(w, "      --max-jobs <n>        Work areas kept (default: 20, 0 = keep all)")
	fmt.Fprintln(w, "      --web-dir <dir>       Static frontend served at /")
	fmt.Fprintln(w, "      --token-hash <hash>   bcrypt hash of the bearer token for /api/render")
	fmt.Fprintln(w, "      --hash-token <token>  Print the hash to use with --token-hash and exit")
	fmt.Fprintln(w, "      --log-level <level>   debug, info, warn, error (default: info)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "  -t, --template <name>     Template used when a request names none")
	fmt.Fprintln(w, "      --resources <dir>     Directory with .cls files and images (default: doc)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom skeletons and template sets")
	fmt.Fprintln(w, "      --resolve-lang        Map code block tags to listings language names")
	fmt.Fprintln(w, "      --timeout <d>         latexmk timeout per job")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "templates":
		printTemplatesUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2tex doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check latexmk, xelatex and the working environment.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2tex version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2tex help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
