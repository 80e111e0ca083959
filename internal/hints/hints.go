// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-md2tex/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForToolchainNotFound returns hints for a missing latexmk or xelatex binary.
// Inside a container the package names are suggested instead of installers.
func ForToolchainNotFound(binary string) string {
	if IsInContainer() {
		return format("install latexmk and texlive-xetex in the image (" + binary + " not in PATH)")
	}
	return format("install TeX Live or MiKTeX and make sure " + binary + " is in PATH; run 'md2tex doctor'")
}

// ForCompileFailure returns hints for a failed latexmk run.
// The class file is the most common missing piece.
func ForCompileFailure(template string, classCopied bool) string {
	var hints []string
	if !classCopied && template != "" {
		hints = append(hints, "no "+template+".cls was copied; pass --resources with the directory holding it")
	}
	hints = append(hints, "the full log is in the .log file next to the .tex output")
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2tex/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2tex") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateNotFound returns hints listing the templates that do exist.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnauthorized returns the hint sent with a rejected service request.
func ForUnauthorized() string {
	return format("send the token as 'Authorization: Bearer <token>'")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
