package hints

// Notes:
// - ForToolchainNotFound tests cannot use t.Parallel() because they modify the
//   package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through the variable.

import (
	"strings"
	"testing"
)

func TestForToolchainNotFound_Host(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	hint := ForToolchainNotFound("latexmk")

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint %q missing prefix", hint)
	}
	if !strings.Contains(hint, "TeX Live") || !strings.Contains(hint, "latexmk") {
		t.Errorf("hint %q should name the distribution and binary", hint)
	}
}

func TestForToolchainNotFound_InDocker(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	hint := ForToolchainNotFound("xelatex")

	if !strings.Contains(hint, "texlive-xetex") {
		t.Errorf("hint %q should name container packages", hint)
	}
}

func TestForCompileFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		template    string
		classCopied bool
		wantClass   bool
	}{
		{"class missing", "matnoble", false, true},
		{"class copied", "matnoble", true, false},
		{"no template", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForCompileFailure(tt.template, tt.classCopied)
			if got := strings.Contains(hint, ".cls"); got != tt.wantClass {
				t.Errorf("class hint present = %v, want %v: %q", got, tt.wantClass, hint)
			}
			if !strings.Contains(hint, ".log") {
				t.Errorf("hint %q should point at the log", hint)
			}
			if strings.Count(hint, "hint:") != 1 {
				t.Errorf("hints should be joined into one line: %q", hint)
			}
		})
	}
}

func TestForTimeout(t *testing.T) {
	t.Parallel()

	if !strings.Contains(ForTimeout(), "--timeout") {
		t.Error("expected --timeout suggestion")
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{"suggests config flag", nil, "--config"},
		{"suggests user config path", []string{"md2tex.yaml", "/home/u/.config/go-md2tex/md2tex.yaml"}, "or create /home/u/.config/go-md2tex/md2tex.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ForConfigNotFound(tt.paths); !strings.Contains(got, tt.contains) {
				t.Errorf("ForConfigNotFound() = %q, want containing %q", got, tt.contains)
			}
		})
	}
}

func TestForOutputDirectory(t *testing.T) {
	t.Parallel()

	if !strings.Contains(ForOutputDirectory(), "writable") {
		t.Error("expected writable hint")
	}
}

func TestForTemplateNotFound(t *testing.T) {
	t.Parallel()

	if got := ForTemplateNotFound(nil); got != "" {
		t.Errorf("ForTemplateNotFound(nil) = %q, want empty", got)
	}
	got := ForTemplateNotFound([]string{"matnoble", "matnoble-teaching"})
	if !strings.Contains(got, "available: matnoble, matnoble-teaching") {
		t.Errorf("ForTemplateNotFound() = %q", got)
	}
}

func TestForUnauthorized(t *testing.T) {
	t.Parallel()

	if !strings.Contains(ForUnauthorized(), "Bearer") {
		t.Error("expected bearer token hint")
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	if format("") != "" {
		t.Error("empty hint should format to empty string")
	}
	if formatHints(nil) != "" {
		t.Error("no hints should format to empty string")
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
