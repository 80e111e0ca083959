package main

// Notes:
// - isCommand / looksLikeMarkdown: we test name and extension matching.
// - runMain: we test dispatch and exit codes end to end with an injected
//   environment. Conversions use the real converter and a mock builder,
//   so no TeX installation is needed.
// - serve and watch block until canceled and are covered by their own tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	md2tex "github.com/alnah/go-md2tex"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// mockBuilder records Build calls and returns a fixed outcome.
type mockBuilder struct {
	result *md2tex.BuildResult
	err    error
	calls  int
	opts   md2tex.BuildOptions
}

func (m *mockBuilder) Build(_ context.Context, _ string, opts md2tex.BuildOptions) (*md2tex.BuildResult, error) {
	m.calls++
	m.opts = opts
	if m.result == nil {
		return &md2tex.BuildResult{}, m.err
	}
	return m.result, m.err
}

// testEnv returns an environment writing to buffers.
func testEnv(builder Builder) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:     func() time.Time { return time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC) },
		Stdout:  &stdout,
		Stderr:  &stderr,
		Builder: builder,
	}, &stdout, &stderr
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"convert", true},
		{"serve", true},
		{"watch", true},
		{"templates", true},
		{"doctor", true},
		{"completion", true},
		{"version", true},
		{"help", true},
		{"foo", false},
		{"", false},
		{"doc.md", false},
		{"Convert", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeMarkdown - Markdown file extension detection
// ---------------------------------------------------------------------------

func TestLooksLikeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"doc.md", true},
		{"doc.markdown", true},
		{"/path/to/doc.md", true},
		{"doc.tex", false},
		{"doc", false},
		{"", false},
		{"md.txt", false},
		{"file.MD", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := looksLikeMarkdown(tt.input); got != tt.want {
				t.Errorf("looksLikeMarkdown(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"md2tex"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: md2tex"},
		},
		{
			name:         "version",
			args:         []string{"md2tex", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"md2tex " + Version},
		},
		{
			name:         "help",
			args:         []string{"md2tex", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2tex", "Commands:", "serve"},
		},
		{
			name:         "help convert",
			args:         []string{"md2tex", "help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2tex convert", "--compile"},
		},
		{
			name:         "help unknown",
			args:         []string{"md2tex", "help", "nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Unknown command: nope"},
		},
		{
			name:         "unknown command",
			args:         []string{"md2tex", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:     "markdown path defaults to convert",
			args:     []string{"md2tex", "nonexistent.md"},
			wantCode: ExitIO,
		},
		{
			name:     "convert nonexistent",
			args:     []string{"md2tex", "convert", "nonexistent.md"},
			wantCode: ExitIO,
		},
		{
			name:     "convert wrong extension",
			args:     []string{"md2tex", "convert", "main.go"},
			wantCode: ExitUsage,
		},
		{
			name:     "convert no input",
			args:     []string{"md2tex", "convert"},
			wantCode: ExitIO,
		},
		{
			name:     "bad flag",
			args:     []string{"md2tex", "convert", "--bogus"},
			wantCode: ExitUsage,
		},
		{
			name:     "convert -h",
			args:     []string{"md2tex", "convert", "-h"},
			wantCode: ExitSuccess,
		},
		{
			name:     "negative workers",
			args:     []string{"md2tex", "convert", "-w", "-1", "x.md"},
			wantCode: ExitUsage,
		},
		{
			name:     "bad timeout",
			args:     []string{"md2tex", "convert", "--timeout", "soon", "x.md"},
			wantCode: ExitUsage,
		},
		{
			name:     "unsupported shell",
			args:     []string{"md2tex", "completion", "badshell"},
			wantCode: ExitUsage,
		},
		{
			name:         "completion bash",
			args:         []string{"md2tex", "completion", "bash"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"complete -o filenames -F _md2tex md2tex"},
		},
		{
			name:     "missing config",
			args:     []string{"md2tex", "convert", "--config", "does-not-exist", "x.md"},
			wantCode: ExitUsage,
		},
		{
			name:     "serve with argument",
			args:     []string{"md2tex", "serve", "extra"},
			wantCode: ExitUsage,
		},
		{
			name:     "serve bad log level",
			args:     []string{"md2tex", "serve", "--log-level", "loud", "--build-dir", os.TempDir()},
			wantCode: ExitUsage,
		},
		{
			name:         "serve hash token",
			args:         []string{"md2tex", "serve", "--hash-token", "s3cret"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"$2a$"},
		},
		{
			name:     "watch without file",
			args:     []string{"md2tex", "watch"},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(&mockBuilder{})
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - End-to-end conversion through the CLI
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	t.Run("single file to resources dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		res := filepath.Join(dir, "doc")
		input := writeFile(t, dir, "notes.md", "---\ntitle: Notes\n---\n# Intro\n\nCost 5 & more, $x^2$.\n")

		env, stdout, stderr := testEnv(nil)
		code := runMain([]string{"md2tex", "convert", input, "--resources", res}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}

		out := filepath.Join(res, "notes.tex")
		tex, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		for _, want := range []string{`\documentclass{matnoble}`, `\section{Intro}`, `\( x^2 \)`, `Notes`} {
			if !strings.Contains(string(tex), want) {
				t.Errorf("output missing %q", want)
			}
		}
		if !strings.Contains(stdout.String(), "Created "+out) {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("directory batch with explicit output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "in")
		writeFile(t, in, "a.md", "# A\n")
		writeFile(t, in, "sub/b.markdown", "# B\n")
		writeFile(t, in, "skip.txt", "not markdown")
		out := filepath.Join(dir, "out")

		env, stdout, stderr := testEnv(nil)
		code := runMain([]string{"md2tex", in, "-o", out, "-w", "2", "-t", "matnoble-teaching"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		for _, p := range []string{filepath.Join(out, "a.tex"), filepath.Join(out, "sub", "b.tex")} {
			data, err := os.ReadFile(p)
			if err != nil {
				t.Errorf("missing %s: %v", p, err)
				continue
			}
			if !strings.Contains(string(data), `\documentclass{matnoble-teaching}`) {
				t.Errorf("%s has wrong class", p)
			}
		}
		if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("compile failure maps to toolchain exit code", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "bad.md", "# Bad\n")
		builder := &mockBuilder{
			result: &md2tex.BuildResult{Log: "! LaTeX Error: File `matnoble.cls' not found.", ExitCode: 12},
			err:    md2tex.ErrCompile,
		}

		env, _, stderr := testEnv(builder)
		code := runMain([]string{"md2tex", input, "-o", dir, "--compile", "--resources", filepath.Join(dir, "doc")}, env)
		if code != ExitToolchain {
			t.Fatalf("exit = %d, want %d; stderr: %s", code, ExitToolchain, stderr.String())
		}
		if !builder.opts.Compile || builder.opts.Template != md2tex.DefaultTemplate {
			t.Errorf("build options = %+v", builder.opts)
		}
		for _, want := range []string{"matnoble.cls' not found", "hint:"} {
			if !strings.Contains(stderr.String(), want) {
				t.Errorf("stderr missing %q:\n%s", want, stderr.String())
			}
		}
	})

	t.Run("front matter error maps to general exit code", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "broken.md", "---\ntitle: [oops\n---\nbody\n")

		env, _, stderr := testEnv(nil)
		code := runMain([]string{"md2tex", input, "-o", dir}, env)
		if code != ExitGeneral {
			t.Errorf("exit = %d, want %d; stderr: %s", code, ExitGeneral, stderr.String())
		}
		if fileExists(filepath.Join(dir, "broken.tex")) {
			t.Error("no output should be written on conversion failure")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunTemplates - Class listing command
// ---------------------------------------------------------------------------

func TestRunTemplates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "matnoble.cls", "%")
	writeFile(t, dir, "report.cls", "%")

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		if code := runMain([]string{"md2tex", "templates", "--resources", dir}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if got := stdout.String(); got != "* matnoble\n  report\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		if code := runMain([]string{"md2tex", "templates", "--resources", dir, "--json"}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if !strings.Contains(stdout.String(), `"report"`) {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("missing dir", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", "templates", "--resources", filepath.Join(dir, "none")}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if !strings.Contains(stderr.String(), "No .cls files") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
