package md2tex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2tex/internal/toolchain"
)

type mockCompiler struct {
	compileCalls int
	cleanCalls   int
	result       toolchain.Result
	compileErr   error
	cleanErr     error
	writePDF     bool
}

func (m *mockCompiler) Compile(ctx context.Context, texPath string) (toolchain.Result, error) {
	m.compileCalls++
	if m.writePDF {
		_ = os.WriteFile(toolchain.PDFPath(texPath), []byte("%PDF"), 0o600)
	}
	return m.result, m.compileErr
}

func (m *mockCompiler) Clean(ctx context.Context, texPath string) (toolchain.Result, error) {
	m.cleanCalls++
	return toolchain.Result{}, m.cleanErr
}

func writeTeX(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notes.tex")
	if err := os.WriteFile(path, []byte(`\documentclass{article}`), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestBuilder_Build - Compile and Clean Modes
// ---------------------------------------------------------------------------

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("compile copies resources and reports PDF", func(t *testing.T) {
		t.Parallel()

		res := t.TempDir()
		for _, name := range []string{"matnoble.cls", "fig.png"} {
			if err := os.WriteFile(filepath.Join(res, name), []byte(name), 0o600); err != nil {
				t.Fatalf("setup: %v", err)
			}
		}
		tex := writeTeX(t)
		mc := &mockCompiler{writePDF: true, result: toolchain.Result{Stdout: "ok", Stderr: "warn"}}
		b := &Builder{compiler: mc}

		got, err := b.Build(context.Background(), tex, BuildOptions{
			ResourcesDir: res, Template: "matnoble", Compile: true,
		})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if !got.ClassCopied || len(got.Images) != 1 {
			t.Errorf("resources = class %v images %v", got.ClassCopied, got.Images)
		}
		if got.PDFPath != filepath.Join(filepath.Dir(tex), "notes.pdf") {
			t.Errorf("PDFPath = %q", got.PDFPath)
		}
		if got.Log != "ok\nwarn" {
			t.Errorf("Log = %q", got.Log)
		}
		if mc.cleanCalls != 0 || got.Cleaned {
			t.Error("clean ran without Clean")
		}
	})

	t.Run("compile then clean", func(t *testing.T) {
		t.Parallel()

		mc := &mockCompiler{}
		b := &Builder{compiler: mc}

		got, err := b.Build(context.Background(), writeTeX(t), BuildOptions{Compile: true, Clean: true})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if mc.compileCalls != 1 || mc.cleanCalls != 1 || !got.Cleaned {
			t.Errorf("calls compile=%d clean=%d cleaned=%v", mc.compileCalls, mc.cleanCalls, got.Cleaned)
		}
		if got.PDFPath != "" {
			t.Errorf("PDFPath = %q, want empty when no PDF was written", got.PDFPath)
		}
	})

	t.Run("clean only", func(t *testing.T) {
		t.Parallel()

		mc := &mockCompiler{}
		b := &Builder{compiler: mc}

		if _, err := b.Build(context.Background(), writeTeX(t), BuildOptions{Clean: true}); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if mc.compileCalls != 0 || mc.cleanCalls != 1 {
			t.Errorf("calls compile=%d clean=%d", mc.compileCalls, mc.cleanCalls)
		}
	})

	t.Run("neither is a no-op", func(t *testing.T) {
		t.Parallel()

		mc := &mockCompiler{}
		b := &Builder{compiler: mc}

		if _, err := b.Build(context.Background(), writeTeX(t), BuildOptions{}); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if mc.compileCalls != 0 || mc.cleanCalls != 0 {
			t.Errorf("calls compile=%d clean=%d", mc.compileCalls, mc.cleanCalls)
		}
	})

	t.Run("compile failure keeps intermediates", func(t *testing.T) {
		t.Parallel()

		mc := &mockCompiler{
			result:     toolchain.Result{ExitCode: 12, Stdout: "! LaTeX Error"},
			compileErr: toolchain.ErrCompile,
		}
		b := &Builder{compiler: mc}

		got, err := b.Build(context.Background(), writeTeX(t), BuildOptions{Compile: true, Clean: true})
		if !errors.Is(err, ErrCompile) {
			t.Fatalf("Build() error = %v, want ErrCompile", err)
		}
		if got.ExitCode != 12 || got.Log != "! LaTeX Error\n" {
			t.Errorf("result = %+v", got)
		}
		if mc.cleanCalls != 0 {
			t.Error("clean ran after a failed compile")
		}
	})

	t.Run("clean failure is not fatal", func(t *testing.T) {
		t.Parallel()

		mc := &mockCompiler{cleanErr: toolchain.ErrCompile}
		b := &Builder{compiler: mc}

		got, err := b.Build(context.Background(), writeTeX(t), BuildOptions{Compile: true, Clean: true})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got.Cleaned {
			t.Error("Cleaned = true after a failed clean")
		}
	})

	t.Run("missing toolchain on clean is reported", func(t *testing.T) {
		t.Parallel()

		mc := &mockCompiler{cleanErr: toolchain.ErrToolchainNotFound}
		b := &Builder{compiler: mc}

		_, err := b.Build(context.Background(), writeTeX(t), BuildOptions{Clean: true})
		if !errors.Is(err, ErrToolchainNotFound) {
			t.Errorf("Build() error = %v, want ErrToolchainNotFound", err)
		}
	})
}
