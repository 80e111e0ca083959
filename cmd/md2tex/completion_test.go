package main

// Notes:
// - GenerateCompletion: we check each generator emits its shell's entry
//   point plus every command name; the scripts themselves are not executed.
// - extractFlagsFromFlagSet: we verify metadata drives enum, file and
//   directory completion types.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion - Per-shell scripts
// ---------------------------------------------------------------------------

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell Shell
		want  []string
	}{
		{ShellBash, []string{"_md2tex()", "complete -o filenames -F _md2tex md2tex", "matnoble-teaching"}},
		{ShellZsh, []string{"#compdef md2tex", "_describe", "_arguments"}},
		{ShellFish, []string{"complete -c md2tex", "__fish_use_subcommand", "-l template"}},
		{ShellPowerShell, []string{"Register-ArgumentCompleter", "-CommandName md2tex"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
			for _, cmd := range commands {
				if !strings.Contains(out, cmd) {
					t.Errorf("%s script missing command %q", tt.shell, cmd)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("tcsh"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for unsupported shell", buf.Len())
	}
}

// ---------------------------------------------------------------------------
// TestExtractFlagsFromFlagSet - Completion metadata
// ---------------------------------------------------------------------------

func TestExtractFlagsFromFlagSet(t *testing.T) {
	t.Parallel()

	fs := newConvertFlagSet("convert", &convertFlags{})
	flags := extractFlagsFromFlagSet(fs)

	byName := map[string]flagDef{}
	for _, f := range flags {
		byName[f.Long] = f
	}

	tests := []struct {
		name  string
		short string
		typ   flagType
	}{
		{"template", "t", flagEnum},
		{"config", "c", flagFile},
		{"output", "o", flagDir},
		{"workers", "w", flagInt},
		{"compile", "", flagBool},
		{"author", "", flagString},
	}

	for _, tt := range tests {
		f, ok := byName[tt.name]
		if !ok {
			t.Errorf("flag --%s missing", tt.name)
			continue
		}
		if f.Type != tt.typ {
			t.Errorf("--%s type = %d, want %d", tt.name, f.Type, tt.typ)
		}
		if f.Short != tt.short {
			t.Errorf("--%s short = %q, want %q", tt.name, f.Short, tt.short)
		}
	}

	if !slices.Equal(byName["template"].Values, []string{"matnoble", "matnoble-teaching"}) {
		t.Errorf("template values = %v", byName["template"].Values)
	}
}

// ---------------------------------------------------------------------------
// TestGetCommands - Registry covers every command
// ---------------------------------------------------------------------------

func TestGetCommands(t *testing.T) {
	t.Parallel()

	names := commandNames(getCommands())
	for _, cmd := range commands {
		if !slices.Contains(names, cmd) {
			t.Errorf("command %q missing from completion registry", cmd)
		}
	}
}
