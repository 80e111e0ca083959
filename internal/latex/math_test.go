package latex

import "testing"

// ---------------------------------------------------------------------------
// TestMathParser - Delimiter Scanning
// ---------------------------------------------------------------------------

func TestMathParser_Opens(t *testing.T) {
	t.Parallel()

	inline := &mathParser{}
	display := &mathParser{display: true}

	tests := []struct {
		line        string
		wantInline  bool
		wantDisplay bool
	}{
		{"$x$", true, false},
		{"$$x$$", false, true},
		{"$", true, false},
		{"x$", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		if got := inline.opens([]byte(tt.line)); got != tt.wantInline {
			t.Errorf("inline.opens(%q) = %v, want %v", tt.line, got, tt.wantInline)
		}
		if got := display.opens([]byte(tt.line)); got != tt.wantDisplay {
			t.Errorf("display.opens(%q) = %v, want %v", tt.line, got, tt.wantDisplay)
		}
	}
}

func TestMathParser_Closing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		display bool
		line    string
		want    int
	}{
		{"inline first delimiter", false, "ab$cd$", 2},
		{"inline none", false, "abc", -1},
		{"inline closes before a following delimiter", false, "a$$", 1},
		{"inline escaped delimiter skipped", false, `a\$b$`, 4},
		{"display needs pair", true, "a$b$$", 3},
		{"display single only", true, "a$b", -1},
		{"display escaped pair skipped", true, `\$$x$$`, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &mathParser{display: tt.display}
			if got := p.closing([]byte(tt.line)); got != tt.want {
				t.Errorf("closing(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsMathFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"$$\n", true},
		{"  $$  \n", true},
		{"$$", true},
		{"$$x$$\n", false},
		{"$\n", false},
		{"$$$\n", false},
	}

	for _, tt := range tests {
		if got := isMathFence([]byte(tt.line)); got != tt.want {
			t.Errorf("isMathFence(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
