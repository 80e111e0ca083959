package assets

import (
	"errors"
	"testing"
)

func TestLoadSkeleton(t *testing.T) {
	t.Parallel()

	if _, err := LoadSkeleton(DefaultSkeletonName); err != nil {
		t.Errorf("LoadSkeleton(%q) error = %v", DefaultSkeletonName, err)
	}
	if _, err := LoadSkeleton("nonexistent"); !errors.Is(err, ErrSkeletonNotFound) {
		t.Errorf("LoadSkeleton(nonexistent) error = %v, want ErrSkeletonNotFound", err)
	}
}

func TestLoadTemplateSet(t *testing.T) {
	t.Parallel()

	if _, err := LoadTemplateSet(DefaultTemplateSetName); err != nil {
		t.Errorf("LoadTemplateSet(%q) error = %v", DefaultTemplateSetName, err)
	}
	if _, err := LoadTemplateSet("../x"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTemplateSet(../x) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestParseDirectives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    int
		wantErr error
	}{
		{"valid", "directives:\n  - key: course\n    command: course\n", 1, nil},
		{"empty list", "directives: []\n", 0, nil},
		{"missing key", "directives:\n  - command: course\n", 0, ErrInvalidDirectives},
		{"missing command", "directives:\n  - key: course\n", 0, ErrInvalidDirectives},
		{"digit in command", "directives:\n  - key: a\n    command: a1\n", 0, ErrInvalidDirectives},
		{"malformed yaml", "directives: [\n", 0, ErrInvalidDirectives},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseDirectives([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("parseDirectives() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDirectives() unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
