package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed skeletons/*
var skeletons embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadSkeleton loads a document skeleton from embedded assets by name.
// The name should not include the .tex extension.
func (e *EmbeddedLoader) LoadSkeleton(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := skeletons.ReadFile("skeletons/" + name + ".tex")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrSkeletonNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads a template set from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := "templates/" + name
	if _, err := fs.Stat(templates, dir); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}

	header, err := templates.ReadFile(dir + "/header.tex")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrIncompleteTemplateSet, name)
	}

	ts := &TemplateSet{Name: name, Header: string(header)}

	data, err := templates.ReadFile(dir + "/directives.yaml")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ts, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if ts.Directives, err = parseDirectives(data); err != nil {
		return nil, err
	}

	return ts, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
