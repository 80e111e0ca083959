package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadSkeleton loads a skeleton by name using the default embedded loader.
// Returns ErrSkeletonNotFound if the skeleton does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadSkeleton(name string) (string, error) {
	return defaultLoader.LoadSkeleton(name)
}

// LoadTemplateSet loads a template set by name using the default embedded loader.
// Returns ErrTemplateSetNotFound if the template set does not exist.
// Returns ErrIncompleteTemplateSet if header.tex is missing.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(name)
}
