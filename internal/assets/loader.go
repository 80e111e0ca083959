package assets

// AssetLoader defines the contract for loading skeletons and template sets.
type AssetLoader interface {
	// LoadSkeleton loads a document skeleton by name (without .tex extension).
	// Returns ErrSkeletonNotFound if the skeleton doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadSkeleton(name string) (string, error)

	// LoadTemplateSet loads the header and directives of a template.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
