package assets

import (
	"fmt"
)

// MaxAssetNameLength bounds template and skeleton names.
const MaxAssetNameLength = 64

// ValidateAssetName checks that an asset name is safe both as a filename and
// as the argument of \documentclass. Only ASCII letters, digits, '-' and '_'
// are accepted, which rules out separators, dots and LaTeX special characters.
// Returns ErrInvalidAssetName otherwise.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidAssetName, MaxAssetNameLength)
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}
