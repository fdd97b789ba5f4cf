package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is a plain filename.
// Returns ErrInvalidAssetName if the name is empty, contains path
// separators, or starts with a dot.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
