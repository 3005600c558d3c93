package assets

import "path/filepath"

// Roots resolves relative asset references against the configured
// directories. Absolute references are used as given.
type Roots struct {
	Images string
	Fonts  string
}

// Image resolves an image reference
func (r Roots) Image(ref string) string {
	return join(r.Images, ref)
}

// Font resolves a font reference
func (r Roots) Font(ref string) string {
	return join(r.Fonts, ref)
}

func join(root, ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(root, ref)
}
