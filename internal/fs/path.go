package fs

import "path/filepath"

// ResolveFrom returns path unchanged when it is absolute, otherwise joined to base.
func ResolveFrom(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
