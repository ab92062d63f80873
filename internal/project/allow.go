package project

import (
	"path/filepath"
	"strings"
)

// AllowList restricts which files may be read and rewritten. Paths are
// resolved against the project root at construction time.
type AllowList struct {
	roots []string
}

// NewAllowList builds an allow list from the given directories. Relative
// entries are resolved against baseDir. An empty list allows everything.
func NewAllowList(baseDir string, dirs []string) *AllowList {
	al := &AllowList{}
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		al.roots = append(al.roots, filepath.Clean(dir))
	}
	return al
}

// Empty reports whether the list has no entries and therefore allows all.
func (al *AllowList) Empty() bool {
	return al == nil || len(al.roots) == 0
}

// Allowed reports whether path lies under one of the allowed directories.
func (al *AllowList) Allowed(path string) bool {
	if al.Empty() {
		return true
	}
	clean := filepath.Clean(path)
	for _, root := range al.roots {
		if pathWithin(root, clean) {
			return true
		}
	}
	return false
}

// Roots returns the resolved allowed directories.
func (al *AllowList) Roots() []string {
	if al == nil {
		return nil
	}
	return al.roots
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
