package upgrade

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteUnit atomically replaces the file at path with text: the bytes go
// to a temp file in the same directory first, then a rename swaps it in.
func WriteUnit(path string, text []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".micaup-*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(text); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteBack persists every modified unit of a finished run and returns the
// paths written, in unit order.
func (d *Driver) WriteBack() ([]string, error) {
	var written []string
	for _, u := range d.units {
		if string(u.Text) == string(d.original[u.Path]) {
			continue
		}
		if err := WriteUnit(u.Path, u.Text); err != nil {
			return written, err
		}
		written = append(written, u.Path)
	}
	return written, nil
}
