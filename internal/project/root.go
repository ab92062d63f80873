package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindMicaToml walks up from startDir to locate mica.toml.
func FindMicaToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "mica.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing mica.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindMicaToml(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// LoadForDir finds and parses the manifest governing startDir. ok is false
// when no mica.toml exists up the tree; that is not an error.
func LoadForDir(startDir string) (m *Manifest, root string, ok bool, err error) {
	manifestPath, ok, err := FindMicaToml(startDir)
	if err != nil || !ok {
		return nil, "", ok, err
	}
	m, err = LoadManifest(manifestPath)
	if err != nil {
		return nil, "", true, err
	}
	return m, filepath.Dir(manifestPath), true, nil
}
