package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed mica.toml of a project. Every field is optional;
// command-line flags override whatever the manifest sets.
type Manifest struct {
	Project ProjectSection `toml:"project"`
	Upgrade UpgradeSection `toml:"upgrade"`
}

// ProjectSection describes the [project] table.
type ProjectSection struct {
	Name string `toml:"name"`
}

// UpgradeSection describes the [upgrade] table: default acceptance gates
// and the directories input units may come from.
type UpgradeSection struct {
	AcceptSafe    bool     `toml:"accept-safe"`
	AcceptUnsafe  bool     `toml:"accept-unsafe"`
	AllowPaths    []string `toml:"allow-paths"`
	IgnoreMissing bool     `toml:"ignore-missing"`
	ShortLog      bool     `toml:"short-log"`
}

// LoadManifest parses a mica.toml file. Unknown keys are rejected so a
// typo in a gate name cannot silently widen what gets rewritten.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("project", "name") && strings.TrimSpace(m.Project.Name) == "" {
		return nil, fmt.Errorf("%s: [project].name must not be blank", path)
	}
	return &m, nil
}
