package history

import (
	"bytes"
	"fmt"
	"os"
)

// Restore writes the original text of every unit in the entry back to
// disk. Unless force is set, a unit whose current content no longer
// matches what the run produced is refused, so later manual edits are not
// silently destroyed. Returns the restored paths.
func Restore(entry *Entry, force bool) ([]string, error) {
	if entry == nil {
		return nil, nil
	}

	if !force {
		for _, u := range entry.Units {
			current, err := os.ReadFile(u.Path)
			if err != nil {
				return nil, fmt.Errorf("undo %s: %w", u.Path, err)
			}
			if !bytes.Equal(current, u.Upgraded) {
				return nil, fmt.Errorf("undo %s: file changed since the upgrade, use --force to restore anyway", u.Path)
			}
		}
	}

	var restored []string
	for _, u := range entry.Units {
		if err := os.WriteFile(u.Path, u.Original, 0o644); err != nil {
			return restored, fmt.Errorf("undo %s: %w", u.Path, err)
		}
		restored = append(restored, u.Path)
	}
	return restored, nil
}
