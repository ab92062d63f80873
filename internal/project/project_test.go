package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "mica.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[project]
name = "exchange"

[upgrade]
accept-safe = true
allow-paths = ["contracts", "lib"]
short-log = true
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Project.Name != "exchange" {
		t.Errorf("name = %q", m.Project.Name)
	}
	if !m.Upgrade.AcceptSafe || m.Upgrade.AcceptUnsafe {
		t.Errorf("gates = %+v", m.Upgrade)
	}
	if len(m.Upgrade.AllowPaths) != 2 {
		t.Errorf("allow-paths = %v", m.Upgrade.AllowPaths)
	}
	if !m.Upgrade.ShortLog {
		t.Error("short-log not read")
	}
}

func TestLoadManifestRejectsUnknownKeys(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[upgrade]
acept-safe = true
`)
	if _, err := LoadManifest(path); err == nil {
		t.Error("misspelled key accepted")
	}
}

func TestLoadManifestRejectsBlankName(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[project]
name = "  "
`)
	if _, err := LoadManifest(path); err == nil {
		t.Error("blank project name accepted")
	}
}

func TestFindMicaTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"p\"\n")
	nested := filepath.Join(root, "contracts", "core")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindMicaToml(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want under %q", path, root)
	}

	m, projRoot, ok, err := LoadForDir(nested)
	if err != nil || !ok {
		t.Fatalf("LoadForDir: ok=%v err=%v", ok, err)
	}
	if projRoot != root || m.Project.Name != "p" {
		t.Errorf("root=%q name=%q", projRoot, m.Project.Name)
	}
}

func TestFindMicaTomlAbsent(t *testing.T) {
	_, ok, err := FindMicaToml(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("found a manifest in an empty temp dir")
	}
}

func TestAllowList(t *testing.T) {
	base := t.TempDir()
	al := NewAllowList(base, []string{"contracts", ""})
	if al.Empty() {
		t.Fatal("list with entries reported empty")
	}
	if !al.Allowed(filepath.Join(base, "contracts", "token.mica")) {
		t.Error("path under allowed dir rejected")
	}
	if al.Allowed(filepath.Join(base, "scripts", "x.mica")) {
		t.Error("path outside allowed dirs accepted")
	}
	// префикс имени каталога не означает вложенность
	if al.Allowed(filepath.Join(base, "contracts-extra", "x.mica")) {
		t.Error("sibling dir with shared prefix accepted")
	}

	empty := NewAllowList(base, nil)
	if !empty.Allowed("/anything/at/all.mica") {
		t.Error("empty allow list must allow everything")
	}
}
