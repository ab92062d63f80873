package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\r\nb\rc\n"))
	if string(got) != "a\nb\rc\n" {
		t.Fatalf("normalizeCRLF = %q", got)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}

	got, changed = normalizeCRLF([]byte("plain\n"))
	if string(got) != "plain\n" || changed {
		t.Fatalf("normalizeCRLF on plain input = %q, changed=%v", got, changed)
	}
}

func TestRemoveBOM(t *testing.T) {
	got, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if string(got) != "x" || !had {
		t.Fatalf("removeBOM = %q, had=%v", got, had)
	}
	got, had = removeBOM([]byte("xy"))
	if string(got) != "xy" || had {
		t.Fatalf("removeBOM on short input = %q, had=%v", got, had)
	}
}

func TestToLineCol(t *testing.T) {
	idx := buildLineIndex([]byte("ab\ncd\nef"))
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам перевод строки ещё на первой строке
		{3, LineCol{Line: 2, Col: 1}}, // первый байт после перевода строки
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 3, Col: 3}},
	}
	for _, c := range cases {
		if got := toLineCol(idx, c.off); got != c.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", c.off, got, c.want)
		}
	}
	// файл без переводов строки
	if got := toLineCol(nil, 4); (got != LineCol{Line: 1, Col: 5}) {
		t.Errorf("toLineCol on one-line file = %+v", got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.mica")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want, err := AbsolutePath(target)
	if err != nil {
		t.Fatalf("AbsolutePath returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}

	target := filepath.Join(baseDir, "nested", "file.mica")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(filepath.Join("nested", "file.mica"))
	if got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}
