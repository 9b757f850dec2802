package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/waymark/annotate/pkg/core"
)

func writeIcon(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".png"), data, 0o644); err != nil {
		t.Fatalf("writing icon fixture: %v", err)
	}
}

func TestIcon_LoadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeIcon(t, dir, "tent", []byte("png-bytes"))

	l := NewLoader(dir)

	data, err := l.Icon("tent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected icon bytes: %q", data)
	}

	// Second load comes from the cache even if the file disappears.
	os.Remove(filepath.Join(dir, "tent.png"))
	if _, err := l.Icon("tent"); err != nil {
		t.Errorf("expected cached load, got %v", err)
	}
	if l.Cached() != 1 {
		t.Errorf("expected 1 cached icon, got %d", l.Cached())
	}
}

func TestIcon_Missing(t *testing.T) {
	l := NewLoader(t.TempDir())

	_, err := l.Icon("nope")
	if !errors.Is(err, core.ErrAssetLoad) {
		t.Errorf("expected ErrAssetLoad, got %v", err)
	}
}

func TestIcon_RejectsPathTraversal(t *testing.T) {
	l := NewLoader(t.TempDir())

	for _, name := range []string{"", "../etc/passwd", "a/b"} {
		if _, err := l.Icon(name); !errors.Is(err, core.ErrAssetLoad) {
			t.Errorf("Icon(%q): expected ErrAssetLoad, got %v", name, err)
		}
	}
}
