// Package assets loads marker icon images from disk. Icons are small
// and immutable for the life of the process, so loads are cached behind
// a mutex keyed by icon name.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/waymark/annotate/pkg/core"
)

// Loader resolves icon names to image bytes.
type Loader struct {
	dir string

	mu    sync.Mutex
	cache map[string][]byte
}

// NewLoader creates a loader reading from the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string][]byte),
	}
}

// Icon returns the image bytes for an icon name. The name maps to
// <dir>/<name>.png; path separators in the name are rejected so a
// stored icon name can never escape the icon directory.
func (l *Loader) Icon(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("%w: invalid icon name %q", core.ErrAssetLoad, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if data, ok := l.cache[name]; ok {
		return data, nil
	}

	path := filepath.Join(l.dir, name+".png")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrAssetLoad, path, err)
	}

	l.cache[name] = data
	return data, nil
}

// Cached returns the number of cached icons. Test helper.
func (l *Loader) Cached() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}
