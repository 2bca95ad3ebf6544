package tex2html

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-tex2html/internal/fileutil"
)

// FileResolver supplies source files for one compile pass, keyed by
// basename. The snapshot is read-only for the duration of the pass; caller
// mutations during a pass are not observed.
type FileResolver interface {
	Lookup(name string) (content string, ok bool)
	Names() []string
}

// AssetResolver supplies binary assets (images) for one compile pass. It may
// be queried with or without an extension.
type AssetResolver interface {
	Lookup(name string) (data []byte, ok bool)
	Names() []string
}

// MapFiles is a map-backed FileResolver.
type MapFiles map[string]string

// Lookup returns the content registered under name.
func (m MapFiles) Lookup(name string) (string, bool) {
	content, ok := m[name]
	return content, ok
}

// Names returns the registered basenames in sorted order.
func (m MapFiles) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MapAssets is a map-backed AssetResolver.
type MapAssets map[string][]byte

// Lookup returns the data registered under name.
func (m MapAssets) Lookup(name string) ([]byte, bool) {
	data, ok := m[name]
	return data, ok
}

// Names returns the registered basenames in sorted order.
func (m MapAssets) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile-time interface checks.
var (
	_ FileResolver  = (MapFiles)(nil)
	_ AssetResolver = (MapAssets)(nil)
)

// SnapshotDir reads a directory (non-recursive) into map-backed resolvers:
// .tex files become sources, image files become assets, everything else is
// ignored. The returned maps are a snapshot; later filesystem changes are
// not reflected.
func SnapshotDir(dir string) (MapFiles, MapAssets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSnapshotPath, err)
	}

	files := MapFiles{}
	assets := MapAssets{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		full := filepath.Join(dir, name)
		switch {
		case strings.EqualFold(filepath.Ext(name), ".tex"):
			data, err := os.ReadFile(full) // #nosec G304 -- caller-provided directory
			if err != nil {
				return nil, nil, fmt.Errorf("reading source %q: %w", name, err)
			}
			files[name] = string(data)
		case fileutil.HasImageExt(name):
			data, err := os.ReadFile(full) // #nosec G304 -- caller-provided directory
			if err != nil {
				return nil, nil, fmt.Errorf("reading asset %q: %w", name, err)
			}
			assets[name] = data
		}
	}
	return files, assets, nil
}
