// Package imageindex maps lowercased image basenames to the files found in a
// flat image directory.
package imageindex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Index is immutable after Build. Keys iterate in scan order: extension
// allow-list order first, then lexical filename order.
type Index struct {
	keys  []string
	files map[string]string
}

// Build scans dir for regular, non-hidden files ending in one of extensions.
// Extension matching is case-sensitive.
func Build(dir string, extensions []string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, ext := range extensions {
		suffix := "." + ext
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			if strings.HasSuffix(name, suffix) {
				names = append(names, name)
			}
		}
	}

	return FromFilenames(names), nil
}

// FromFilenames indexes names in the given order. A later name whose key is
// already present replaces the filename but keeps the key's position.
func FromFilenames(names []string) *Index {
	index := &Index{
		keys:  make([]string, 0, len(names)),
		files: make(map[string]string, len(names)),
	}
	for _, name := range names {
		key := Key(name)
		if _, exists := index.files[key]; !exists {
			index.keys = append(index.keys, key)
		}
		index.files[key] = name
	}
	return index
}

// Key returns the lowercased filename without its extension.
func Key(filename string) string {
	return strings.ToLower(strings.TrimSuffix(filename, filepath.Ext(filename)))
}

// Normalize drops spaces and underscores.
func Normalize(value string) string {
	return strings.NewReplacer(" ", "", "_", "").Replace(value)
}

func (i *Index) Len() int {
	return len(i.keys)
}

// Lookup matches key exactly against the stored keys.
func (i *Index) Lookup(key string) (string, bool) {
	file, ok := i.files[key]
	return file, ok
}

// LookupNormalized returns the first key, in iteration order, equal to key
// once both sides are normalized.
func (i *Index) LookupNormalized(key string) (string, bool) {
	target := Normalize(key)
	for _, candidate := range i.keys {
		if Normalize(candidate) == target {
			return i.files[candidate], true
		}
	}
	return "", false
}
