// Package scan discovers eligible source files beneath an input root.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ListSources walks rootDir recursively and returns every file whose
// extension matches ext (case-insensitive, leading dot included). Hidden
// entries are skipped and hidden directories pruned. The result is sorted
// lexicographically so repeated runs over an unchanged tree enumerate in
// the same order.
//
// An unreadable root is an error; an empty result is not.
func ListSources(rootDir, ext string) ([]string, error) {
	ext = strings.ToLower(ext)
	var sources []string
	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("scan %s: %w", path, walkErr)
		}
		name := entry.Name()
		if path != rootDir && strings.HasPrefix(name, ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(name)) != ext {
			return nil
		}
		sources = append(sources, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(sources)
	return sources, nil
}
