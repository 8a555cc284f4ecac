// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FindFiles resolves root into a list of input files. A regular file is
// returned as-is regardless of its extension. A directory is walked
// recursively and every file whose extension matches one of exts
// (case-insensitive) is returned, sorted by path.
func FindFiles(root string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		panic("at least one extension must be given")
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(d.Name(), exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
