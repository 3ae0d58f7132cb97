package collect

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OrgExt marks org-roam note files
const OrgExt = ".org"

// Scan walks root recursively and returns every org note path in traversal order
func Scan(root string) ([]string, error) {
	return ScanDirectory(root, OrgExt)
}

// ScanDirectory scans a directory for files with given extension
func ScanDirectory(dir string, ext string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input is not a directory: %s", dir)
	}

	var files []string

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// keep links that resolve to regular files
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	return files, nil
}
