// Package scanner enumerates the files of a project directory.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"apidocgen/internal/logging"
)

// ErrNotFound indicates the project root does not exist.
var ErrNotFound = errors.New("project path not found")

// Scan recursively enumerates every regular file beneath root and returns
// their paths in traversal order. No extension filtering happens here; that
// is the content loader's job. A missing root fails with ErrNotFound.
func Scan(root string) ([]string, error) {
	logging.Info("fetching filepaths from %s", root)

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat project path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project path %s: %w", root, err)
	}

	logging.Info("found %d files under %s", len(paths), root)
	return paths, nil
}
