package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tidydir/internal/fileutil"
)

// ensureDir creates dir if needed. An existing directory (or symlink to
// one) is accepted; anything else in the way is an error.
func ensureDir(dir string) error {
	err := os.Mkdir(dir, 0o755)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrExist) {
		return err
	}
	info, statErr := os.Stat(dir)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dir)
	}
	return nil
}

// checkDir is the dry-run counterpart of ensureDir: it reports whether dir
// could be used without creating it.
func checkDir(dir string) error {
	if _, err := os.Lstat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dir)
	}
	return nil
}

// nextFreePath returns targetDir/name, or the first
// targetDir/{stem}_{n}{ext} (n = 1, 2, ...) that neither exists nor appears
// in claimed. Existence is only checked here; a concurrent writer may still
// take the path before the move.
func nextFreePath(targetDir string, entry FileEntry, claimed map[string]struct{}) (string, error) {
	candidate := filepath.Join(targetDir, entry.Name)
	for counter := 1; ; counter++ {
		taken, err := isTaken(candidate, claimed)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = filepath.Join(targetDir, fmt.Sprintf("%s_%d%s", entry.Stem, counter, entry.Ext))
	}
}

func isTaken(path string, claimed map[string]struct{}) (bool, error) {
	if _, ok := claimed[path]; ok {
		return true, nil
	}
	return fileutil.Exists(path)
}
