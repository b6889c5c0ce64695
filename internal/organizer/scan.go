package organizer

import (
	"os"
	"path/filepath"
	"strings"
)

// rootLockName is the lock file LockRoot places in the root. The scan always
// skips it.
const rootLockName = ".tidydir.lock"

// resolveRoot canonicalizes root and checks that it is a readable
// directory. An empty root means the working directory.
func resolveRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", wrap(ErrInvalidDirectory, "resolve root", root, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", wrap(ErrInvalidDirectory, "resolve root", abs, err)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return "", wrap(ErrInvalidDirectory, "stat root", canonical, err)
	}
	if !info.IsDir() {
		return "", wrap(ErrInvalidDirectory, "stat root", canonical+" is not a directory", nil)
	}
	return canonical, nil
}

// listFiles returns the regular files directly inside root, excluding any
// path in skip. Symlinks count when their target is a regular file; the
// link itself is what later moves. Subdirectories, special files, and
// dangling links are not returned; skippedDirs counts the directories
// passed over.
func listFiles(root string, skip map[string]struct{}) (files []FileEntry, skippedDirs int, err error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, 0, wrap(ErrInvalidDirectory, "list root", root, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			skippedDirs++
			continue
		}
		fe := newFileEntry(root, entry.Name())
		if _, excluded := skip[fe.Path]; excluded {
			continue
		}
		if !isEligible(entry, fe.Path) {
			continue
		}
		files = append(files, fe)
	}
	return files, skippedDirs, nil
}

func isEligible(entry os.DirEntry, path string) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// canonicalPath resolves symlinks in the parent of path so it can be
// compared against entries listed from a canonical root. Missing parents
// fall back to the absolute path.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs
	}
	return filepath.Join(dir, filepath.Base(abs))
}
