//go:build unix && !linux

package fileutil

func renameNoReplace(src, dst string) error {
	return checkedRename(src, dst)
}
