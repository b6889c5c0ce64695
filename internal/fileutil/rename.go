package fileutil

import (
	"os"
)

func checkedRename(src, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		return err
	}
	if exists {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: os.ErrExist}
	}
	return os.Rename(src, dst)
}
