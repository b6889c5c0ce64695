package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Swapped in tests to reach the cross-filesystem path.
var (
	rename     = renameNoReplace
	removeFile = os.Remove
)

// CopyFileVerified streams src to a newly created dst with SHA256 + size
// integrity verification. dst must not exist. Any failure after dst was
// created removes it, so a failed copy never leaves a partial file behind.
func CopyFileVerified(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

// MoveFile relocates src to dst without replacing an existing dst. It tries
// an atomic rename first and falls back to a verified copy followed by
// removal of src when the paths live on different filesystems. If the copy
// fails, dst is removed and src is left untouched.
func MoveFile(src, dst string) error {
	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return err
	}

	if err := CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("copy across filesystems: %w", err)
	}
	if err := removeFile(src); err != nil {
		if rmErr := removeFile(dst); rmErr != nil {
			return fmt.Errorf("remove source after copy: %w (destination cleanup also failed: %v)", err, rmErr)
		}
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// Exists reports whether path names an existing filesystem object. Errors
// other than "not exist" are returned so callers never mistake an
// unreadable path for a free one.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
