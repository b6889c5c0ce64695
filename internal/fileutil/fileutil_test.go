package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source should remain after copy: %v", err)
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nonexistent")
	dst := filepath.Join(dir, "dst.bin")

	if err := CopyFileVerified(src, dst); err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no destination file, stat err = %v", err)
	}
}

func TestCopyFileVerified_RefusesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := CopyFileVerified(src, dst)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected os.ErrExist, got %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "old" {
		t.Fatalf("existing destination modified: %q", got)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "sub", "a.txt")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected source gone, stat err = %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestMoveFileNeverReplaces(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(src, []byte("source"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := MoveFile(src, dst)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected os.ErrExist, got %v", err)
	}
	if got, _ := os.ReadFile(dst); string(got) != "existing" {
		t.Fatalf("destination overwritten: %q", got)
	}
	if got, _ := os.ReadFile(src); string(got) != "source" {
		t.Fatalf("source changed: %q", got)
	}
}

func TestMoveFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := MoveFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	ok, err := Exists(path)
	if err != nil || ok {
		t.Fatalf("Exists on missing path = %v, %v", ok, err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	ok, err = Exists(path)
	if err != nil || !ok {
		t.Fatalf("Exists on file = %v, %v", ok, err)
	}
	ok, err = Exists(dir)
	if err != nil || !ok {
		t.Fatalf("Exists on directory = %v, %v", ok, err)
	}
}

// crossDevice makes every rename in the test report EXDEV so MoveFile takes
// the copy-then-delete path.
func crossDevice(t *testing.T) {
	t.Helper()
	orig := rename
	rename = func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: unix.EXDEV}
	}
	t.Cleanup(func() { rename = orig })
}

func TestMoveFileAcrossFilesystems(t *testing.T) {
	crossDevice(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "Images", "src.jpg")
	if err := os.Mkdir(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("payload"), 0o640); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("source should be removed, stat err = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("destination = %q, want payload", data)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("destination mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestMoveFileAcrossFilesystems_CopyFailureRemovesDestination(t *testing.T) {
	crossDevice(t)
	dir := t.TempDir()
	// A directory opens fine and creates dst, then fails on read.
	src := filepath.Join(dir, "not-a-file")
	if err := os.Mkdir(src, 0o755); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "dst")

	if err := MoveFile(src, dst); err == nil {
		t.Fatal("expected copy failure")
	}
	if _, err := os.Lstat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("partial destination should be removed, lstat err = %v", err)
	}
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		t.Fatalf("source should be left in place: %v", err)
	}
}

func TestMoveFileAcrossFilesystems_SourceRemovalFailureRollsBack(t *testing.T) {
	crossDevice(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	orig := removeFile
	removeFile = func(path string) error {
		if path == src {
			return &os.PathError{Op: "remove", Path: path, Err: os.ErrPermission}
		}
		return os.Remove(path)
	}
	t.Cleanup(func() { removeFile = orig })

	err := MoveFile(src, dst)
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("MoveFile error = %v, want permission error", err)
	}
	if _, err := os.Lstat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("destination should be rolled back, lstat err = %v", err)
	}
	data, err := os.ReadFile(src)
	if err != nil || string(data) != "keep me" {
		t.Fatalf("source changed: %q, %v", data, err)
	}
}

func TestMoveFileAcrossFilesystems_RefusesExistingDestination(t *testing.T) {
	crossDevice(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	for path, content := range map[string]string{src: "new", dst: "old"} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := MoveFile(src, dst); !errors.Is(err, os.ErrExist) {
		t.Fatalf("MoveFile error = %v, want ErrExist", err)
	}
	if data, _ := os.ReadFile(dst); string(data) != "old" {
		t.Fatalf("destination overwritten: %q", data)
	}
	if data, _ := os.ReadFile(src); string(data) != "new" {
		t.Fatalf("source changed: %q", data)
	}
}
