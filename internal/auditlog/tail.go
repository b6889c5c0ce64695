package auditlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const sessionStartPrefix = "--- Session started: "

// ReadTail returns the last limit lines of the log and the offset of its
// end. A missing log reads as empty; limit <= 0 returns every line.
func ReadTail(path string, limit int) ([]string, int64, error) {
	lines, offset, err := ReadFrom(path, 0)
	if err != nil {
		return nil, 0, err
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, offset, nil
}

// ReadFrom returns the complete lines written at or after offset and the
// offset just past the last one. A trailing line still being written is
// left for the next call. An offset beyond the end of the file (the log was
// replaced) restarts from the beginning.
func ReadFrom(path string, offset int64) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open audit log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat audit log: %w", err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("audit log %q is a directory", path)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek audit log: %w", err)
	}

	reader := bufio.NewReader(file)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read audit log: %w", err)
		}
		offset += int64(len(line))
		lines = append(lines, strings.TrimSuffix(line, "\n"))
	}
	return lines, offset, nil
}

// Follow polls the log from offset and calls emit for every new line until
// ctx is done. It returns nil when ctx is cancelled.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, emit func(string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		lines, next, err := ReadFrom(path, offset)
		if err != nil {
			return err
		}
		for _, line := range lines {
			emit(line)
		}
		offset = next

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// LastSession returns the lines of the most recent session, starting at its
// start marker. Lines from an older session that is still being written by
// another process may interleave.
func LastSession(path string) ([]string, error) {
	lines, _, err := ReadFrom(path, 0)
	if err != nil {
		return nil, err
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], sessionStartPrefix) {
			return lines[i:], nil
		}
	}
	return nil, nil
}
