package auditlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Writer appends records to a single log file.
type Writer struct {
	mu   sync.Mutex
	file *os.File
	lock *flock.Flock
	now  func() time.Time
}

// Option customizes a Writer.
type Option func(*Writer)

// WithClock overrides the timestamp source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// Open opens path for appending, creating the file and its parent directory
// when missing.
func Open(path string, opts ...Option) (*Writer, error) {
	if path == "" {
		return nil, errors.New("audit log path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure audit log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log %s: %w", path, err)
	}
	w := &Writer{
		file: file,
		lock: flock.New(path),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Append stamps the record with the current time when unset and writes it
// as one locked append.
func (w *Writer) Append(rec Record) error {
	if rec.Time.IsZero() {
		rec.Time = w.now()
	}
	line := []byte(rec.Format())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return os.ErrClosed
	}
	if err := w.lock.Lock(); err != nil {
		return fmt.Errorf("lock audit log: %w", err)
	}
	_, err := w.file.Write(line)
	if unlockErr := w.lock.Unlock(); unlockErr != nil && err == nil {
		err = fmt.Errorf("unlock audit log: %w", unlockErr)
	}
	return err
}

// Close flushes and closes the log file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	syncErr := w.file.Sync()
	closeErr := w.file.Close()
	w.file = nil
	_ = w.lock.Close()
	return errors.Join(syncErr, closeErr)
}
