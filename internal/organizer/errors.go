package organizer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDirectory marks a root that is missing, not a directory, or
	// unreadable. Returned before any mutation.
	ErrInvalidDirectory = errors.New("invalid directory")
	// ErrRootBusy marks a root locked by another session (LockRoot only).
	ErrRootBusy = errors.New("directory busy")
	// ErrAuditLog marks an audit log that could not be opened.
	ErrAuditLog = errors.New("audit log unavailable")
	// ErrDirectoryCreate marks a category folder that could not be created.
	// Recorded per file; never returned from Organize.
	ErrDirectoryCreate = errors.New("directory create error")
	// ErrMove marks a file that could not be relocated. Recorded per file;
	// never returned from Organize.
	ErrMove = errors.New("move error")
)

// wrap builds an error that carries the operation context while staying
// matchable against marker with errors.Is.
func wrap(marker error, operation, message string, err error) error {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	detail := strings.Join(parts, ": ")
	switch {
	case detail == "" && err == nil:
		return marker
	case detail == "":
		return fmt.Errorf("%w: %w", marker, err)
	case err == nil:
		return fmt.Errorf("%w: %s", marker, detail)
	default:
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
}
