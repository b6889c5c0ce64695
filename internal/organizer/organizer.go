package organizer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tidydir/internal/auditlog"
	"tidydir/internal/category"
	"tidydir/internal/fileutil"
	"tidydir/internal/history"
	"tidydir/internal/logging"
)

// HistoryRecorder journals sessions. *history.Store satisfies it.
type HistoryRecorder interface {
	BeginSession(ctx context.Context, session history.Session) error
	RecordEntry(ctx context.Context, entry history.Entry) error
	FinishSession(ctx context.Context, id string, moved, failed int, finished time.Time) error
}

// Mover relocates src to dst and must fail with an error matching
// os.ErrExist rather than replace an existing dst.
type Mover func(src, dst string) error

// Options configures an Organizer.
type Options struct {
	// LogPath is the append-only audit log. Defaults to DefaultLogFile.
	LogPath string
	// DryRun plans destinations without creating folders or moving files.
	DryRun bool
	// LockRoot takes an exclusive lock file in the root for the session.
	LockRoot bool
	// Exclude lists additional paths the scan must never move.
	Exclude []string
	// History optionally journals each session.
	History HistoryRecorder
	// Clock overrides time.Now for log timestamps.
	Clock func() time.Time
}

// Organizer sorts files into category folders.
type Organizer struct {
	table  *category.Table
	opts   Options
	logger *slog.Logger
	move   Mover
}

// New constructs an organizer using the filesystem mover.
func New(table *category.Table, logger *slog.Logger, opts Options) *Organizer {
	return NewWithDependencies(table, logger, opts, fileutil.MoveFile)
}

// NewWithDependencies allows injecting the mover (used in tests).
func NewWithDependencies(table *category.Table, logger *slog.Logger, opts Options, mover Mover) *Organizer {
	if table == nil {
		table = category.Default()
	}
	if mover == nil {
		mover = fileutil.MoveFile
	}
	if strings.TrimSpace(opts.LogPath) == "" {
		opts.LogPath = DefaultLogFile
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Organizer{
		table:  table,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "organizer"),
		move:   mover,
	}
}

// Table returns the category table the organizer classifies with.
func (o *Organizer) Table() *category.Table {
	return o.table
}

// Organize runs one session over root (the working directory when empty).
// It returns an error wrapping ErrInvalidDirectory, ErrRootBusy, or
// ErrAuditLog only when the session cannot start; in that case nothing has
// been moved or logged. Per-file failures are reported in the Summary.
func (o *Organizer) Organize(ctx context.Context, root string) (Summary, error) {
	resolved, err := resolveRoot(root)
	if err != nil {
		return Summary{}, err
	}

	if o.opts.LockRoot {
		lock := flock.New(filepath.Join(resolved, rootLockName))
		ok, err := lock.TryLock()
		if err != nil {
			_ = lock.Close()
			return Summary{}, wrap(ErrInvalidDirectory, "lock root", resolved, err)
		}
		if !ok {
			_ = lock.Close()
			return Summary{}, wrap(ErrRootBusy, "lock root", "another session is organizing "+resolved, nil)
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	logPath := canonicalPath(o.opts.LogPath)
	files, skippedDirs, err := listFiles(resolved, o.skipSet(resolved, logPath))
	if err != nil {
		return Summary{}, err
	}

	started := time.Now()
	sessionID := uuid.NewString()
	ctx = logging.WithSessionID(ctx, sessionID)
	logger := logging.WithContext(ctx, o.logger)

	audit, err := auditlog.Open(logPath, auditlog.WithClock(o.opts.Clock))
	if err != nil {
		return Summary{}, wrap(ErrAuditLog, "open audit log", logPath, err)
	}
	defer func() {
		if err := audit.Close(); err != nil {
			logger.Warn("audit log close failed", logging.Error(err))
		}
	}()

	sess := &session{
		summary: Summary{SessionID: sessionID, Root: resolved, LogPath: logPath, DryRun: o.opts.DryRun},
		audit:   audit,
		journal: o.opts.History,
		logger:  logger,
		now:     o.opts.Clock,
	}
	sess.begin(ctx)
	logger.Info(
		"organization started",
		logging.String("root", resolved),
		logging.Int("files", len(files)),
		logging.Bool("dry_run", o.opts.DryRun),
	)
	if skippedDirs > 0 {
		logger.Debug("subdirectories left in place", logging.Int("skipped_dirs", skippedDirs))
	}

	claimed := make(map[string]struct{}, len(files))
	for _, entry := range files {
		outcome := o.process(resolved, entry, claimed)
		if outcome.Destination != "" {
			claimed[outcome.Destination] = struct{}{}
		}
		sess.record(ctx, outcome)
	}

	summary := sess.finish(ctx)
	logger.Info(
		"organization completed",
		logging.Int("moved", summary.Moved),
		logging.Int("planned", summary.Planned),
		logging.Int("failed", summary.Failed),
		logging.String("log_file", logPath),
		logging.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

func (o *Organizer) process(root string, entry FileEntry, claimed map[string]struct{}) Outcome {
	cat := o.table.Classify(entry.Ext)
	targetDir := filepath.Join(root, cat)

	if o.opts.DryRun {
		if err := checkDir(targetDir); err != nil {
			return failed(entry, cat, wrap(ErrDirectoryCreate, "check category dir", cat, err))
		}
		dest, err := nextFreePath(targetDir, entry, claimed)
		if err != nil {
			return failed(entry, cat, wrap(ErrMove, "resolve destination", entry.Name, err))
		}
		return planned(entry, cat, dest)
	}

	if err := ensureDir(targetDir); err != nil {
		return failed(entry, cat, wrap(ErrDirectoryCreate, "create category dir", cat, err))
	}
	dest, err := nextFreePath(targetDir, entry, claimed)
	if err != nil {
		return failed(entry, cat, wrap(ErrMove, "resolve destination", entry.Name, err))
	}
	err = o.move(entry.Path, dest)
	if errors.Is(err, os.ErrExist) {
		// Destination appeared after the check; pick the next free name once.
		if dest, err = nextFreePath(targetDir, entry, claimed); err == nil {
			err = o.move(entry.Path, dest)
		}
	}
	if err != nil {
		return failed(entry, cat, wrap(ErrMove, "move", entry.Name, err))
	}
	return moved(entry, cat, dest)
}

func (o *Organizer) skipSet(root, logPath string) map[string]struct{} {
	skip := map[string]struct{}{
		logPath:                          {},
		filepath.Join(root, rootLockName): {},
	}
	for _, path := range o.opts.Exclude {
		if strings.TrimSpace(path) == "" {
			continue
		}
		skip[canonicalPath(path)] = struct{}{}
	}
	return skip
}
