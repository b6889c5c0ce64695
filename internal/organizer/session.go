package organizer

import (
	"context"
	"log/slog"
	"time"

	"tidydir/internal/auditlog"
	"tidydir/internal/history"
	"tidydir/internal/logging"
)

// session accumulates one Organize call: counters, audit records, and the
// optional journal. Audit and journal write failures are logged and never
// abort the session.
type session struct {
	summary       Summary
	audit         *auditlog.Writer
	journal       HistoryRecorder
	journalBroken bool
	logger        *slog.Logger
	now           func() time.Time
}

func (s *session) begin(ctx context.Context) {
	s.append(auditlog.Record{
		Kind:      auditlog.KindSessionStart,
		Root:      s.summary.Root,
		SessionID: s.summary.SessionID,
	})
	s.journalDo("begin session", func() error {
		return s.journal.BeginSession(ctx, history.Session{
			ID:        s.summary.SessionID,
			Root:      s.summary.Root,
			LogPath:   s.summary.LogPath,
			DryRun:    s.summary.DryRun,
			StartedAt: s.now(),
		})
	})
}

func (s *session) record(ctx context.Context, outcome Outcome) {
	s.summary.Outcomes = append(s.summary.Outcomes, outcome)

	entry := history.Entry{
		SessionID:   s.summary.SessionID,
		Source:      outcome.Entry.Name,
		Category:    outcome.Category,
		Destination: outcome.DestinationName(),
		RecordedAt:  s.now(),
	}

	switch outcome.Status {
	case StatusMoved:
		s.summary.Moved++
		entry.Status = history.StatusMoved
		s.append(auditlog.Record{
			Kind:        auditlog.KindMoved,
			Source:      outcome.Entry.Name,
			Category:    outcome.Category,
			Destination: outcome.DestinationName(),
		})
		s.logger.Info(
			"file moved",
			logging.String("source", outcome.Entry.Name),
			logging.String("category", outcome.Category),
			logging.String("destination", outcome.DestinationName()),
			logging.Bool("renamed", outcome.Renamed()),
		)
	case StatusPlanned:
		s.summary.Planned++
		entry.Status = history.StatusPlanned
		s.append(auditlog.Record{
			Kind:        auditlog.KindPlanned,
			Source:      outcome.Entry.Name,
			Category:    outcome.Category,
			Destination: outcome.DestinationName(),
		})
		s.logger.Debug(
			"file planned",
			logging.String("source", outcome.Entry.Name),
			logging.String("category", outcome.Category),
			logging.String("destination", outcome.DestinationName()),
		)
	default:
		s.summary.Failed++
		entry.Status = history.StatusFailed
		detail := "unknown error"
		if outcome.Err != nil {
			detail = outcome.Err.Error()
		}
		entry.Error = detail
		s.append(auditlog.Record{
			Kind:   auditlog.KindError,
			Source: outcome.Entry.Name,
			Detail: detail,
		})
		logging.WarnWithContext(
			s.logger,
			"file not moved",
			"file_move_failed",
			logging.String("source", outcome.Entry.Name),
			logging.String("category", outcome.Category),
			logging.Error(outcome.Err),
			logging.String(logging.FieldErrorHint, "check permissions and free space in the target directory"),
			logging.String(logging.FieldImpact, "file left in place"),
		)
	}

	s.journalDo("record entry", func() error {
		return s.journal.RecordEntry(ctx, entry)
	})
}

func (s *session) finish(ctx context.Context) Summary {
	s.append(auditlog.Record{
		Kind:    auditlog.KindSummary,
		Moved:   s.summary.Moved,
		LogPath: s.summary.LogPath,
	})
	s.append(auditlog.Record{Kind: auditlog.KindSessionEnd})
	s.journalDo("finish session", func() error {
		return s.journal.FinishSession(ctx, s.summary.SessionID, s.summary.Moved, s.summary.Failed, s.now())
	})
	return s.summary
}

func (s *session) append(rec auditlog.Record) {
	if err := s.audit.Append(rec); err != nil {
		logging.WarnWithContext(
			s.logger,
			"audit log write failed",
			"audit_write_failed",
			logging.String("kind", string(rec.Kind)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "audit log is missing a record"),
		)
	}
}

// journalDo runs fn against the journal until the first failure, after
// which the rest of the session skips journaling.
func (s *session) journalDo(op string, fn func() error) {
	if s.journal == nil || s.journalBroken {
		return
	}
	if err := fn(); err != nil {
		s.journalBroken = true
		logging.WarnWithContext(
			s.logger,
			"history journal write failed",
			"history_write_failed",
			logging.String("operation", op),
			logging.Error(err),
			logging.String(logging.FieldImpact, "session history incomplete"),
		)
	}
}
