// Package logging assembles structured slog loggers and formatting helpers used
// across tidydir.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so organizer code can tag every line with
// the session it belongs to. Diagnostic output goes to stderr so stdout stays
// free for command results; an optional file receives a JSON copy.
//
// These logs are operator diagnostics. The append-only record of file moves
// lives in package auditlog.
package logging
