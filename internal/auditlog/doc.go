// Package auditlog appends human-readable records of organization sessions
// to a plain-text log file.
//
// The file is opened in append mode and never truncated or rotated, so a
// single log accumulates every session run against it. Each record is
// rendered to one buffer and written with a single call while holding an
// exclusive advisory lock on the log file, which keeps lines from concurrent
// sessions intact even when they interleave.
package auditlog
