package auditlog

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the human-readable timestamp used on every line.
const TimestampLayout = "2006-01-02 15:04:05"

// Kind identifies the event a record describes.
type Kind string

const (
	KindSessionStart Kind = "session_start"
	KindMoved        Kind = "moved"
	KindPlanned      Kind = "planned"
	KindError        Kind = "error"
	KindSummary      Kind = "summary"
	KindSessionEnd   Kind = "session_end"
)

// Record is one auditable event.
type Record struct {
	Time        time.Time
	Kind        Kind
	Root        string
	SessionID   string
	Source      string
	Category    string
	Destination string
	Detail      string
	Moved       int
	LogPath     string
}

// Format renders the record as it appears in the log, including the
// trailing newline.
func (r Record) Format() string {
	ts := r.Time.Format(TimestampLayout)
	switch r.Kind {
	case KindSessionStart:
		line := sessionStartPrefix + ts + " | Directory: " + r.Root
		if id := strings.TrimSpace(r.SessionID); id != "" {
			line += " | Session: " + id
		}
		return "\n" + line + " ---\n"
	case KindMoved:
		return fmt.Sprintf("%s - MOVED: '%s' -> '%s/%s'\n", ts, r.Source, r.Category, r.Destination)
	case KindPlanned:
		return fmt.Sprintf("%s - PLANNED: '%s' -> '%s/%s'\n", ts, r.Source, r.Category, r.Destination)
	case KindError:
		return fmt.Sprintf("%s - ERROR moving '%s': %s\n", ts, r.Source, oneLine(r.Detail))
	case KindSummary:
		return fmt.Sprintf("%s - Organization complete. %d files moved. Log: %s\n", ts, r.Moved, r.LogPath)
	case KindSessionEnd:
		return "--- Session ended ---\n"
	default:
		return fmt.Sprintf("%s - %s: %s\n", ts, strings.ToUpper(string(r.Kind)), oneLine(r.Detail))
	}
}

// oneLine keeps multi-line error text from breaking the one-record-per-line
// layout.
func oneLine(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
