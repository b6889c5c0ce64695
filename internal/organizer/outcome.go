package organizer

import (
	"path/filepath"

	"tidydir/internal/category"
)

// DefaultLogFile is the audit log used when Options.LogPath is empty.
// Relative paths resolve against the working directory.
const DefaultLogFile = "file_organizer_log.txt"

// FileEntry is a file observed during one scan.
type FileEntry struct {
	Path string
	Name string
	Stem string
	Ext  string
}

func newFileEntry(dir, name string) FileEntry {
	return FileEntry{
		Path: filepath.Join(dir, name),
		Name: name,
		Stem: category.StemOf(name),
		Ext:  category.ExtensionOf(name),
	}
}

// Status is the result kind of one file.
type Status string

const (
	StatusMoved   Status = "moved"
	StatusPlanned Status = "planned"
	StatusFailed  Status = "failed"
)

// Outcome is the per-file result of a session: either a destination
// (moved or, in dry-run mode, planned) or a failure reason.
type Outcome struct {
	Entry       FileEntry
	Category    string
	Destination string
	Status      Status
	Err         error
}

// DestinationName is the final base name, which differs from the source
// name when a collision forced a numbered suffix.
func (o Outcome) DestinationName() string {
	if o.Destination == "" {
		return ""
	}
	return filepath.Base(o.Destination)
}

// Renamed reports whether collision resolution changed the file name.
func (o Outcome) Renamed() bool {
	return o.Destination != "" && o.DestinationName() != o.Entry.Name
}

func moved(entry FileEntry, cat, dest string) Outcome {
	return Outcome{Entry: entry, Category: cat, Destination: dest, Status: StatusMoved}
}

func planned(entry FileEntry, cat, dest string) Outcome {
	return Outcome{Entry: entry, Category: cat, Destination: dest, Status: StatusPlanned}
}

func failed(entry FileEntry, cat string, err error) Outcome {
	return Outcome{Entry: entry, Category: cat, Status: StatusFailed, Err: err}
}

// Summary reports a completed session.
type Summary struct {
	SessionID string
	Root      string
	LogPath   string
	DryRun    bool
	Moved     int
	Planned   int
	Failed    int
	Outcomes  []Outcome
}
