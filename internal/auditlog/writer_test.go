package auditlog_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"tidydir/internal/auditlog"
)

func fixedClock() time.Time {
	return time.Date(2026, time.January, 5, 9, 30, 0, 0, time.Local)
}

func TestWriterSessionLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "organizer.log")
	w, err := auditlog.Open(path, auditlog.WithClock(fixedClock))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	records := []auditlog.Record{
		{Kind: auditlog.KindSessionStart, Root: "/data/in", SessionID: "abc"},
		{Kind: auditlog.KindMoved, Source: "a.jpg", Category: "Images", Destination: "a_1.jpg"},
		{Kind: auditlog.KindError, Source: "b.bin", Detail: "permission denied\nsecond line"},
		{Kind: auditlog.KindSummary, Moved: 1, LogPath: path},
		{Kind: auditlog.KindSessionEnd},
	}
	for _, rec := range records {
		if err := w.Append(rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	want := strings.Join([]string{
		"",
		"--- Session started: 2026-01-05 09:30:00 | Directory: /data/in | Session: abc ---",
		"2026-01-05 09:30:00 - MOVED: 'a.jpg' -> 'Images/a_1.jpg'",
		"2026-01-05 09:30:00 - ERROR moving 'b.bin': permission denied second line",
		"2026-01-05 09:30:00 - Organization complete. 1 files moved. Log: " + path,
		"--- Session ended ---",
		"",
	}, "\n")
	if string(content) != want {
		t.Fatalf("unexpected log content:\n%s\nwant:\n%s", content, want)
	}
}

func TestWriterAppendsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organizer.log")
	for i := 0; i < 2; i++ {
		w, err := auditlog.Open(path, auditlog.WithClock(fixedClock))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := w.Append(auditlog.Record{Kind: auditlog.KindSessionStart, Root: "/r"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(content), "--- Session started:"); got != 2 {
		t.Fatalf("expected 2 session markers, got %d in %q", got, content)
	}
}

func TestConcurrentWritersKeepLinesIntact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.log")
	const writers = 4
	const perWriter = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		w, err := auditlog.Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		wg.Add(1)
		go func(id int, w *auditlog.Writer) {
			defer wg.Done()
			defer w.Close()
			for j := 0; j < perWriter; j++ {
				rec := auditlog.Record{
					Kind:        auditlog.KindMoved,
					Source:      fmt.Sprintf("w%d-f%d.txt", id, j),
					Category:    "Documents",
					Destination: fmt.Sprintf("w%d-f%d.txt", id, j),
				}
				if err := w.Append(rec); err != nil {
					t.Errorf("Append: %v", err)
					return
				}
			}
		}(i, w)
	}
	wg.Wait()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	if len(lines) != writers*perWriter {
		t.Fatalf("expected %d lines, got %d", writers*perWriter, len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, " - MOVED: '") || !strings.HasSuffix(line, ".txt'") {
			t.Fatalf("corrupted line: %q", line)
		}
	}
}

func TestAppendAfterClose(t *testing.T) {
	w, err := auditlog.Open(filepath.Join(t.TempDir(), "x.log"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Append(auditlog.Record{Kind: auditlog.KindSessionEnd}); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected os.ErrClosed, got %v", err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := auditlog.Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
