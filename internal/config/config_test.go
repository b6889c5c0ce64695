package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tidydir/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.LogFile != filepath.Join(cwd, "file_organizer_log.txt") {
		t.Fatalf("unexpected log file: %q", cfg.Paths.LogFile)
	}
	wantHistory := filepath.Join(tempHome, ".local", "share", "tidydir", "history.db")
	if cfg.Paths.HistoryDB != wantHistory {
		t.Fatalf("unexpected history db: got %q want %q", cfg.Paths.HistoryDB, wantHistory)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %#v", cfg.Logging)
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled by default")
	}

	table, err := cfg.CategoryTable()
	if err != nil {
		t.Fatalf("CategoryTable: %v", err)
	}
	if table.Classify(".JPG") != "Images" || table.Fallback() != "Others" {
		t.Fatalf("default table not applied: %v", table.Names())
	}
}

func TestLoadCustomCategoriesReplaceDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
level = "DEBUG"
format = " json "

[organizer]
fallback_category = "Misc"

[[categories]]
name = "Raw"
extensions = [".CR2", "nef"]

[[categories]]
name = "Misc"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected file to be used: resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("logging not normalized: %#v", cfg.Logging)
	}
	if got := cfg.Categories[0].Extensions; len(got) != 2 || got[0] != ".cr2" || got[1] != ".nef" {
		t.Fatalf("extensions not normalized: %q", got)
	}
	table, err := cfg.CategoryTable()
	if err != nil {
		t.Fatalf("CategoryTable: %v", err)
	}
	if got := table.Names(); len(got) != 2 {
		t.Fatalf("expected custom table only, got %v", got)
	}
	if table.Classify(".nef") != "Raw" {
		t.Fatal("expected .nef to map to Raw")
	}
	if table.Classify(".jpg") != "Misc" {
		t.Fatal("expected .jpg to fall back to Misc")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad format",
			content: "[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "bad level",
			content: "[logging]\nlevel = \"chatty\"\n",
			wantErr: "logging.level",
		},
		{
			name:    "overlapping extensions",
			content: "[[categories]]\nname = \"A\"\nextensions = [\".x\"]\n[[categories]]\nname = \"B\"\nextensions = [\".X\"]\n[[categories]]\nname = \"Others\"\n",
			wantErr: "categories",
		},
		{
			name:    "missing fallback",
			content: "[[categories]]\nname = \"A\"\nextensions = [\".x\"]\n",
			wantErr: "categories",
		},
		{
			name:    "unknown key",
			content: "[paths]\nstaging_dir = \"/tmp\"\n",
			wantErr: "parse config",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestSampleConfigLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	table, err := cfg.CategoryTable()
	if err != nil {
		t.Fatalf("CategoryTable: %v", err)
	}
	defaults := config.Default()
	if len(table.Names()) != len(defaults.Categories) {
		t.Fatalf("sample table has %d categories, defaults have %d", len(table.Names()), len(defaults.Categories))
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/logs/x.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "logs", "x.txt") {
		t.Fatalf("ExpandPath = %q", got)
	}
}
