package preflight

import (
	"path/filepath"

	"tidydir/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks for organizing root with cfg. A dry run only
// needs to read the root; the audit log is written in both modes.
func RunAll(root string, cfg *config.Config, dryRun bool) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if dryRun {
		results = append(results, CheckDirectoryReadable("Directory", root))
	} else {
		results = append(results, CheckDirectoryAccess("Directory", root))
	}

	results = append(results, CheckParentWritable("Audit log", cfg.Paths.LogFile))

	if cfg.History.Enabled {
		results = append(results, CheckParentWritable("History database", cfg.Paths.HistoryDB))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
