package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tidydir/internal/history"
	"tidydir/internal/logging"
	"tidydir/internal/organizer"
	"tidydir/internal/preflight"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var logFile string
	var dryRun bool
	var lockRoot bool
	var exclude []string

	cmd := &cobra.Command{
		Use:   "organize [dir]",
		Short: "Move the files of a directory into category folders",
		Long: "Move every file directly inside dir (default: the working directory) into a\n" +
			"subfolder named after its category. Existing files are never overwritten;\n" +
			"colliding names get a numbered suffix. Every action is appended to the audit log.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			runCfg := *cfg
			if path := strings.TrimSpace(logFile); path != "" {
				runCfg.Paths.LogFile = path
			}
			if failed := preflight.Failed(preflight.RunAll(root, &runCfg, dryRun)); len(failed) > 0 {
				return preflightError(failed)
			}

			table, err := runCfg.CategoryTable()
			if err != nil {
				return fmt.Errorf("build category table: %w", err)
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			opts := organizer.Options{
				LogPath:  runCfg.Paths.LogFile,
				DryRun:   dryRun,
				LockRoot: lockRoot || runCfg.Organizer.LockRoot,
				Exclude:  exclude,
			}
			if runCfg.History.Enabled {
				store, err := history.Open(runCfg.Paths.HistoryDB)
				if err != nil {
					logging.WarnWithContext(
						logger,
						"history journal unavailable",
						"history_open_failed",
						logging.String("path", runCfg.Paths.HistoryDB),
						logging.Error(err),
						logging.String(logging.FieldImpact, "session will not appear in tidydir history"),
					)
				} else {
					defer store.Close()
					opts.History = store
				}
			}

			summary, err := organizer.New(table, logger, opts).Organize(cmd.Context(), root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, summary, shouldColorize(out))
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files could not be moved; see %s", summary.Failed, len(summary.Outcomes), summary.LogPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&logFile, "log-file", "l", "", "Audit log path (default from config)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show where files would go without moving them")
	cmd.Flags().BoolVar(&lockRoot, "lock", false, "Refuse to run while another tidydir session holds the directory")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "File to leave in place (repeatable)")
	return cmd
}

func printSummary(out io.Writer, summary organizer.Summary, colorize bool) {
	if len(summary.Outcomes) == 0 {
		fmt.Fprintf(out, "Nothing to organize in %s\n", summary.Root)
		fmt.Fprintf(out, "Log: %s\n", summary.LogPath)
		return
	}

	rows := make([][]string, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		dest := ""
		if outcome.Destination != "" {
			dest = outcome.Category + "/" + outcome.DestinationName()
		}
		detail := ""
		if outcome.Err != nil {
			detail = outcome.Err.Error()
		}
		rows = append(rows, []string{
			outcome.Entry.Name,
			outcome.Category,
			dest,
			paint(string(outcome.Status), statusColor(outcome.Status), colorize),
			detail,
		})
	}

	headers := []string{"File", "Category", "Destination", "Status", "Error"}
	fmt.Fprintln(out, renderTable(headers, rows, nil))

	if summary.DryRun {
		fmt.Fprintf(out, "Dry run: %d files would be moved, %d failed.\n", summary.Planned, summary.Failed)
	} else {
		fmt.Fprintf(out, "Organization complete. %d files moved, %d failed.\n", summary.Moved, summary.Failed)
	}
	fmt.Fprintf(out, "Directory: %s\n", summary.Root)
	fmt.Fprintf(out, "Log: %s\n", summary.LogPath)
	fmt.Fprintf(out, "Session: %s\n", summary.SessionID)
}

func statusColor(status organizer.Status) string {
	switch status {
	case organizer.StatusMoved:
		return ansiGreen
	case organizer.StatusPlanned:
		return ansiYellow
	case organizer.StatusFailed:
		return ansiRed
	default:
		return ""
	}
}

func preflightError(failed []preflight.Result) error {
	lines := make([]string, 0, len(failed)+1)
	lines = append(lines, "preflight failed ("+strconv.Itoa(len(failed))+" checks):")
	for _, r := range failed {
		lines = append(lines, "  "+r.Name+": "+r.Detail)
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
