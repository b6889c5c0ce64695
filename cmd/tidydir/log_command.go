package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tidydir/internal/auditlog"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var lastSession bool
	var logFile string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Paths.LogFile
			if flag := strings.TrimSpace(logFile); flag != "" {
				path = flag
			}
			out := cmd.OutOrStdout()

			var (
				shown  []string
				offset int64
			)
			if lastSession {
				shown, err = auditlog.LastSession(path)
				if err == nil {
					_, offset, err = auditlog.ReadTail(path, 0)
				}
			} else {
				shown, offset, err = auditlog.ReadTail(path, lines)
			}
			if err != nil {
				return err
			}
			if len(shown) == 0 && !follow {
				fmt.Fprintf(out, "No entries in %s\n", path)
				return nil
			}
			for _, line := range shown {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}

			followCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return auditlog.Follow(followCtx, path, offset, 500*time.Millisecond, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of trailing lines to show (0 for all)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new entries as they are appended")
	cmd.Flags().BoolVar(&lastSession, "last-session", false, "Show only the most recent session")
	cmd.Flags().StringVarP(&logFile, "log-file", "l", "", "Audit log path (default from config)")
	return cmd
}
