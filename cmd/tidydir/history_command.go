package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tidydir/internal/history"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent organization sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := historyAvailable(cmd, ctx); !ok || err != nil {
				return err
			}
			return ctx.withHistory(func(store *history.Store) error {
				sessions, err := store.RecentSessions(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("list sessions: %w", err)
				}
				out := cmd.OutOrStdout()
				if len(sessions) == 0 {
					fmt.Fprintln(out, "No sessions recorded")
					return nil
				}
				rows := make([][]string, 0, len(sessions))
				for _, s := range sessions {
					rows = append(rows, []string{
						shortID(s.ID),
						formatHistoryTime(s.StartedAt),
						s.Root,
						strconv.Itoa(s.Moved),
						strconv.Itoa(s.Failed),
						yesNo(s.DryRun),
					})
				}
				headers := []string{"Session", "Started", "Directory", "Moved", "Failed", "Dry run"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum sessions to show (0 for all)")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session>",
		Short: "Show the per-file outcomes of one session (ID or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := historyAvailable(cmd, ctx); !ok || err != nil {
				return err
			}
			return ctx.withHistory(func(store *history.Store) error {
				id, err := resolveSessionID(cmd, store, args[0])
				if err != nil {
					return err
				}
				entries, err := store.Entries(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("list entries: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Session: %s\n", id)
				if len(entries) == 0 {
					fmt.Fprintln(out, "No files recorded")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					dest := ""
					if e.Destination != "" {
						dest = e.Category + "/" + e.Destination
					}
					rows = append(rows, []string{e.Source, e.Category, dest, string(e.Status), e.Error})
				}
				fmt.Fprintln(out, renderTable([]string{"File", "Category", "Destination", "Status", "Error"}, rows, nil))
				return nil
			})
		},
	}
}

// historyAvailable reports whether there is a journal to read. A disabled
// journal that was never written prints a hint instead of creating an
// empty database.
func historyAvailable(cmd *cobra.Command, ctx *commandContext) (bool, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return false, err
	}
	if cfg.History.Enabled {
		return true, nil
	}
	if _, err := os.Stat(cfg.Paths.HistoryDB); err == nil {
		return true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("check history database: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "History is disabled; set [history] enabled = true in the config to record sessions")
	return false, nil
}

func resolveSessionID(cmd *cobra.Command, store *history.Store, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("session id must not be empty")
	}
	sessions, err := store.RecentSessions(cmd.Context(), 0)
	if err != nil {
		return "", fmt.Errorf("list sessions: %w", err)
	}
	var matches []string
	for _, s := range sessions {
		if s.ID == prefix {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, prefix) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", history.ErrSessionNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatHistoryTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(historyTimeLayout)
}
