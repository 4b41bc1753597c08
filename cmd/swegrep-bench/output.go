package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosif16/swe-grep/internal/history"
)

// historyStoreFactory allows mocking the archive database in tests.
var historyStoreFactory = func(path string) (history.Store, error) {
	return history.NewSQLiteStore(path)
}

// writeReport emits the JSON artifact, pretty-printed with two-space indent.
// Stdout by default so the report can be piped; --output writes the same
// bytes to a file and keeps stdout clean.
func writeReport(cmd *cobra.Command, report any, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
	return nil
}

// archiveReport saves a successful report when an archive database is
// configured. Archive trouble is only a warning; the benchmark itself
// already succeeded and its report is already written.
func archiveReport(save func(history.Store) (int64, error)) {
	path := viper.GetString("history.path")
	if path == "" {
		return
	}

	store, err := historyStoreFactory(path)
	if err != nil {
		slog.Warn("Failed to open history database", "path", path, "error", err)
		return
	}
	defer store.Close()

	id, err := save(store)
	if err != nil {
		slog.Warn("Failed to archive report", "path", path, "error", err)
		return
	}
	slog.Debug("Report archived", "id", id, "path", path)
}
