package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	historyLimit int
	historyDB    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently archived benchmark reports",
	Long: `Lists the most recent rows from the archive database, newest first. Each
compare and startup run is archived automatically when history.path is
configured; use 'report --id' to render one of the listed rows.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of rows to list")
	historyCmd.Flags().StringVar(&historyDB, "db", "", "History database path (default from config)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := historyDB
	if path == "" {
		path = viper.GetString("history.path")
	}
	if path == "" {
		return fmt.Errorf("no history database configured; set history.path or pass --db")
	}

	store, err := historyStoreFactory(path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived reports yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSYMBOL\tREPOSITORY\tRUNS\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			e.ID, e.Kind, e.Symbol, e.Repository, e.Runs, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
	return nil
}
