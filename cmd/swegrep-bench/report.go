package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosif16/swe-grep/internal/bench"
	"github.com/mosif16/swe-grep/internal/render"
)

var (
	reportID       int64
	reportMarkdown bool
	reportRaw      bool
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Render a benchmark report for humans",
	Long: `Renders a comparative or startup report as a styled table, or as a markdown
document with --markdown. Reads the given file, or with no file the archive
database: --id picks a specific archived report, otherwise the most recent
one is used. The JSON artifacts themselves are untouched; this is a view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Int64Var(&reportID, "id", 0, "Render this archived report instead of the most recent one")
	reportCmd.Flags().BoolVar(&reportMarkdown, "markdown", false, "Render as markdown through the terminal renderer")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "With --markdown, print the markdown source unrendered")
}

func runReport(cmd *cobra.Command, args []string) error {
	data, err := loadReportData(args, reportID)
	if err != nil {
		return err
	}
	return renderReport(cmd, data)
}

func loadReportData(args []string, id int64) ([]byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", args[0], err)
		}
		return data, nil
	}

	path := viper.GetString("history.path")
	if path == "" {
		return nil, fmt.Errorf("no report file given and no history database configured")
	}
	store, err := historyStoreFactory(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	if id > 0 {
		entry, err := store.Get(id)
		if err != nil {
			return nil, err
		}
		return entry.Report, nil
	}

	entries, err := store.Recent(1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("history database has no archived reports yet")
	}
	return entries[0].Report, nil
}

func renderReport(cmd *cobra.Command, data []byte) error {
	// Sniff the report shape by its top-level keys.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to parse report: %w", err)
	}

	switch {
	case probe["swe_grep"] != nil:
		var rep bench.CompareReport
		if err := json.Unmarshal(data, &rep); err != nil {
			return fmt.Errorf("failed to parse comparative report: %w", err)
		}
		return emitRendered(cmd, render.Compare(&rep), render.CompareMarkdown(&rep))
	case probe["process_duration_ms"] != nil:
		var rep bench.StartupReport
		if err := json.Unmarshal(data, &rep); err != nil {
			return fmt.Errorf("failed to parse startup report: %w", err)
		}
		return emitRendered(cmd, render.Startup(&rep), render.StartupMarkdown(&rep))
	default:
		return fmt.Errorf("report has neither a comparative nor a startup shape")
	}
}

func emitRendered(cmd *cobra.Command, table, markdown string) error {
	if !reportMarkdown {
		fmt.Fprint(cmd.OutOrStdout(), table)
		return nil
	}
	if reportRaw {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
		return nil
	}
	out, err := render.Markdown(markdown)
	if err != nil {
		// Fallback to plain text
		fmt.Fprint(cmd.OutOrStdout(), markdown)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
