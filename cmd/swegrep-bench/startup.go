package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosif16/swe-grep/internal/bench"
	"github.com/mosif16/swe-grep/internal/history"
)

var (
	startupSymbol   string
	startupRepo     string
	startupRuns     int
	startupBinary   string
	startupTimeout  int
	startupLanguage string
	startupOutput   string
)

// runStartup allows mocking the benchmark execution in tests.
var runStartup = func(ctx context.Context, cfg bench.StartupConfig) (*bench.StartupReport, error) {
	return bench.NewStartupRunner(cfg).Run(ctx)
}

var startupCmd = &cobra.Command{
	Use:   "startup",
	Short: "Measure swe-grep cold-start and stage timings",
	Long: `Runs swe-grep repeatedly from inside the target repository and aggregates
what each run reports about itself: process duration, time to first output,
and the per-stage timings from the structured summary the tool prints after
its search results. The swe-grep binary must already be built.`,
	RunE: runStartupCmd,
}

func init() {
	rootCmd.AddCommand(startupCmd)
	startupCmd.Flags().StringVar(&startupSymbol, "symbol", "", "Symbol to search for")
	startupCmd.Flags().StringVar(&startupRepo, "repo", "", "Repository to benchmark in")
	startupCmd.Flags().IntVar(&startupRuns, "runs", bench.DefaultStartupRuns, "Number of timed runs")
	startupCmd.Flags().StringVar(&startupBinary, "binary", bench.DefaultBinary, "Path to the swe-grep binary")
	startupCmd.Flags().IntVar(&startupTimeout, "timeout-secs", bench.DefaultTimeoutSecs, "Per-run --timeout-secs passed to swe-grep")
	startupCmd.Flags().StringVar(&startupLanguage, "language", "", "Language hint forwarded to swe-grep")
	startupCmd.Flags().StringVarP(&startupOutput, "output", "o", "", "Write the JSON report to this file instead of stdout")
	startupCmd.MarkFlagRequired("symbol")
	startupCmd.MarkFlagRequired("repo")
}

func runStartupCmd(cmd *cobra.Command, args []string) error {
	startMetricsIfConfigured()

	cfg := bench.StartupConfig{
		Repository:  startupRepo,
		Symbol:      startupSymbol,
		Runs:        startupRuns,
		Binary:      startupBinary,
		TimeoutSecs: startupTimeout,
		Language:    startupLanguage,
	}
	// Flags win when set; otherwise the config file / env decide.
	if !cmd.Flags().Changed("runs") {
		cfg.Runs = viper.GetInt("bench.startup_runs")
	}
	if !cmd.Flags().Changed("binary") {
		cfg.Binary = viper.GetString("bench.binary")
	}
	if !cmd.Flags().Changed("timeout-secs") {
		cfg.TimeoutSecs = viper.GetInt("bench.timeout_secs")
	}

	report, err := runStartup(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	archiveReport(func(store history.Store) (int64, error) {
		return store.SaveStartup(report)
	})

	return writeReport(cmd, report, startupOutput)
}
