package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosif16/swe-grep/internal/bench"
	"github.com/mosif16/swe-grep/internal/history"
)

var (
	compareSymbol   string
	compareRepo     string
	compareRuns     int
	compareBinary   string
	compareBaseline string
	compareOutput   string
)

// runComparative allows mocking the benchmark execution in tests.
var runComparative = func(ctx context.Context, cfg bench.CompareConfig) (*bench.CompareReport, error) {
	return bench.NewComparativeRunner(cfg).Run(ctx)
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Benchmark swe-grep against ripgrep on one symbol",
	Long: `Times repeated swe-grep searches against a ripgrep baseline for the same
symbol. The baseline runs first, from inside the target repository; swe-grep
runs from the harness directory with an absolute --path. Per-run samples and
aggregate statistics land in a JSON report on stdout (or --output).

A single failed run aborts the whole benchmark so a flaky binary cannot
produce a partial report.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareSymbol, "symbol", "", "Symbol to search for")
	compareCmd.Flags().StringVar(&compareRepo, "repo", "", "Repository to benchmark in")
	compareCmd.Flags().IntVar(&compareRuns, "runs", bench.DefaultCompareRuns, "Timed runs per tool")
	compareCmd.Flags().StringVar(&compareBinary, "binary", bench.DefaultBinary, "Path to the swe-grep binary")
	compareCmd.Flags().StringVar(&compareBaseline, "baseline", bench.DefaultBaseline, "Baseline search command")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Write the JSON report to this file instead of stdout")
	compareCmd.MarkFlagRequired("symbol")
	compareCmd.MarkFlagRequired("repo")
}

func runCompare(cmd *cobra.Command, args []string) error {
	startMetricsIfConfigured()

	cfg := bench.CompareConfig{
		Repository: compareRepo,
		Symbol:     compareSymbol,
		Runs:       compareRuns,
		Binary:     compareBinary,
		Baseline:   compareBaseline,
	}
	// Flags win when set; otherwise the config file / env decide.
	if !cmd.Flags().Changed("runs") {
		cfg.Runs = viper.GetInt("bench.compare_runs")
	}
	if !cmd.Flags().Changed("binary") {
		cfg.Binary = viper.GetString("bench.binary")
	}
	if !cmd.Flags().Changed("baseline") {
		cfg.Baseline = viper.GetString("bench.baseline")
	}

	report, err := runComparative(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	archiveReport(func(store history.Store) (int64, error) {
		return store.SaveCompare(report)
	})

	return writeReport(cmd, report, compareOutput)
}
