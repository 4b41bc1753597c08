package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosif16/swe-grep/internal/gate"
	"github.com/mosif16/swe-grep/internal/notify"
	"github.com/mosif16/swe-grep/internal/telemetry"
)

var (
	gateSummary    string
	gateMaxLatency float64
	gateMinSuccess float64
)

// notifyManagerFactory allows mocking Slack notifications in tests.
var notifyManagerFactory = func() *notify.Manager {
	return notify.NewManager(slog.Default())
}

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Check the benchmark summary log against regression budgets",
	Long: `Reads the most recent record from the benchmark summary log (a JSONL file,
one record per line) and checks every scenario against the latency and
success-rate budgets. Violations print one per line and the command exits
with status 1, which is what CI keys off.`,
	RunE: runGate,
}

func init() {
	rootCmd.AddCommand(gateCmd)
	gateCmd.Flags().StringVar(&gateSummary, "summary", gate.DefaultSummaryPath, "Benchmark summary JSONL file")
	gateCmd.Flags().Float64Var(&gateMaxLatency, "max-latency-ms", gate.DefaultMaxLatencyMs, "Maximum allowed mean latency per scenario")
	gateCmd.Flags().Float64Var(&gateMinSuccess, "min-success", gate.DefaultMinSuccess, "Minimum allowed success rate per scenario")
}

func runGate(cmd *cobra.Command, args []string) error {
	summary := gateSummary
	budget := gate.Budget{MaxLatencyMs: gateMaxLatency, MinSuccess: gateMinSuccess}
	// Flags win when set; otherwise the config file / env decide.
	if !cmd.Flags().Changed("summary") {
		summary = viper.GetString("gate.summary")
	}
	if !cmd.Flags().Changed("max-latency-ms") {
		budget.MaxLatencyMs = viper.GetFloat64("gate.max_latency_ms")
	}
	if !cmd.Flags().Changed("min-success") {
		budget.MinSuccess = viper.GetFloat64("gate.min_success")
	}

	record, err := gate.Load(summary)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		if manager := notifyManagerFactory(); manager.Enabled() {
			manager.NotifyGateError(cmd.Context(), err)
		}
		exit(1)
		return nil
	}

	violations := gate.Check(record, budget)
	telemetry.TrackGateOutcome(len(violations) == 0, len(violations))
	if manager := notifyManagerFactory(); manager.Enabled() {
		manager.NotifyGateOutcome(cmd.Context(), len(violations) == 0, violations)
	}

	if len(violations) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Benchmark regression detected:")
		for _, violation := range violations {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", violation)
		}
		exit(1)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Benchmarks OK (<= %.1f ms mean latency, >= %.2f success)\n",
		budget.MaxLatencyMs, budget.MinSuccess)
	return nil
}
