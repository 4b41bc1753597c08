package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosif16/swe-grep/internal/gate"
)

var gapMaxGap float64

var gapCmd = &cobra.Command{
	Use:   "gap [report]",
	Short: "Check the comparative gap between swe-grep and ripgrep",
	Long: `Reads a comparative benchmark report and fails when swe-grep's mean latency
trails the ripgrep baseline by more than the allowed gap. The two means and
the gap print even when the check passes, so CI logs always show the numbers.
A gap exactly on the budget passes.`,
	Args: cobra.ExactArgs(1),
	RunE: runGap,
}

func init() {
	rootCmd.AddCommand(gapCmd)
	gapCmd.Flags().Float64Var(&gapMaxGap, "max-gap-ms", gate.DefaultMaxGapMs, "Maximum allowed mean-latency gap in ms")
}

func runGap(cmd *cobra.Command, args []string) error {
	maxGap := gapMaxGap
	if !cmd.Flags().Changed("max-gap-ms") {
		maxGap = viper.GetFloat64("gate.max_gap_ms")
	}

	result, err := gate.EvaluateGap(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rg_mean_ms=%.3f\n", result.RgMeanMs)
	fmt.Fprintf(cmd.OutOrStdout(), "swe_grep_mean_ms=%.3f\n", result.SweGrepMeanMs)
	fmt.Fprintf(cmd.OutOrStdout(), "gap_ms=%.3f\n", result.GapMs)

	if result.Exceeds(maxGap) {
		fmt.Fprintf(cmd.OutOrStdout(), "FAIL: swe-grep exceeds allowed gap (%.3f > %g)\n", result.GapMs, maxGap)
		exit(1)
	}
	return nil
}
