package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosif16/swe-grep/internal/config"
	"github.com/mosif16/swe-grep/internal/render"
	"github.com/mosif16/swe-grep/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swegrep-bench",
	Short: "Benchmark harness and regression gate for the swe-grep CLI",
	Long: `swegrep-bench times swe-grep symbol searches against a ripgrep baseline,
measures cold-start behavior from the tool's own summary payload, and gates
CI on latency and success-rate budgets.

Reports are JSON on stdout so they can be piped or archived; diagnostics and
styled rendering stay on stderr or behind explicit render commands.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'swegrep-bench --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress diagnostic logging on stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus metrics on this address during benchmark runs")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("metrics.addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"), viper.GetBool("quiet"))
	render.DetectColorProfile()
}

// startMetricsIfConfigured exposes /metrics for the duration of a benchmark
// batch. Off unless an address is configured; the gate and gap commands never
// call it.
func startMetricsIfConfigured() {
	addr := viper.GetString("metrics.addr")
	if addr == "" {
		return
	}
	go func() {
		if err := telemetry.StartMetricsServer(addr); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to start metrics server: %v\n", err)
		}
	}()
}
