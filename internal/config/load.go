// Package config wires viper for the benchmark harness: .env loading, the
// optional config.yaml, SWEGREP_BENCH_* environment overrides, and the
// default budgets. Commands read viper directly; runners receive explicit
// config structs built from it.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mosif16/swe-grep/internal/bench"
	"github.com/mosif16/swe-grep/internal/gate"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SWEGREP_BENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Benchmark defaults
	viper.SetDefault("bench.binary", bench.DefaultBinary)
	viper.SetDefault("bench.baseline", bench.DefaultBaseline)
	viper.SetDefault("bench.compare_runs", bench.DefaultCompareRuns)
	viper.SetDefault("bench.startup_runs", bench.DefaultStartupRuns)
	viper.SetDefault("bench.timeout_secs", bench.DefaultTimeoutSecs)

	// Gate defaults
	viper.SetDefault("gate.summary", gate.DefaultSummaryPath)
	viper.SetDefault("gate.max_latency_ms", gate.DefaultMaxLatencyMs)
	viper.SetDefault("gate.min_success", gate.DefaultMinSuccess)
	viper.SetDefault("gate.max_gap_ms", gate.DefaultMaxGapMs)

	// Archive and observability defaults; empty means off
	viper.SetDefault("history.path", "")
	viper.SetDefault("metrics.addr", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("quiet", false)
	viper.SetDefault("log_file", "")

	// Notification Defaults
	slackEnabled := false
	if os.Getenv("SLACK_BOT_USER_TOKEN") != "" {
		slackEnabled = true
	}
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#general")
	viper.SetDefault("notifications.slack.events.on_success", false)
	viper.SetDefault("notifications.slack.events.on_failure", true)

	discordEnabled := false
	if os.Getenv("DISCORD_WEBHOOK_URL") != "" {
		discordEnabled = true
	}
	viper.SetDefault("notifications.discord.enabled", discordEnabled)
	viper.SetDefault("notifications.discord.events.on_success", false)
	viper.SetDefault("notifications.discord.events.on_failure", true)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
