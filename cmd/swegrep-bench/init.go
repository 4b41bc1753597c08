package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Wrapper for survey functions to allow mocking in tests
var askOneFunc = survey.AskOne

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively set up the benchmark configuration",
	Long: `Runs an interactive wizard and writes config.yaml: where the swe-grep
binary lives, how many timed runs each benchmark takes, the regression
budgets the gate enforces, and the optional history archive and Slack
notifications. Existing settings show up as defaults.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Welcome to swegrep-bench setup!")
	fmt.Fprintln(out, "-------------------------------")

	answers := struct {
		Binary        string
		Baseline      string
		CompareRuns   int
		StartupRuns   int
		TimeoutSecs   int
		Summary       string
		MaxLatencyMs  float64
		MinSuccess    float64
		MaxGapMs      float64
		EnableHistory bool
		HistoryPath   string
		EnableSlack   bool
		SlackChannel  string
		SlackToken    string
	}{}

	// 1. Benchmark targets
	err := askOneFunc(&survey.Input{
		Message: "Path to the swe-grep binary:",
		Default: viper.GetString("bench.binary"),
	}, &answers.Binary)
	if err != nil {
		return err
	}

	err = askOneFunc(&survey.Input{
		Message: "Baseline search command:",
		Default: viper.GetString("bench.baseline"),
	}, &answers.Baseline)
	if err != nil {
		return err
	}

	// 2. Run counts
	err = askOneFunc(&survey.Input{
		Message: "Timed runs per tool (compare):",
		Default: strconv.Itoa(viper.GetInt("bench.compare_runs")),
	}, &answers.CompareRuns)
	if err != nil {
		return err
	}

	err = askOneFunc(&survey.Input{
		Message: "Timed runs (startup):",
		Default: strconv.Itoa(viper.GetInt("bench.startup_runs")),
	}, &answers.StartupRuns)
	if err != nil {
		return err
	}

	err = askOneFunc(&survey.Input{
		Message: "Per-run timeout in seconds:",
		Default: strconv.Itoa(viper.GetInt("bench.timeout_secs")),
	}, &answers.TimeoutSecs)
	if err != nil {
		return err
	}

	// 3. Regression budgets
	err = askOneFunc(&survey.Input{
		Message: "Benchmark summary log for the gate:",
		Default: viper.GetString("gate.summary"),
	}, &answers.Summary)
	if err != nil {
		return err
	}

	err = askOneFunc(&survey.Input{
		Message: "Maximum mean latency per scenario (ms):",
		Default: formatFloat(viper.GetFloat64("gate.max_latency_ms")),
	}, &answers.MaxLatencyMs)
	if err != nil {
		return err
	}

	err = askOneFunc(&survey.Input{
		Message: "Minimum success rate (0-1):",
		Default: formatFloat(viper.GetFloat64("gate.min_success")),
	}, &answers.MinSuccess)
	if err != nil {
		return err
	}

	err = askOneFunc(&survey.Input{
		Message: "Maximum mean-latency gap vs ripgrep (ms):",
		Default: formatFloat(viper.GetFloat64("gate.max_gap_ms")),
	}, &answers.MaxGapMs)
	if err != nil {
		return err
	}

	// 4. History archive
	err = askOneFunc(&survey.Confirm{
		Message: "Archive reports to a local SQLite database?",
		Default: false,
	}, &answers.EnableHistory)
	if err != nil {
		return err
	}

	if answers.EnableHistory {
		err = askOneFunc(&survey.Input{
			Message: "History database path:",
			Default: ".swegrep-bench/history.db",
		}, &answers.HistoryPath)
		if err != nil {
			return err
		}
	}

	// 5. Notifications
	err = askOneFunc(&survey.Confirm{
		Message: "Enable Slack notifications for gate outcomes?",
		Default: false,
	}, &answers.EnableSlack)
	if err != nil {
		return err
	}

	if answers.EnableSlack {
		err = askOneFunc(&survey.Input{
			Message: "Slack Channel:",
			Default: "#general",
		}, &answers.SlackChannel)
		if err != nil {
			return err
		}
		err = askOneFunc(&survey.Password{
			Message: "Slack Bot Token (leave empty to keep using the environment):",
		}, &answers.SlackToken)
		if err != nil {
			return err
		}
	}

	// --- Saving Configuration ---

	viper.Set("bench.binary", answers.Binary)
	viper.Set("bench.baseline", answers.Baseline)
	viper.Set("bench.compare_runs", answers.CompareRuns)
	viper.Set("bench.startup_runs", answers.StartupRuns)
	viper.Set("bench.timeout_secs", answers.TimeoutSecs)
	viper.Set("gate.summary", answers.Summary)
	viper.Set("gate.max_latency_ms", answers.MaxLatencyMs)
	viper.Set("gate.min_success", answers.MinSuccess)
	viper.Set("gate.max_gap_ms", answers.MaxGapMs)
	if answers.EnableHistory {
		viper.Set("history.path", answers.HistoryPath)
	}
	if answers.EnableSlack {
		viper.Set("notifications.slack.enabled", true)
		viper.Set("notifications.slack.channel", answers.SlackChannel)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "config.yaml"
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", configFile, err)
	}
	fmt.Fprintf(out, "Configuration saved to %s\n", configFile)

	// The token is a secret, so it goes to .env, never to config.yaml.
	if answers.EnableSlack && answers.SlackToken != "" {
		if err := appendEnvSecret("SLACK_BOT_USER_TOKEN", answers.SlackToken); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not update .env: %v\n", err)
		} else {
			fmt.Fprintln(out, "Secrets saved to .env")
		}
	}

	fmt.Fprintln(out, "\nSetup complete! Try 'swegrep-bench compare --symbol <name> --repo <path>'.")
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// appendEnvSecret appends KEY=value to .env unless the key is already there.
func appendEnvSecret(key, value string) error {
	existing, _ := os.ReadFile(".env")
	existingStr := string(existing)

	if strings.Contains(existingStr, key+"=") {
		return nil
	}

	f, err := os.OpenFile(".env", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s=%s\n", key, value)
	if len(existing) > 0 && !strings.HasSuffix(existingStr, "\n") {
		line = "\n" + line
	}
	_, err = f.WriteString(line)
	return err
}
