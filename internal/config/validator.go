package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Validate checks the loaded configuration for values the harness cannot
// work with. Budgets that would make the gate vacuous (non-positive latency,
// impossible success rates) are rejected up front rather than producing a
// check that can never fail or never pass.
func Validate() error {
	var errors []string

	if runs := viper.GetInt("bench.compare_runs"); runs < 1 {
		errors = append(errors, fmt.Sprintf("bench.compare_runs must be at least 1, got %d", runs))
	}

	if timeout := viper.GetInt("bench.timeout_secs"); timeout < 1 {
		errors = append(errors, fmt.Sprintf("bench.timeout_secs must be at least 1, got %d", timeout))
	}

	if maxLatency := viper.GetFloat64("gate.max_latency_ms"); maxLatency <= 0 {
		errors = append(errors, fmt.Sprintf("gate.max_latency_ms must be positive, got %g", maxLatency))
	}

	if minSuccess := viper.GetFloat64("gate.min_success"); minSuccess < 0 || minSuccess > 1 {
		errors = append(errors, fmt.Sprintf("gate.min_success must be between 0 and 1, got %g", minSuccess))
	}

	if maxGap := viper.GetFloat64("gate.max_gap_ms"); maxGap <= 0 {
		errors = append(errors, fmt.Sprintf("gate.max_gap_ms must be positive, got %g", maxGap))
	}

	if len(errors) > 0 {
		errorMsg := strings.Join(errors, "\n  ")
		return fmt.Errorf("configuration validation failed:\n  %s", errorMsg)
	}

	return nil
}
