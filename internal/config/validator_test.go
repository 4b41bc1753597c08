package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setValidConfig() {
	viper.Set("bench.compare_runs", 10)
	viper.Set("bench.timeout_secs", 3)
	viper.Set("gate.max_latency_ms", 20.0)
	viper.Set("gate.min_success", 0.99)
	viper.Set("gate.max_gap_ms", 6.0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantError bool
		errMsg    string
	}{
		{
			name:      "Valid Configuration",
			setup:     setValidConfig,
			wantError: false,
		},
		{
			name: "Invalid Compare Runs",
			setup: func() {
				setValidConfig()
				viper.Set("bench.compare_runs", 0)
			},
			wantError: true,
			errMsg:    "bench.compare_runs must be at least 1",
		},
		{
			name: "Invalid Timeout",
			setup: func() {
				setValidConfig()
				viper.Set("bench.timeout_secs", 0)
			},
			wantError: true,
			errMsg:    "bench.timeout_secs must be at least 1",
		},
		{
			name: "Invalid Max Latency",
			setup: func() {
				setValidConfig()
				viper.Set("gate.max_latency_ms", -5.0)
			},
			wantError: true,
			errMsg:    "gate.max_latency_ms must be positive",
		},
		{
			name: "Invalid Min Success (Negative)",
			setup: func() {
				setValidConfig()
				viper.Set("gate.min_success", -0.1)
			},
			wantError: true,
			errMsg:    "gate.min_success must be between 0 and 1",
		},
		{
			name: "Invalid Min Success (Above One)",
			setup: func() {
				setValidConfig()
				viper.Set("gate.min_success", 1.5)
			},
			wantError: true,
			errMsg:    "gate.min_success must be between 0 and 1",
		},
		{
			name: "Invalid Max Gap",
			setup: func() {
				setValidConfig()
				viper.Set("gate.max_gap_ms", 0)
			},
			wantError: true,
			errMsg:    "gate.max_gap_ms must be positive",
		},
		{
			name: "Multiple Errors",
			setup: func() {
				setValidConfig()
				viper.Set("bench.compare_runs", -1)
				viper.Set("gate.max_gap_ms", -1.0)
			},
			wantError: true,
			errMsg:    "configuration validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			if tt.setup != nil {
				tt.setup()
			}

			err := Validate()
			if tt.wantError {
				if err == nil {
					t.Errorf("Validate() expected error, got nil")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Validate() error = %v, want error containing %v", err, tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			}
		})
	}
}
