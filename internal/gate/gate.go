// Package gate decides whether the latest benchmark results stay inside the
// regression budgets. It only ever reads files written by other tools: the
// JSONL summary log appended by `swe-grep bench`, and the comparative report
// emitted by this harness. It never spawns a process.
package gate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Defaults for the budget check. The summary path is relative to the
// repository the CI job runs in.
const (
	DefaultSummaryPath  = "docs/benchmark-summary.jsonl"
	DefaultMaxLatencyMs = 20.0
	DefaultMinSuccess   = 0.99
)

var (
	// ErrLogMissing reports a summary log path that does not exist.
	ErrLogMissing = errors.New("summary file not found")
	// ErrLogEmpty reports a summary log with no content to check.
	ErrLogEmpty = errors.New("summary file is empty")
)

// Scenario is one row of a summary record. Only Name, MeanLatencyMs and
// SuccessRate take part in gating; the rest ride along for display.
type Scenario struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol,omitempty"`
	Iterations    int     `json:"iterations,omitempty"`
	MeanLatencyMs float64 `json:"mean_latency_ms"`
	ThroughputQPS float64 `json:"throughput_qps,omitempty"`
	SuccessRate   float64 `json:"success_rate"`
	Hits          int     `json:"hits,omitempty"`
}

// Totals aggregates the whole record; informational only.
type Totals struct {
	TotalIterations int     `json:"total_iterations"`
	TotalHits       int     `json:"total_hits"`
	MeanLatencyMs   float64 `json:"mean_latency_ms"`
	ThroughputQPS   float64 `json:"throughput_qps"`
	SuccessRate     float64 `json:"success_rate"`
}

// Record is one line of the summary log.
type Record struct {
	Scenarios []Scenario `json:"scenarios"`
	Totals    *Totals    `json:"totals,omitempty"`
}

// Budget holds the per-scenario limits.
type Budget struct {
	MaxLatencyMs float64
	MinSuccess   float64
}

// Load reads the summary log and parses its last line. The log is
// append-only, so only the newest record matters; older lines are kept for
// history but never re-checked.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLogMissing, path)
		}
		return nil, fmt.Errorf("failed to read summary file: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: %s", ErrLogEmpty, path)
	}

	lines := strings.Split(trimmed, "\n")
	last := lines[len(lines)-1]

	var rec Record
	if err := json.Unmarshal([]byte(last), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse summary file %s: %w", path, err)
	}
	return &rec, nil
}

// Check applies the budget to every scenario and returns one violation
// string per breached limit, in record order, success rate before latency.
// An empty result means the record passes.
func Check(rec *Record, b Budget) []string {
	var violations []string
	for _, sc := range rec.Scenarios {
		name := sc.Name
		if name == "" {
			name = "unknown"
		}
		if sc.SuccessRate < b.MinSuccess {
			violations = append(violations, fmt.Sprintf(
				"scenario %s: success_rate %.2f < %.2f", name, sc.SuccessRate, b.MinSuccess))
		}
		if sc.MeanLatencyMs > b.MaxLatencyMs {
			violations = append(violations, fmt.Sprintf(
				"scenario %s: mean_latency %.2f ms > %.2f ms", name, sc.MeanLatencyMs, b.MaxLatencyMs))
		}
	}
	return violations
}
