// Package bench drives the swe-grep benchmarks: a comparative latency run
// against ripgrep and a cold-start run that pivots the tool's own stage
// timings. Runners are strictly sequential; one failed child process or
// unusable summary aborts the whole batch.
package bench

import "github.com/mosif16/swe-grep/internal/stats"

// Defaults applied when a config field is left at its zero value.
const (
	DefaultCompareRuns = 10
	DefaultStartupRuns = 5
	DefaultTimeoutSecs = 3
	DefaultBinary      = "target/debug/swe-grep"
	DefaultBaseline    = "rg"
)

// CompareReport is the comparative benchmark's JSON artifact. Command holds
// the subject argv; older readers that predate the field ignore it.
type CompareReport struct {
	Symbol     string        `json:"symbol"`
	Repository string        `json:"repository"`
	Runs       int           `json:"runs"`
	Command    []string      `json:"command"`
	Rg         stats.Summary `json:"rg"`
	SweGrep    stats.Summary `json:"swe_grep"`
}

// StartupReport is the startup benchmark's JSON artifact. StageStats and
// StartupStats aggregate, per key, whatever numeric fields the tool reported
// across the batch; a key missing from some runs is summarized over the runs
// that had it.
type StartupReport struct {
	Symbol              string                   `json:"symbol"`
	Repository          string                   `json:"repository"`
	Runs                int                      `json:"runs"`
	Command             []string                 `json:"command"`
	ProcessDurationMs   stats.Summary            `json:"process_duration_ms"`
	TimeToFirstOutputMs stats.Summary            `json:"time_to_first_output_ms"`
	StageStats          map[string]stats.Summary `json:"stage_stats"`
	StartupStats        map[string]stats.Summary `json:"startup_stats"`
}
