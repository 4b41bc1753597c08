package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mosif16/swe-grep/internal/payload"
	"github.com/mosif16/swe-grep/internal/proc"
	"github.com/mosif16/swe-grep/internal/stats"
	"github.com/mosif16/swe-grep/internal/telemetry"
)

// StartupConfig configures one startup batch. Runs at zero falls back to the
// default; an explicit value below one is clamped to a single run rather
// than rejected.
type StartupConfig struct {
	Repository  string
	Symbol      string
	Binary      string
	Runs        int
	TimeoutSecs int    // forwarded to the tool as --timeout-secs
	Language    string // optional --language hint
}

// StartupRunner measures cold process start: wall duration, time to first
// output, and the per-stage timings the tool reports about itself.
type StartupRunner struct {
	cfg    StartupConfig
	logger *slog.Logger
}

func NewStartupRunner(cfg StartupConfig) *StartupRunner {
	if cfg.Runs == 0 {
		cfg.Runs = DefaultStartupRuns
	}
	if cfg.Runs < 1 {
		cfg.Runs = 1
	}
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = DefaultTimeoutSecs
	}
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	return &StartupRunner{cfg: cfg, logger: slog.Default()}
}

// Run spawns the tool cfg.Runs times from the repository directory, streams
// each run's stdout, and pivots the numeric stage_stats / startup_stats
// fields across runs into per-key sample sets. A key absent from a run
// simply contributes no sample for that run. Any failed process or missing
// summary aborts the batch.
func (r *StartupRunner) Run(ctx context.Context) (*StartupReport, error) {
	if r.cfg.Symbol == "" {
		return nil, errors.New("symbol is required")
	}
	if r.cfg.Repository == "" {
		return nil, errors.New("repository is required")
	}

	repo, err := filepath.Abs(r.cfg.Repository)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository path: %w", err)
	}
	bin, err := filepath.Abs(r.cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve binary path: %w", err)
	}
	if _, err := os.Stat(bin); err != nil {
		return nil, fmt.Errorf("swe-grep binary not found at %s; build it first", bin)
	}

	argv := []string{bin, "search",
		"--symbol", r.cfg.Symbol,
		"--path", repo,
		"--timeout-secs", strconv.Itoa(r.cfg.TimeoutSecs)}
	if r.cfg.Language != "" {
		argv = append(argv, "--language", r.cfg.Language)
	}

	r.logger.Info("startup benchmark starting",
		"symbol", r.cfg.Symbol,
		"repository", repo,
		"runs", r.cfg.Runs)

	durations := make([]float64, 0, r.cfg.Runs)
	firstOutputs := make([]float64, 0, r.cfg.Runs)
	stageSamples := map[string][]float64{}
	startupSamples := map[string][]float64{}

	for i := 0; i < r.cfg.Runs; i++ {
		res, err := proc.RunStreaming(ctx, argv, repo)
		if err != nil {
			telemetry.TrackRunFailure("startup", "command")
			return nil, fmt.Errorf("startup run %d failed: %w", i+1, err)
		}
		telemetry.TrackRun("startup", res.DurationMs)

		sum, err := payload.Extract(res.Lines)
		if err != nil {
			telemetry.TrackRunFailure("startup", "payload")
			return nil, fmt.Errorf("startup run %d: %w", i+1, err)
		}

		durations = append(durations, res.DurationMs)
		firstOutputs = append(firstOutputs, res.TimeToFirstOutputMs)
		for k, v := range sum.StageStats() {
			stageSamples[k] = append(stageSamples[k], v)
		}
		for k, v := range sum.StartupStats() {
			startupSamples[k] = append(startupSamples[k], v)
		}

		r.logger.Debug("run complete",
			"run", i+1,
			"duration_ms", res.DurationMs,
			"first_output_ms", res.TimeToFirstOutputMs)
	}

	return &StartupReport{
		Symbol:              r.cfg.Symbol,
		Repository:          repo,
		Runs:                r.cfg.Runs,
		Command:             argv,
		ProcessDurationMs:   stats.Aggregate(durations),
		TimeToFirstOutputMs: stats.Aggregate(firstOutputs),
		StageStats:          aggregateSamples(stageSamples),
		StartupStats:        aggregateSamples(startupSamples),
	}, nil
}

func aggregateSamples(samples map[string][]float64) map[string]stats.Summary {
	out := make(map[string]stats.Summary, len(samples))
	for k, v := range samples {
		out[k] = stats.Aggregate(v)
	}
	return out
}
