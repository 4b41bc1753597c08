package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"github.com/mosif16/swe-grep/internal/proc"
	"github.com/mosif16/swe-grep/internal/stats"
	"github.com/mosif16/swe-grep/internal/telemetry"
)

// CompareConfig configures one comparative batch. Zero-valued fields fall
// back to the package defaults; Symbol and Repository are required.
type CompareConfig struct {
	Repository string
	Symbol     string
	Binary     string // swe-grep binary
	Baseline   string // baseline command line, normally "rg"
	Runs       int
}

// ComparativeRunner times the subject and the baseline over the same corpus.
type ComparativeRunner struct {
	cfg    CompareConfig
	logger *slog.Logger
}

func NewComparativeRunner(cfg CompareConfig) *ComparativeRunner {
	if cfg.Runs <= 0 {
		cfg.Runs = DefaultCompareRuns
	}
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Baseline == "" {
		cfg.Baseline = DefaultBaseline
	}
	return &ComparativeRunner{cfg: cfg, logger: slog.Default()}
}

// Run executes the baseline batch, then the subject batch, and aggregates
// both. The baseline runs inside the repository; the subject runs from the
// harness working directory with the repository passed as --path, matching
// how each tool is invoked in practice. The first failed run aborts
// everything and no report is produced.
func (r *ComparativeRunner) Run(ctx context.Context) (*CompareReport, error) {
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

	// The baseline is a full command line ("grep -rn"), not just a binary.
	baselineArgv, err := shellquote.Split(r.cfg.Baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to parse baseline command %q: %w", r.cfg.Baseline, err)
	}
	if len(baselineArgv) == 0 {
		return nil, errors.New("baseline command is empty")
	}

	subject := []string{r.cfg.Binary, "search", "--symbol", r.cfg.Symbol, "--path", repo}
	baseline := append(baselineArgv, r.cfg.Symbol)

	r.logger.Info("comparative benchmark starting",
		"symbol", r.cfg.Symbol,
		"repository", repo,
		"runs", r.cfg.Runs)

	rgTimes, err := r.sample(ctx, "baseline", baseline, repo)
	if err != nil {
		telemetry.TrackRunFailure("compare", "command")
		return nil, fmt.Errorf("baseline benchmark failed: %w", err)
	}

	sweTimes, err := r.sample(ctx, "subject", subject, "")
	if err != nil {
		telemetry.TrackRunFailure("compare", "command")
		return nil, fmt.Errorf("subject benchmark failed: %w", err)
	}

	rgSummary := stats.Aggregate(rgTimes)
	rgSummary.TimesMs = rgTimes
	sweSummary := stats.Aggregate(sweTimes)
	sweSummary.TimesMs = sweTimes

	r.logger.Info("comparative benchmark complete",
		"rg_mean_ms", rgSummary.MeanMs,
		"swe_grep_mean_ms", sweSummary.MeanMs)

	return &CompareReport{
		Symbol:     r.cfg.Symbol,
		Repository: repo,
		Runs:       r.cfg.Runs,
		Command:    subject,
		Rg:         rgSummary,
		SweGrep:    sweSummary,
	}, nil
}

func (r *ComparativeRunner) sample(ctx context.Context, target string, argv []string, dir string) ([]float64, error) {
	times := make([]float64, 0, r.cfg.Runs)
	for i := 0; i < r.cfg.Runs; i++ {
		res, err := proc.Run(ctx, argv, dir)
		if err != nil {
			return nil, err
		}
		telemetry.TrackRun("compare", res.DurationMs)
		r.logger.Debug("run complete",
			"target", target,
			"run", i+1,
			"duration_ms", res.DurationMs)
		times = append(times, res.DurationMs)
	}
	return times, nil
}
