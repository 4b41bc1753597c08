package gate

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultMaxGapMs is the allowed mean-latency gap between swe-grep and rg.
const DefaultMaxGapMs = 6.0

// GapResult is the comparative-gap computation over one benchmark report.
type GapResult struct {
	RgMeanMs      float64
	SweGrepMeanMs float64
	GapMs         float64
}

// Exceeds reports whether the gap breaks the budget. Equal is still a pass.
func (g GapResult) Exceeds(maxGapMs float64) bool {
	return g.GapMs > maxGapMs
}

// EvaluateGap reads a comparative benchmark report and computes how much
// slower swe-grep's mean is than rg's. A report without both summaries is a
// configuration error, not a zero gap.
func EvaluateGap(reportPath string) (GapResult, error) {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return GapResult{}, fmt.Errorf("failed to read benchmark report: %w", err)
	}

	var report struct {
		Rg *struct {
			MeanMs float64 `json:"mean_ms"`
		} `json:"rg"`
		SweGrep *struct {
			MeanMs float64 `json:"mean_ms"`
		} `json:"swe_grep"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return GapResult{}, fmt.Errorf("failed to parse benchmark report %s: %w", reportPath, err)
	}
	if report.Rg == nil || report.SweGrep == nil {
		return GapResult{}, fmt.Errorf("benchmark report %s is missing rg/swe_grep summaries", reportPath)
	}

	return GapResult{
		RgMeanMs:      report.Rg.MeanMs,
		SweGrepMeanMs: report.SweGrep.MeanMs,
		GapMs:         report.SweGrep.MeanMs - report.Rg.MeanMs,
	}, nil
}
