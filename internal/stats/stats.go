package stats

import "sort"

// Summary holds the aggregate view of one latency sample set.
// TimesMs carries the raw samples in run order when the caller chooses to
// retain them (the comparative benchmark does, the startup benchmark does
// not); it is omitted from JSON when empty.
type Summary struct {
	Runs    int       `json:"runs"`
	TimesMs []float64 `json:"times_ms,omitempty"`
	MeanMs  float64   `json:"mean_ms"`
	P95Ms   float64   `json:"p95_ms"`
	MinMs   float64   `json:"min_ms"`
	MaxMs   float64   `json:"max_ms"`
}

// Aggregate reduces millisecond samples to runs/mean/p95/min/max.
// An empty input yields an all-zero summary. Values are taken as-is: no
// validation of sign or NaN, callers own the sanity of their samples.
func Aggregate(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	sum := samples[0]
	minMs := samples[0]
	maxMs := samples[0]
	for _, v := range samples[1:] {
		sum += v
		if v < minMs {
			minMs = v
		}
		if v > maxMs {
			maxMs = v
		}
	}

	s := Summary{
		Runs:   len(samples),
		MeanMs: sum / float64(len(samples)),
		MinMs:  minMs,
		MaxMs:  maxMs,
	}

	// Below 20 samples the 95th percentile is reported as the max. Existing
	// summary-log entries were written with the same fallback, so it must
	// stay even though it overstates small batches.
	if len(samples) >= 20 {
		s.P95Ms = p95(samples)
	} else {
		s.P95Ms = maxMs
	}

	return s
}

// p95 computes the exclusive-method 95th percentile: sort, take
// j = floor(19*(n+1)/20) with its remainder as the interpolation weight,
// clamp j into [1, n-1], and blend the two neighbours. Existing summary-log
// entries use this scheme, so any deviation would break comparisons against
// old entries.
func p95(samples []float64) float64 {
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	ld := len(sorted)
	m := ld + 1
	j := 19 * m / 20
	delta := 19*m - j*20
	if j < 1 {
		j = 1
	} else if j > ld-1 {
		j = ld - 1
	}

	return (sorted[j-1]*float64(20-delta) + sorted[j]*float64(delta)) / 20
}
