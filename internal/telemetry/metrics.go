package telemetry

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	benchRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swegrep_bench_runs_total",
			Help: "Benchmark child processes executed, by benchmark kind",
		},
		[]string{"kind"},
	)

	benchRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swegrep_bench_run_duration_ms",
			Help:    "Wall duration of a single benchmark run in milliseconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 14),
		},
		[]string{"kind"},
	)

	benchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swegrep_bench_failures_total",
			Help: "Benchmark batches aborted by a failure",
		},
		[]string{"kind", "reason"},
	)

	gateChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swegrep_gate_checks_total",
			Help: "Regression gate evaluations by outcome",
		},
		[]string{"outcome"},
	)

	gateViolations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "swegrep_gate_violations_total",
			Help: "Individual budget violations reported by the regression gate",
		},
	)
)

func init() {
	prometheus.MustRegister(
		benchRuns,
		benchRunDuration,
		benchFailures,
		gateChecks,
		gateViolations,
	)
}

// TrackRun records one completed benchmark run of the given kind.
func TrackRun(kind string, durationMs float64) {
	benchRuns.WithLabelValues(kind).Inc()
	benchRunDuration.WithLabelValues(kind).Observe(durationMs)
}

// TrackRunFailure records an aborted batch. reason distinguishes a failed
// child process from a missing or unparsable summary payload.
func TrackRunFailure(kind, reason string) {
	benchFailures.WithLabelValues(kind, reason).Inc()
}

// TrackGateOutcome records one gate evaluation and its violation count.
func TrackGateOutcome(passed bool, violations int) {
	outcome := "pass"
	if !passed {
		outcome = "fail"
	}
	gateChecks.WithLabelValues(outcome).Inc()
	gateViolations.Add(float64(violations))
}

var (
	metricsMu      sync.Mutex
	metricsRunning bool
)

// StartMetricsServer serves /metrics on addr, blocking until the listener
// fails. A second call while a listener is up returns nil immediately.
func StartMetricsServer(addr string) error {
	metricsMu.Lock()
	if metricsRunning {
		metricsMu.Unlock()
		return nil
	}
	metricsRunning = true
	metricsMu.Unlock()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	slog.Info("metrics listener started", "addr", addr)
	err := http.ListenAndServe(addr, mux)

	metricsMu.Lock()
	metricsRunning = false
	metricsMu.Unlock()
	return err
}
