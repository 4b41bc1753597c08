package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosif16/swe-grep/internal/bench"
	"github.com/mosif16/swe-grep/internal/stats"
)

func summary(runs int, mean, p95, min, max float64) stats.Summary {
	return stats.Summary{Runs: runs, MeanMs: mean, P95Ms: p95, MinMs: min, MaxMs: max}
}

func compareReport() *bench.CompareReport {
	return &bench.CompareReport{
		Symbol:     "http_client",
		Repository: "/work/repo",
		Runs:       10,
		Command:    []string{"target/debug/swe-grep", "search", "--symbol", "http_client", "--path", "/work/repo"},
		Rg:         summary(10, 2.125, 3.0, 1.5, 3.1),
		SweGrep:    summary(10, 6.625, 8.2, 5.1, 8.4),
	}
}

func startupReport() *bench.StartupReport {
	return &bench.StartupReport{
		Symbol:              "http_client",
		Repository:          "/work/repo",
		Runs:                5,
		Command:             []string{"target/debug/swe-grep", "search", "--symbol", "http_client", "--path", "/work/repo", "--timeout-secs", "3"},
		ProcessDurationMs:   summary(5, 41.3, 44.0, 39.0, 44.2),
		TimeToFirstOutputMs: summary(5, 12.1, 13.0, 11.5, 13.2),
		StageStats: map[string]stats.Summary{
			"walk_ms":  summary(5, 2.5, 2.6, 2.4, 2.6),
			"parse_ms": summary(5, 8.0, 8.4, 7.7, 8.5),
		},
		StartupStats: map[string]stats.Summary{
			"spawn_ms": summary(5, 0.5, 0.6, 0.4, 0.6),
		},
	}
}

func TestCompare(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := Compare(compareReport())

	assert.Contains(t, out, "swe-grep comparative benchmark")
	assert.Contains(t, out, "Symbol:     http_client")
	assert.Contains(t, out, "Command:    target/debug/swe-grep search --symbol http_client --path /work/repo")
	assert.Contains(t, out, "2.125")
	assert.Contains(t, out, "6.625")
	assert.Contains(t, out, "Gap (swe-grep - rg): +4.500 ms")
}

func TestCompareGapFavorsSubject(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	rep := compareReport()
	rep.Rg = summary(10, 7.0, 8.0, 6.0, 8.0)
	rep.SweGrep = summary(10, 5.5, 6.0, 5.0, 6.0)

	out := Compare(rep)
	assert.Contains(t, out, "Gap (swe-grep - rg): -1.500 ms")
}

func TestStartup(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := Startup(startupReport())

	assert.Contains(t, out, "swe-grep startup benchmark")
	assert.Contains(t, out, "process_duration_ms")
	assert.Contains(t, out, "time_to_first_output_ms")
	assert.Contains(t, out, "[Stage Stats]")
	assert.Contains(t, out, "[Startup Stats]")
	assert.Contains(t, out, "spawn_ms")

	// Stage keys come out sorted so runs diff cleanly.
	parseIdx := strings.Index(out, "parse_ms")
	walkIdx := strings.Index(out, "walk_ms")
	require.GreaterOrEqual(t, parseIdx, 0)
	require.GreaterOrEqual(t, walkIdx, 0)
	assert.Less(t, parseIdx, walkIdx)
}

func TestStartupSkipsEmptySections(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	rep := startupReport()
	rep.StageStats = map[string]stats.Summary{}
	rep.StartupStats = nil

	out := Startup(rep)
	assert.NotContains(t, out, "[Stage Stats]")
	assert.NotContains(t, out, "[Startup Stats]")
}

func TestCompareMarkdown(t *testing.T) {
	out := CompareMarkdown(compareReport())

	assert.Contains(t, out, "# swe-grep comparative benchmark")
	assert.Contains(t, out, "- **Symbol:** http_client")
	assert.Contains(t, out, "| rg | 10 | 2.125 | 3.000 | 1.500 | 3.100 |")
	assert.Contains(t, out, "| swe-grep | 10 | 6.625 | 8.200 | 5.100 | 8.400 |")
	assert.Contains(t, out, "**Gap (swe-grep - rg):** +4.500 ms")
}

func TestStartupMarkdown(t *testing.T) {
	out := StartupMarkdown(startupReport())

	assert.Contains(t, out, "# swe-grep startup benchmark")
	assert.Contains(t, out, "## Stage Stats")
	assert.Contains(t, out, "## Startup Stats")
	assert.Contains(t, out, "| parse_ms | 5 | 8.000 | 8.400 | 7.700 | 8.500 |")
	assert.Contains(t, out, "| spawn_ms | 5 | 0.500 | 0.600 | 0.400 | 0.600 |")
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("# Benchmark\n\nSome **bold** text.\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Benchmark")
	assert.Contains(t, out, "bold")
}
