package payload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPrettyPrintedSummary(t *testing.T) {
	lines := []string{
		"src/engine.rs:42: fn resolve_symbol()",
		"src/engine.rs:88: resolve_symbol(&query)",
		"",
		"{",
		`  "cycle": 2,`,
		`  "stage_stats": {`,
		`    "walk_ms": 1.5,`,
		`    "match_ms": 3,`,
		`    "strategy": "ripgrep-first",`,
		`    "language_metrics": {`,
		`      "rust": 12`,
		`    }`,
		`  },`,
		`  "startup_stats": {`,
		`    "spawn_ms": 0.75`,
		`  }`,
		"}",
	}

	sum, err := Extract(lines)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"walk_ms": 1.5, "match_ms": 3}, sum.StageStats())
	assert.Equal(t, map[string]float64{"spawn_ms": 0.75}, sum.StartupStats())
}

func TestExtractMarkerOnFirstLine(t *testing.T) {
	lines := []string{`{"cycle": 1, "stage_stats": {"walk_ms": 2.25}}`}

	sum, err := Extract(lines)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"walk_ms": 2.25}, sum.StageStats())
	assert.Empty(t, sum.StartupStats())
}

func TestExtractNoMarker(t *testing.T) {
	lines := []string{
		"src/engine.rs:42: fn resolve_symbol()",
		"cycle without quotes should not count",
	}

	_, err := Extract(lines)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPayload))
}

func TestExtractNoOutputAtAll(t *testing.T) {
	_, err := Extract(nil)
	assert.True(t, errors.Is(err, ErrNoPayload))
}

func TestExtractMalformedTail(t *testing.T) {
	lines := []string{
		"hit line",
		"{",
		`  "cycle": 3,`,
		`  "stage_stats": {`,
		// Truncated output: the process died mid-write.
	}

	_, err := Extract(lines)
	require.Error(t, err)

	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Tail, `"cycle": 3`)
	assert.Error(t, malformed.Unwrap())
}

func TestExtractMissingSectionsYieldEmptyMaps(t *testing.T) {
	lines := []string{`{"cycle": 4}`}

	sum, err := Extract(lines)
	require.NoError(t, err)

	assert.NotNil(t, sum.StageStats())
	assert.Empty(t, sum.StageStats())
	assert.NotNil(t, sum.StartupStats())
	assert.Empty(t, sum.StartupStats())
}

func TestExtractSkipsNonNumericMembers(t *testing.T) {
	lines := []string{
		"{",
		`  "cycle": 1,`,
		`  "startup_stats": {`,
		`    "spawn_ms": 1.25,`,
		`    "ready": true,`,
		`    "note": null,`,
		`    "phases": [1, 2]`,
		`  }`,
		"}",
	}

	sum, err := Extract(lines)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"spawn_ms": 1.25}, sum.StartupStats())
}
