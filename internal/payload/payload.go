// Package payload pulls the structured JSON summary out of a swe-grep run's
// stdout. The tool prints search hits first and finishes with a
// pretty-printed summary object, so extraction works backwards from a marker
// field rather than trying to parse the whole stream.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// summaryMarker is the first field of the summary object. It is matched
// quoted so a plain mention of the word inside a search hit cannot trigger
// extraction.
const summaryMarker = `"cycle"`

// ErrNoPayload reports output that never contained the summary marker.
var ErrNoPayload = errors.New("no structured summary in output")

// MalformedError reports a located summary block that did not parse as JSON.
// Tail holds the raw text that was handed to the parser.
type MalformedError struct {
	Err  error
	Tail string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed summary payload: %v", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Summary is the parsed trailing JSON object of one run.
type Summary struct {
	raw map[string]any
}

// Extract locates the summary in the captured stdout lines and parses it.
// The payload starts one line before the first marker line (the opening
// brace of the pretty-printed object) and runs to the end of output. Marker
// on the very first line means the object is inlined there, so the start
// clamps to line zero.
func Extract(lines []string) (*Summary, error) {
	idx := -1
	for i, line := range lines {
		if strings.Contains(line, summaryMarker) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNoPayload
	}

	start := idx - 1
	if start < 0 {
		start = 0
	}

	tail := strings.Join(lines[start:], "\n")

	var raw map[string]any
	if err := json.Unmarshal([]byte(tail), &raw); err != nil {
		return nil, &MalformedError{Err: err, Tail: tail}
	}

	return &Summary{raw: raw}, nil
}

// StageStats returns the numeric members of the summary's stage_stats
// section. The section mixes timings with nested objects such as
// language_metrics; only plain JSON numbers survive.
func (s *Summary) StageStats() map[string]float64 {
	return s.numericSection("stage_stats")
}

// StartupStats returns the numeric members of the startup_stats section.
func (s *Summary) StartupStats() map[string]float64 {
	return s.numericSection("startup_stats")
}

func (s *Summary) numericSection(key string) map[string]float64 {
	out := map[string]float64{}
	section, ok := s.raw[key].(map[string]any)
	if !ok {
		return out
	}
	for name, v := range section {
		if f, ok := v.(float64); ok {
			out[name] = f
		}
	}
	return out
}
