// Package proc runs a single subject or baseline process and times it with
// the monotonic clock. Both entry points are strictly sequential: the caller
// blocks until the child exits, and a non-zero exit surfaces as *CommandError
// so the enclosing batch can abort with the full command line and output.
package proc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// maxLineBytes bounds a single scanned stdout line. Search hits carry whole
// source lines in their snippets, which routinely blow past bufio's default
// 64 KiB token cap.
const maxLineBytes = 4 * 1024 * 1024

// RunResult captures one buffered, timed execution.
type RunResult struct {
	ExitCode   int
	DurationMs float64
	Stdout     string
	Stderr     string
}

// StreamingResult additionally keeps stdout as ordered lines and the instant
// the child first produced output, both measured from the spawn instant used
// for DurationMs.
type StreamingResult struct {
	RunResult
	Lines               []string
	TimeToFirstOutputMs float64
}

// CommandError reports a child process that exited non-zero. The message
// carries the full command line and both captured streams so a failed batch
// is diagnosable from the error alone.
type CommandError struct {
	Argv     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed (%s): exit code %d\nstdout:\n%s\nstderr:\n%s",
		strings.Join(e.Argv, " "), e.ExitCode, e.Stdout, e.Stderr)
}

// Run executes argv in dir, buffering both streams, and returns the wall
// duration in milliseconds. A non-zero exit returns the populated result
// together with a *CommandError.
func Run(ctx context.Context, argv []string, dir string) (RunResult, error) {
	if len(argv) == 0 {
		return RunResult{}, errors.New("proc: empty argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()

	res := RunResult{
		DurationMs: time.Since(started).Seconds() * 1000.0,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &CommandError{
				Argv:     argv,
				ExitCode: res.ExitCode,
				Stdout:   res.Stdout,
				Stderr:   res.Stderr,
			}
		}
		return res, fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	return res, nil
}

// RunStreaming executes argv in dir, reading stdout line by line in the
// calling goroutine while stderr collects into a buffer. The first non-empty
// line stamps TimeToFirstOutputMs; when the child produced no output at all
// the stamp falls back to the full duration, so it never exceeds DurationMs.
func RunStreaming(ctx context.Context, argv []string, dir string) (StreamingResult, error) {
	if len(argv) == 0 {
		return StreamingResult{}, errors.New("proc: empty argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return StreamingResult{}, fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		return StreamingResult{}, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	var lines []string
	firstOutputMs := -1.0

	scanner := bufio.NewScanner(stdoutPipe)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if firstOutputMs < 0 && strings.TrimSpace(line) != "" {
			firstOutputMs = time.Since(started).Seconds() * 1000.0
		}
		lines = append(lines, line)
	}
	scanErr := scanner.Err()

	waitErr := cmd.Wait()

	res := StreamingResult{
		RunResult: RunResult{
			DurationMs: time.Since(started).Seconds() * 1000.0,
			Stdout:     strings.Join(lines, "\n"),
			Stderr:     stderr.String(),
		},
		Lines: lines,
	}
	if firstOutputMs >= 0 {
		res.TimeToFirstOutputMs = firstOutputMs
	} else {
		res.TimeToFirstOutputMs = res.DurationMs
	}

	if scanErr != nil {
		return res, fmt.Errorf("failed to read stdout of %s: %w", argv[0], scanErr)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &CommandError{
				Argv:     argv,
				ExitCode: res.ExitCode,
				Stdout:   res.Stdout,
				Stderr:   res.Stderr,
			}
		}
		return res, fmt.Errorf("failed to wait for %s: %w", argv[0], waitErr)
	}

	return res, nil
}
