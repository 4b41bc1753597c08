// Package render turns benchmark reports into human-facing text. Nothing in
// here runs during measurement; the JSON artifacts are written elsewhere and
// stay plain.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mosif16/swe-grep/internal/bench"
	"github.com/mosif16/swe-grep/internal/stats"
)

// DetectColorProfile applies the NO_COLOR / CLICOLOR=0 conventions. Lipgloss
// already downgrades to plain text when stdout is not a terminal, so this only
// needs to force plain output when the user asked for it explicitly.
func DetectColorProfile() {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Compare renders a comparative report as an aligned text table.
func Compare(rep *bench.CompareReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("swe-grep comparative benchmark") + "\n\n")
	writeMeta(&b, rep.Symbol, rep.Repository, rep.Runs, rep.Command)

	b.WriteString("\n")
	b.WriteString(summaryHeader("TOOL") + "\n")
	b.WriteString(strings.Repeat("-", 72) + "\n")
	b.WriteString(summaryRow("rg", rep.Rg) + "\n")
	b.WriteString(summaryRow("swe-grep", rep.SweGrep) + "\n")

	gap := rep.SweGrep.MeanMs - rep.Rg.MeanMs
	line := fmt.Sprintf("Gap (swe-grep - rg): %+.3f ms", gap)
	if gap > 0 {
		line = slowerStyle.Render(line)
	} else {
		line = fasterStyle.Render(line)
	}
	b.WriteString("\n" + line + "\n")

	return b.String()
}

// Startup renders a startup report, stage and startup sections included.
func Startup(rep *bench.StartupReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("swe-grep startup benchmark") + "\n\n")
	writeMeta(&b, rep.Symbol, rep.Repository, rep.Runs, rep.Command)

	b.WriteString("\n")
	b.WriteString(summaryHeader("METRIC") + "\n")
	b.WriteString(strings.Repeat("-", 72) + "\n")
	b.WriteString(summaryRow("process_duration_ms", rep.ProcessDurationMs) + "\n")
	b.WriteString(summaryRow("time_to_first_output_ms", rep.TimeToFirstOutputMs) + "\n")

	writeStatSection(&b, "[Stage Stats]", rep.StageStats)
	writeStatSection(&b, "[Startup Stats]", rep.StartupStats)

	return b.String()
}

// CompareMarkdown renders a comparative report as a markdown document,
// suitable for pasting into a PR or an issue.
func CompareMarkdown(rep *bench.CompareReport) string {
	var b strings.Builder

	b.WriteString("# swe-grep comparative benchmark\n\n")
	writeMarkdownMeta(&b, rep.Symbol, rep.Repository, rep.Runs, rep.Command)

	b.WriteString("| tool | runs | mean (ms) | p95 (ms) | min (ms) | max (ms) |\n")
	b.WriteString("|------|-----:|----------:|---------:|---------:|---------:|\n")
	b.WriteString(markdownRow("rg", rep.Rg))
	b.WriteString(markdownRow("swe-grep", rep.SweGrep))

	gap := rep.SweGrep.MeanMs - rep.Rg.MeanMs
	b.WriteString(fmt.Sprintf("\n**Gap (swe-grep - rg):** %+.3f ms\n", gap))

	return b.String()
}

// StartupMarkdown renders a startup report as a markdown document.
func StartupMarkdown(rep *bench.StartupReport) string {
	var b strings.Builder

	b.WriteString("# swe-grep startup benchmark\n\n")
	writeMarkdownMeta(&b, rep.Symbol, rep.Repository, rep.Runs, rep.Command)

	b.WriteString("| metric | runs | mean (ms) | p95 (ms) | min (ms) | max (ms) |\n")
	b.WriteString("|--------|-----:|----------:|---------:|---------:|---------:|\n")
	b.WriteString(markdownRow("process_duration_ms", rep.ProcessDurationMs))
	b.WriteString(markdownRow("time_to_first_output_ms", rep.TimeToFirstOutputMs))

	writeMarkdownStatSection(&b, "Stage Stats", rep.StageStats)
	writeMarkdownStatSection(&b, "Startup Stats", rep.StartupStats)

	return b.String()
}

// Markdown renders a markdown document for the terminal.
func Markdown(doc string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("failed to initialize markdown renderer: %w", err)
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func writeMeta(b *strings.Builder, symbol, repository string, runs int, command []string) {
	b.WriteString(labelStyle.Render(fmt.Sprintf("Symbol:     %s", symbol)) + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Repository: %s", repository)) + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Runs:       %d", runs)) + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Command:    %s", strings.Join(command, " "))) + "\n")
}

func writeMarkdownMeta(b *strings.Builder, symbol, repository string, runs int, command []string) {
	b.WriteString(fmt.Sprintf("- **Symbol:** %s\n", symbol))
	b.WriteString(fmt.Sprintf("- **Repository:** %s\n", repository))
	b.WriteString(fmt.Sprintf("- **Runs:** %d\n", runs))
	b.WriteString(fmt.Sprintf("- **Command:** `%s`\n\n", strings.Join(command, " ")))
}

func summaryHeader(first string) string {
	return fmt.Sprintf("%-24s %-6s %-10s %-10s %-10s %-10s",
		first, "RUNS", "MEAN(MS)", "P95(MS)", "MIN(MS)", "MAX(MS)")
}

func summaryRow(name string, s stats.Summary) string {
	return fmt.Sprintf("%-24s %-6d %-10.3f %-10.3f %-10.3f %-10.3f",
		name, s.Runs, s.MeanMs, s.P95Ms, s.MinMs, s.MaxMs)
}

func markdownRow(name string, s stats.Summary) string {
	return fmt.Sprintf("| %s | %d | %.3f | %.3f | %.3f | %.3f |\n",
		name, s.Runs, s.MeanMs, s.P95Ms, s.MinMs, s.MaxMs)
}

func writeStatSection(b *strings.Builder, title string, section map[string]stats.Summary) {
	if len(section) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(title) + "\n")
	for _, key := range sortedKeys(section) {
		b.WriteString(summaryRow(key, section[key]) + "\n")
	}
}

func writeMarkdownStatSection(b *strings.Builder, title string, section map[string]stats.Summary) {
	if len(section) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n## %s\n\n", title))
	b.WriteString("| metric | runs | mean (ms) | p95 (ms) | min (ms) | max (ms) |\n")
	b.WriteString("|--------|-----:|----------:|---------:|---------:|---------:|\n")
	for _, key := range sortedKeys(section) {
		b.WriteString(markdownRow(key, section[key]))
	}
}

func sortedKeys(section map[string]stats.Summary) []string {
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
