package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/crewlint/crewlint/internal/lint"
)

// fileResult is the lint outcome of one document.
type fileResult struct {
	Path        string            `json:"path"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// summary counts diagnostics by severity across results.
type summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

func summarize(results []fileResult) summary {
	s := summary{Files: len(results)}
	for _, r := range results {
		for _, d := range r.Diagnostics {
			if d.Severity == lint.DiagnosticError {
				s.Errors++
			} else {
				s.Warnings++
			}
		}
	}
	return s
}

// writeResults renders results in the given format.
func writeResults(out io.Writer, format string, results []fileResult) error {
	if format == "json" {
		return writeJSON(out, results)
	}
	writeText(out, results)
	return nil
}

func writeJSON(out io.Writer, results []fileResult) error {
	payload := struct {
		Files   []fileResult `json:"files"`
		Summary summary      `json:"summary"`
	}{
		Files:   make([]fileResult, 0, len(results)),
		Summary: summarize(results),
	}
	for _, r := range results {
		if r.Diagnostics == nil {
			r.Diagnostics = []lint.Diagnostic{}
		}
		payload.Files = append(payload.Files, r)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func writeText(out io.Writer, results []fileResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, r := range results {
		writeFileText(out, r, green, red, yellow)
	}

	s := summarize(results)
	fmt.Fprintf(out, "\n%d file(s) checked: %d error(s), %d warning(s)\n", s.Files, s.Errors, s.Warnings)
}

func writeFileText(out io.Writer, r fileResult, green, red, yellow func(a ...interface{}) string) {
	if len(r.Diagnostics) == 0 {
		fmt.Fprintf(out, "%s %s\n", green("✓"), r.Path)
		return
	}

	fmt.Fprintf(out, "%s %s\n", red("✗"), r.Path)
	for _, d := range r.Diagnostics {
		sev := yellow(string(d.Severity))
		if d.Severity == lint.DiagnosticError {
			sev = red(string(d.Severity))
		}
		fmt.Fprintf(out, "  %d:%d: %s: %s\n", d.Range.Start.Line+1, d.Range.Start.Character+1, sev, d.Message)
	}
}
