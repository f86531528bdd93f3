package lint

import (
	"fmt"

	"github.com/crewlint/crewlint/internal/schema"
)

// Position is a 0-based line and character offset. Characters count runes.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans from Start to End on the same or later line.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// LineRange returns a range on a single line.
func LineRange(line, start, end int) Range {
	return Range{
		Start: Position{Line: line, Character: start},
		End:   Position{Line: line, Character: end},
	}
}

// DiagnosticSeverity is the display severity of a diagnostic.
type DiagnosticSeverity string

const (
	DiagnosticError   DiagnosticSeverity = "error"
	DiagnosticWarning DiagnosticSeverity = "warning"
)

// severityOf maps a validation severity to a display severity. Only errors stay
// errors; warnings and info both display as warnings.
func severityOf(s schema.Severity) DiagnosticSeverity {
	if s == schema.SeverityError {
		return DiagnosticError
	}
	return DiagnosticWarning
}

// Diagnostic is one positioned lint finding.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Message  string             `json:"message"`
	Severity DiagnosticSeverity `json:"severity"`
}

// String renders the diagnostic with 1-based line and column numbers.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Message)
}
