// Package lint_test tests mapping dotted field paths and validation errors back
// to source lines and ranges.
// Related: internal/lint/locate.go
// Tags: lint, locate, ranges, field-paths
package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crewlint/crewlint/internal/schema"
)

const locateText = `researcher:
  role: R
  goal: G

writer:
  role: W
  Goal: H
  backstory: B
`

func TestLineOf(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want int
	}{
		"root key":                        {path: "writer", want: 4},
		"first root key":                  {path: "researcher", want: 0},
		"unknown root":                    {path: "editor", want: 0},
		"unknown root with field":         {path: "editor.role", want: 0},
		"field in first record":           {path: "researcher.goal", want: 2},
		"field in second record":          {path: "writer.role", want: 5},
		"case-insensitive match":          {path: "writer.goal", want: 6},
		"field absent falls back to root": {path: "writer.llm", want: 4},
		"last field of a record":          {path: "writer.backstory", want: 7},
		"search stops at next root":       {path: "researcher.backstory", want: 0},
		"first field of a record":         {path: "researcher.role", want: 1},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LineOf(locateText, tt.path))
		})
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		err  schema.ValidationError
		want Range
	}{
		"missing field spans the rest of the resolved line": {
			text: locateText,
			err:  schema.ValidationError{Field: "writer.goal", Message: "CrewAI Lint: Missing required field: goal"},
			want: LineRange(6, 2, 9),
		},
		"missing field on the record line": {
			text: locateText,
			err:  schema.ValidationError{Field: "researcher.backstory", Message: "Missing required field: backstory"},
			want: LineRange(0, 0, 11),
		},
		"field error spans the field name": {
			text: locateText,
			err:  schema.ValidationError{Field: "writer.backstory", Message: "Field 'backstory' has invalid type. Expected string, got number."},
			want: LineRange(7, 2, 11),
		},
		"field name absent from line spans the line": {
			text: locateText,
			err:  schema.ValidationError{Field: "writer.llm", Message: "Field 'llm' failed validation."},
			want: LineRange(4, 0, 7),
		},
		"columns count runes": {
			text: "équipe:\n  rôle_x: 1\n",
			err:  schema.ValidationError{Field: "équipe.rôle_x", Message: "Unrecognized field: 'rôle_x'. This field is not defined in the schema."},
			want: LineRange(1, 2, 8),
		},
		"crlf line endings": {
			text: "writer:\r\n  role: W\r\n",
			err:  schema.ValidationError{Field: "writer.role", Message: "Missing required field: role"},
			want: LineRange(1, 2, 9),
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Locate(tt.text, tt.err))
		})
	}
}

// Every diagnostic of a lint pass must point at a line that exists in the document.
func TestLocate_RangesStayInsideDocument(t *testing.T) {
	t.Parallel()

	l := newTestLinter(t)
	texts := []string{
		locateText,
		"role: R\nunknown: 1\n",
		"a:\n  b:\n    c: 1\n",
		"t:\n  description: d\n  expected_output: o\n  tools: nope\n",
	}
	for _, text := range texts {
		lines := splitLines(text)
		for _, doc := range []Document{agentsDoc(text), tasksDoc(text)} {
			diags, _ := l.Lint(doc)
			for _, d := range diags {
				assert.Less(t, d.Range.Start.Line, len(lines), d.Message)
				assert.LessOrEqual(t, d.Range.Start.Character, d.Range.End.Character, d.Message)
			}
		}
	}
}
