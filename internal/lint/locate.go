package lint

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crewlint/crewlint/internal/schema"
)

const missingFieldMarker = "Missing required field:"

// LineOf returns the 0-based line for a dotted field path such as "task.agent".
//
// The first line whose trimmed text starts with "<root>:" anchors the record. A
// one-segment path resolves to the anchor (or line 0 when absent). Otherwise the
// record's section, which ends at the next non-empty line without indentation, is
// searched case-insensitively for "<field>:" preceded by whitespace; the anchor is
// returned when the field is not written out. An unknown root resolves to line 0.
func LineOf(text, fieldPath string) int {
	lines := splitLines(text)
	parts := strings.Split(fieldPath, ".")
	rootKey := parts[0]
	fieldName := parts[len(parts)-1]

	anchor := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), rootKey+":") {
			anchor = i
			break
		}
	}

	if len(parts) == 1 {
		return max(0, anchor)
	}
	if anchor < 0 {
		return 0
	}

	fieldRe := regexp.MustCompile(`(?i)\s+` + regexp.QuoteMeta(fieldName) + `\s*:`)
	for i := anchor + 1; i < len(lines); i++ {
		line := lines[i]
		if indentOf(line) == 0 && strings.TrimSpace(line) != "" {
			break
		}
		if fieldRe.MatchString(line) {
			return i
		}
	}
	return anchor
}

// Locate maps a validation error to a range of text. Missing-field errors span
// from the first non-blank character of the resolved line to its end; other
// errors span the field name on that line, or the whole line when the name does
// not occur in it.
func Locate(text string, verr schema.ValidationError) Range {
	line := LineOf(text, verr.Field)
	lines := splitLines(text)
	lineText := ""
	if line < len(lines) {
		lineText = lines[line]
	}

	start, end := 0, utf8.RuneCountInString(lineText)
	if strings.Contains(verr.Message, missingFieldMarker) {
		start = indentOf(lineText)
	} else {
		parts := strings.Split(verr.Field, ".")
		fieldName := parts[len(parts)-1]
		if idx := strings.Index(lineText, fieldName); idx >= 0 {
			start = utf8.RuneCountInString(lineText[:idx])
			end = start + utf8.RuneCountInString(fieldName)
		}
	}
	return LineRange(line, start, end)
}

// indentOf returns the rune offset of the first non-whitespace character, or the
// line length for a blank line.
func indentOf(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			return n
		}
		n++
	}
	return n
}
