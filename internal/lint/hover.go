package lint

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/crewlint/crewlint/internal/schema"
)

var keyLinePattern = regexp.MustCompile(`^(\s*)([^:]+):`)

// HoverInfo describes the schema field under the cursor.
type HoverInfo struct {
	Word        string
	Path        string
	Required    bool
	Description string
	Type        schema.FieldType
}

// Markdown renders the hover card.
func (h HoverInfo) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\n", h.Word)
	if h.Required {
		sb.WriteString("*Required field*\n\n")
	} else {
		sb.WriteString("*Optional field*\n\n")
	}
	if h.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", h.Description)
	}
	if len(h.Type) > 0 {
		fmt.Fprintf(&sb, "Type: `%s`", h.Type.Display())
	}
	return sb.String()
}

// RecordSchemaFor returns the record schema used for documents of kind.
func RecordSchemaFor(kind Kind, vs *schema.VersionedSchema) schema.RecordSchema {
	if kind == KindTasks {
		return vs.Task
	}
	return vs.Agent
}

// IsFieldRequired reports whether field is required in the file named fileName.
// Unrecognized file names never have required fields.
func IsFieldRequired(field, fileName string, vs *schema.VersionedSchema) bool {
	kind, ok := KindOf(fileName)
	if !ok || vs == nil {
		return false
	}
	return RecordSchemaFor(kind, vs).IsRequired(field)
}

// HoverAt returns schema information for the key under pos. It returns false when
// the cursor is not on a word, the word is not a key, or the key is not a field of
// the record schema.
func HoverAt(text string, kind Kind, pos Position, vs *schema.VersionedSchema) (*HoverInfo, bool) {
	if vs == nil {
		return nil, false
	}
	lines := splitLines(text)
	if pos.Line < 0 || pos.Line >= len(lines) {
		return nil, false
	}
	lineText := lines[pos.Line]

	word, start, ok := wordAt(lineText, pos.Character)
	if !ok || !isKeyAt(lineText, start) {
		return nil, false
	}

	path, ok := keyPath(lines, pos.Line)
	if !ok {
		return nil, false
	}

	parts := strings.Split(path, ".")
	field := parts[len(parts)-1]
	rs := RecordSchemaFor(kind, vs)
	def, ok := rs.Field(field)
	if !ok {
		return nil, false
	}

	return &HoverInfo{
		Word:        word,
		Path:        path,
		Required:    rs.IsRequired(field),
		Description: def.Description,
		Type:        def.Type,
	}, true
}

// wordAt returns the identifier touching rune offset char and the byte offset of
// its start.
func wordAt(line string, char int) (string, int, bool) {
	runes := []rune(line)
	if char < 0 || char > len(runes) {
		return "", 0, false
	}
	start, end := char, char
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	if start == end {
		return "", 0, false
	}
	return string(runes[start:end]), len(string(runes[:start])), true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isKeyAt reports whether the text at byte offset start lies before a colon.
func isKeyAt(line string, start int) bool {
	colon := strings.Index(line[start:], ":")
	if colon < 0 {
		return false
	}
	beforeColon := strings.TrimSpace(line[:start+colon])
	return strings.Contains(beforeColon, strings.TrimSpace(line[:start]))
}

// keyPath builds the dotted path of the key on line by walking up to the keys of
// less indented lines.
func keyPath(lines []string, line int) (string, bool) {
	lineText := lines[line]
	m := keyLinePattern.FindStringSubmatch(lineText)
	if m == nil {
		return "", false
	}
	current := strings.TrimSpace(m[2])
	indent := indentOf(lineText)

	var parents []string
	for i := line - 1; i >= 0; i-- {
		parentText := lines[i]
		parentIndent := indentOf(parentText)
		if parentIndent >= indent {
			continue
		}
		pm := keyLinePattern.FindStringSubmatch(parentText)
		if pm == nil {
			continue
		}
		parents = append([]string{strings.TrimSpace(pm[2])}, parents...)
		indent = parentIndent
		if parentIndent == 0 {
			break
		}
	}

	if len(parents) > 0 {
		return strings.Join(parents, ".") + "." + current, true
	}
	return current, true
}
