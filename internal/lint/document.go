// Package lint turns CrewAI agents.yaml and tasks.yaml documents into positioned
// diagnostics.
//
// A lint pass parses the document, classifies its shape, validates every record
// against the current schema, checks task-to-agent references against the most
// recently linted agents document of the same directory, and maps each error back
// to a line/column range of the original text.
package lint

import (
	"path/filepath"
	"strings"
)

// Kind identifies a recognized document.
type Kind string

const (
	KindAgents Kind = "agents"
	KindTasks  Kind = "tasks"
)

// Recognized file names.
const (
	AgentsFileName = "agents.yaml"
	TasksFileName  = "tasks.yaml"
)

// FileName returns the file name for the kind.
func (k Kind) FileName() string {
	switch k {
	case KindAgents:
		return AgentsFileName
	case KindTasks:
		return TasksFileName
	default:
		return ""
	}
}

// KindOf returns the document kind for a path, or false if its base name is not
// one of the recognized file names.
func KindOf(path string) (Kind, bool) {
	switch filepath.Base(path) {
	case AgentsFileName:
		return KindAgents, true
	case TasksFileName:
		return KindTasks, true
	default:
		return "", false
	}
}

// Document is the text of one file together with its path.
type Document struct {
	Path string
	Text string
}

// Dir returns the directory containing the document.
func (d Document) Dir() string {
	return filepath.Dir(d.Path)
}

// splitLines splits text on "\n" and drops a trailing "\r" from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
