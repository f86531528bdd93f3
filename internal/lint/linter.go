package lint

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/crewlint/crewlint/internal/schema"
)

// SchemaSource validates single records against the currently selected schema.
// *schema.Registry implements it.
type SchemaSource interface {
	ValidateAgent(rec *schema.Record) schema.ValidationResult
	ValidateTask(rec *schema.Record) schema.ValidationResult
}

// Linter lints documents and publishes their diagnostics. It is stateless across
// calls except for the agents store, which tasks linting reads to resolve agent
// references.
type Linter struct {
	schemas   SchemaSource
	store     AgentsStore
	published *Collection
	logger    *zap.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithStore sets the agents store. Tests use a fresh store per case.
func WithStore(s AgentsStore) Option {
	return func(l *Linter) {
		if s != nil {
			l.store = s
		}
	}
}

// WithCollection sets the collection diagnostics are published to.
func WithCollection(c *Collection) Option {
	return func(l *Linter) {
		if c != nil {
			l.published = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Linter validating records with schemas.
func New(schemas SchemaSource, opts ...Option) *Linter {
	l := &Linter{
		schemas:   schemas,
		store:     NewMemoryStore(),
		published: NewCollection(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Diagnostics returns the collection the linter publishes to.
func (l *Linter) Diagnostics() *Collection {
	return l.published
}

// Lint lints doc, publishes the result as the document's complete diagnostic set
// and returns it. Documents whose file name is not agents.yaml or tasks.yaml are
// declined without side effects; the second result reports whether doc was linted.
func (l *Linter) Lint(doc Document) ([]Diagnostic, bool) {
	kind, ok := KindOf(doc.Path)
	if !ok {
		return nil, false
	}

	diags := l.lint(kind, doc)
	l.published.Set(doc.Path, diags)
	l.logger.Debug("linted document",
		zap.String("path", doc.Path),
		zap.String("kind", string(kind)),
		zap.Int("diagnostics", len(diags)))
	return diags, true
}

func (l *Linter) lint(kind Kind, doc Document) []Diagnostic {
	parsed, err := schema.ParseDocument(doc.Text)
	if err != nil {
		return []Diagnostic{{
			Range: Range{
				Start: Position{Line: 0, Character: 0},
				End:   Position{Line: len(splitLines(doc.Text)), Character: 0},
			},
			Message:  fmt.Sprintf("Invalid YAML: %s", err),
			Severity: DiagnosticError,
		}}
	}

	root, ok := parsed.(*schema.Record)
	if !ok || root == nil {
		return []Diagnostic{{
			Range:    LineRange(0, 0, 1),
			Message:  "File must contain a valid YAML object",
			Severity: DiagnosticError,
		}}
	}

	if kind == KindAgents {
		return l.lintAgents(doc, root)
	}
	return l.lintTasks(doc, root)
}

func (l *Linter) lintAgents(doc Document, root *schema.Record) []Diagnostic {
	l.store.Put(doc.Dir(), root)

	shape := ClassifyAgents(root)
	l.logger.Debug("classified agents document", zap.String("path", doc.Path), zap.Stringer("shape", shape))
	if shape == ShapeFlat {
		return locateAll(doc.Text, l.schemas.ValidateAgent(root).Errors, "")
	}

	var diags []Diagnostic
	root.Each(func(name string, value any) bool {
		rec, ok := value.(*schema.Record)
		if !ok || rec == nil {
			diags = append(diags, notObject(doc.Text, name, "Agent '%s' must be an object with proper configuration"))
			return true
		}
		diags = append(diags, locateAll(doc.Text, l.schemas.ValidateAgent(rec).Errors, name)...)
		return true
	})
	return diags
}

func (l *Linter) lintTasks(doc Document, root *schema.Record) []Diagnostic {
	var diags []Diagnostic
	root.Each(func(name string, value any) bool {
		rec, ok := value.(*schema.Record)
		if !ok || rec == nil {
			diags = append(diags, notObject(doc.Text, name, "Task '%s' must be an object with proper configuration"))
			return true
		}
		diags = append(diags, locateAll(doc.Text, l.schemas.ValidateTask(rec).Errors, name)...)
		if d, found := l.checkAgentReference(doc, name, rec); found {
			diags = append(diags, d)
		}
		return true
	})
	return diags
}

// checkAgentReference reports a task whose string "agent" field names an agent
// missing from the agents document cached for the same directory. Without a
// cached document nothing is reported.
func (l *Linter) checkAgentReference(doc Document, taskName string, task *schema.Record) (Diagnostic, bool) {
	v, _ := task.Get("agent")
	agentName, ok := v.(string)
	if !ok || agentName == "" {
		return Diagnostic{}, false
	}

	agents, ok := l.store.Get(doc.Dir())
	if !ok {
		return Diagnostic{}, false
	}
	if agents.Has(agentName) {
		return Diagnostic{}, false
	}

	return Diagnostic{
		Range:    referenceRange(doc.Text, taskName, agentName),
		Message:  fmt.Sprintf("Agent '%s' referenced in task '%s' does not exist in agents.yaml", agentName, taskName),
		Severity: DiagnosticError,
	}, true
}

// referenceRange spans agentName at the first "agent: <agentName>" occurrence in
// text. A reference written differently (quoted, extra spaces) falls back to the
// task's agent line.
func referenceRange(text, taskName, agentName string) Range {
	lines := splitLines(text)
	phrase := "agent: " + agentName
	for i, line := range lines {
		if idx := strings.Index(line, phrase); idx >= 0 {
			start := utf8.RuneCountInString(line[:idx+len("agent: ")])
			return LineRange(i, start, start+utf8.RuneCountInString(agentName))
		}
	}

	line := LineOf(text, taskName+".agent")
	lineText := ""
	if line < len(lines) {
		lineText = lines[line]
	}
	if idx := strings.Index(lineText, agentName); idx >= 0 {
		start := utf8.RuneCountInString(lineText[:idx])
		return LineRange(line, start, start+utf8.RuneCountInString(agentName))
	}
	return LineRange(line, 0, utf8.RuneCountInString(lineText))
}

// locateAll converts validation errors to diagnostics, prefixing each field path
// with prefix when it is non-empty.
func locateAll(text string, errs []schema.ValidationError, prefix string) []Diagnostic {
	diags := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		if prefix != "" {
			e = e.WithPathPrefix(prefix)
		}
		diags = append(diags, Diagnostic{
			Range:    Locate(text, e),
			Message:  e.Message,
			Severity: severityOf(e.Severity),
		})
	}
	return diags
}

func notObject(text, name, format string) Diagnostic {
	line := LineOf(text, name)
	return Diagnostic{
		Range:    LineRange(line, 0, utf8.RuneCountInString(name)),
		Message:  fmt.Sprintf(format, name),
		Severity: DiagnosticError,
	}
}
