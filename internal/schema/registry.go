package schema

import (
	"sort"

	"go.uber.org/zap"

	"github.com/crewlint/crewlint/internal/version"
)

const (
	// LatestAlias selects the highest registered version.
	LatestAlias = "latest"

	// MessagePrefix is prepended to every message returned by the registry.
	MessagePrefix = "CrewAI Lint: "

	noSchemaMessage = "No schema available"
)

// Registry holds one VersionedSchema per framework version and tracks which one is
// current. Schemas are registered at startup and never mutated afterwards.
type Registry struct {
	schemas map[string]*VersionedSchema
	order   []string
	latest  *VersionedSchema
	current string
	logger  *zap.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an empty registry whose current version is LatestAlias.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		schemas: make(map[string]*VersionedSchema),
		current: LatestAlias,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterSchema stores s under s.Version, replacing any schema registered for the
// same version. Replacing the schema bound to the latest alias rebinds the alias.
func (r *Registry) RegisterSchema(s *VersionedSchema) {
	if s == nil {
		return
	}
	if _, exists := r.schemas[s.Version]; !exists {
		r.order = append(r.order, s.Version)
	}
	r.schemas[s.Version] = s
	if r.latest != nil && r.latest.Version == s.Version {
		r.latest = s
	}
}

// Finalize binds LatestAlias to the registered schema with the highest
// (major, minor, patch). Among equal versions the one registered last wins.
func (r *Registry) Finalize() {
	if len(r.order) == 0 {
		r.latest = nil
		return
	}
	sorted := make([]*VersionedSchema, 0, len(r.order))
	for _, v := range r.order {
		sorted = append(sorted, r.schemas[v])
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return version.Compare(sorted[i].Version, sorted[j].Version) < 0
	})
	r.latest = sorted[len(sorted)-1]
	r.logger.Debug("bound latest schema alias", zap.String("version", r.latest.Version))
}

// SetCurrentVersion selects the version used by CurrentSchema. Unknown versions are
// accepted and resolved through the fallback chain at read time.
func (r *Registry) SetCurrentVersion(v string) {
	r.current = v
}

// CurrentVersion returns the selected version string, which may be unknown or
// LatestAlias.
func (r *Registry) CurrentVersion() string {
	return r.current
}

// CurrentSchema resolves the selected version, falling back to the latest alias and
// then to the last registered schema. It returns false only when the registry is
// empty.
func (r *Registry) CurrentSchema() (*VersionedSchema, bool) {
	if s, ok := r.schemas[r.current]; ok {
		return s, true
	}
	if r.latest != nil {
		if r.current != LatestAlias {
			r.logger.Debug("schema version not registered, using latest",
				zap.String("requested", r.current),
				zap.String("latest", r.latest.Version))
		}
		return r.latest, true
	}
	if n := len(r.order); n > 0 {
		return r.schemas[r.order[n-1]], true
	}
	return nil, false
}

// Latest returns the schema bound to the latest alias by Finalize.
func (r *Registry) Latest() (*VersionedSchema, bool) {
	return r.latest, r.latest != nil
}

// AvailableVersions returns the registered versions in registration order. The
// latest alias is not included.
func (r *Registry) AvailableVersions() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ValidateAgent validates rec with the current agent schema.
func (r *Registry) ValidateAgent(rec *Record) ValidationResult {
	s, ok := r.CurrentSchema()
	if !ok {
		return noSchemaResult()
	}
	return prefixMessages(s.ValidateAgent(rec))
}

// ValidateTask validates rec with the current task schema.
func (r *Registry) ValidateTask(rec *Record) ValidationResult {
	s, ok := r.CurrentSchema()
	if !ok {
		return noSchemaResult()
	}
	return prefixMessages(s.ValidateTask(rec))
}

func noSchemaResult() ValidationResult {
	return ValidationResult{
		Valid: false,
		Errors: []ValidationError{{
			Field:    "",
			Message:  noSchemaMessage,
			Severity: SeverityError,
		}},
	}
}

func prefixMessages(res ValidationResult) ValidationResult {
	out := ValidationResult{Valid: res.Valid}
	if len(res.Errors) > 0 {
		out.Errors = make([]ValidationError, len(res.Errors))
		for i, e := range res.Errors {
			out.Errors[i] = e.WithMessagePrefix(MessagePrefix)
		}
	}
	return out
}
