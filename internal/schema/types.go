// Package schema provides the versioned CrewAI record schemas and the structural
// validator used to check agents.yaml and tasks.yaml records against them.
//
// A schema validates exactly one flat level of named fields per record: required
// fields must be present with a truthy value, every other field must be declared in
// the optional field table with a matching type. There are no nested sub-schemas
// and no array element typing.
package schema

import (
	"strings"
)

// Severity classifies a validation error for display. It is a hint only: any
// error of any severity makes a ValidationResult invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// TypeTag names a primitive YAML value type.
type TypeTag string

const (
	TypeString  TypeTag = "string"
	TypeNumber  TypeTag = "number"
	TypeBoolean TypeTag = "boolean"
	TypeArray   TypeTag = "array"
	TypeObject  TypeTag = "object"
)

// FieldType is an ordered union of acceptable type tags. A single-tag union is a
// plain type.
type FieldType []TypeTag

// OneOf builds a FieldType from the given tags.
func OneOf(tags ...TypeTag) FieldType {
	return FieldType(tags)
}

// String renders the union as a comma separated list, e.g. "string,object".
func (t FieldType) String() string {
	parts := make([]string, len(t))
	for i, tag := range t {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ",")
}

// Display renders the union for humans, e.g. "string | object".
func (t FieldType) Display() string {
	parts := make([]string, len(t))
	for i, tag := range t {
		parts[i] = string(tag)
	}
	return strings.Join(parts, " | ")
}

// FieldDefinition declares one named field of a record.
type FieldDefinition struct {
	Name        string
	Type        FieldType
	Description string
	// Validator is an optional predicate run after the type check.
	Validator func(value any) bool
}

// RecordSchema is the required/optional field contract for one record kind.
// Required fields may also appear in OptionalFields to carry a description and type.
type RecordSchema struct {
	RequiredFields []string
	OptionalFields []FieldDefinition
}

// Field returns the optional field definition with the exact (case-sensitive) name.
func (s RecordSchema) Field(name string) (FieldDefinition, bool) {
	for _, f := range s.OptionalFields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// FoldField returns the first optional field whose name matches case-insensitively.
func (s RecordSchema) FoldField(name string) (FieldDefinition, bool) {
	for _, f := range s.OptionalFields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// IsRequired reports whether name is listed in RequiredFields.
func (s RecordSchema) IsRequired(name string) bool {
	for _, r := range s.RequiredFields {
		if r == name {
			return true
		}
	}
	return false
}

// Validate checks rec against the schema.
func (s RecordSchema) Validate(rec *Record) ValidationResult {
	return NewValidator(s)(rec)
}

// VersionedSchema pairs the agent and task schemas of one framework release.
type VersionedSchema struct {
	Version string
	Agent   RecordSchema
	Task    RecordSchema
}

// ValidateAgent validates a single agent record.
func (v *VersionedSchema) ValidateAgent(rec *Record) ValidationResult {
	return v.Agent.Validate(rec)
}

// ValidateTask validates a single task record.
func (v *VersionedSchema) ValidateTask(rec *Record) ValidationResult {
	return v.Task.Validate(rec)
}

// ValidationError is a single schema violation. Field is a dotted path such as
// "researcher.role"; it is empty for errors not tied to a field.
type ValidationError struct {
	Field    string
	Message  string
	Severity Severity
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// WithPathPrefix returns a copy of e with "prefix." prepended to Field.
func (e ValidationError) WithPathPrefix(prefix string) ValidationError {
	e.Field = prefix + "." + e.Field
	return e
}

// WithMessagePrefix returns a copy of e whose message starts with prefix.
// A message that already carries the prefix is left untouched.
func (e ValidationError) WithMessagePrefix(prefix string) ValidationError {
	if !strings.HasPrefix(e.Message, prefix) {
		e.Message = prefix + e.Message
	}
	return e
}

// ValidationResult is the outcome of validating one record. Errors are ordered:
// missing required fields first (in RequiredFields order), then per-field errors
// in the record's own key order.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// AddError appends an error and marks the result invalid.
func (r *ValidationResult) AddError(err ValidationError) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}
