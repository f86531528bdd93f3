package schema

import "fmt"

// Validator validates one record.
type Validator func(rec *Record) ValidationResult

// NewValidator returns a Validator for s.
//
// Required fields are checked first, in declaration order; a falsy value ("", 0,
// false, null) counts as missing. Then every key of the record is checked in
// source order: required keys are skipped, unknown keys are reported as wrong-case
// or unrecognized, and known keys get a type check and the optional custom
// predicate, which are independent of each other.
func NewValidator(s RecordSchema) Validator {
	required := make(map[string]struct{}, len(s.RequiredFields))
	for _, name := range s.RequiredFields {
		required[name] = struct{}{}
	}

	return func(rec *Record) ValidationResult {
		result := ValidationResult{Valid: true}

		for _, name := range s.RequiredFields {
			v, _ := rec.Get(name)
			if !Truthy(v) {
				result.AddError(ValidationError{
					Field:    name,
					Message:  fmt.Sprintf("Missing required field: %s", name),
					Severity: SeverityError,
				})
			}
		}

		rec.Each(func(key string, value any) bool {
			if _, ok := required[key]; ok {
				return true
			}

			def, ok := s.Field(key)
			if !ok {
				if canonical, found := s.FoldField(key); found {
					result.AddError(ValidationError{
						Field:    key,
						Message:  fmt.Sprintf("Field '%s' uses incorrect case. Use '%s' instead.", key, canonical.Name),
						Severity: SeverityError,
					})
				} else {
					result.AddError(ValidationError{
						Field:    key,
						Message:  fmt.Sprintf("Unrecognized field: '%s'. This field is not defined in the schema.", key),
						Severity: SeverityError,
					})
				}
				return true
			}

			if !IsValidType(value, def.Type) {
				result.AddError(ValidationError{
					Field:    key,
					Message:  fmt.Sprintf("Field '%s' has invalid type. Expected %s, got %s.", key, def.Type, TypeName(value)),
					Severity: SeverityWarning,
				})
			}

			if def.Validator != nil && !def.Validator(value) {
				result.AddError(ValidationError{
					Field:    key,
					Message:  fmt.Sprintf("Field '%s' failed validation.", key),
					Severity: SeverityWarning,
				})
			}
			return true
		})

		return result
	}
}
