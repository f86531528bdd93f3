package schema

import (
	"math"
	"time"
)

// IsValidType reports whether value matches any tag of the union. Tags outside
// string|number|boolean|array|object never match. There is no coercion: "42" is
// not a number.
func IsValidType(value any, t FieldType) bool {
	for _, tag := range t {
		if isValidTag(value, tag) {
			return true
		}
	}
	return false
}

func isValidTag(value any, tag TypeTag) bool {
	switch tag {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		return isNumber(value)
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeArray:
		_, ok := value.([]any)
		return ok
	case TypeObject:
		return isObject(value)
	default:
		return false
	}
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func isObject(value any) bool {
	switch v := value.(type) {
	case *Record:
		return v != nil
	case map[string]any:
		return v != nil
	case time.Time:
		return true
	}
	return false
}

// TypeName returns the runtime type name of a decoded YAML value, using the same
// vocabulary as TypeTag plus "null".
func TypeName(value any) string {
	switch {
	case value == nil:
		return "null"
	case isValidTag(value, TypeString):
		return string(TypeString)
	case isNumber(value):
		return string(TypeNumber)
	case isValidTag(value, TypeBoolean):
		return string(TypeBoolean)
	case isValidTag(value, TypeArray):
		return string(TypeArray)
	case isObject(value):
		return string(TypeObject)
	default:
		return "unknown"
	}
}

// Truthy reports whether value counts as present for a required field. nil, "",
// false, zero and NaN are falsy; every other value, including empty arrays and
// empty mappings, is truthy.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case float64:
		return v != 0 && !math.IsNaN(v)
	case *Record:
		return v != nil
	default:
		return true
	}
}
