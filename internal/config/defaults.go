// Package config loads crewlint settings from JSON files and CREWLINT_* environment
// variables using koanf, and validates them.
package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"schema_version":    "",
		"format":            "text",
		"color":             true,
		"log_level":         "warn",
		"fail_on_warning":   false,
		"watch_debounce_ms": 100,
	}
}
