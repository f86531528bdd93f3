package version

import "fmt"

// EarliestSupported is the oldest CrewAI release with a schema.
const EarliestSupported = "0.102.0"

// NoticeLevel is the display level of a compatibility notice.
type NoticeLevel string

const (
	NoticeNone    NoticeLevel = ""
	NoticeWarning NoticeLevel = "warning"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is the message shown after a schema version is selected.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Level == NoticeNone
}

// CheckCompatibility returns the notice for the given schema version: nothing for
// the earliest supported release, a warning for older versions and an
// informational message for newer ones.
func CheckCompatibility(schemaVersion string) Notice {
	if schemaVersion == EarliestSupported {
		return Notice{}
	}
	if Compare(schemaVersion, EarliestSupported) < 0 {
		return Notice{
			Level:   NoticeWarning,
			Message: fmt.Sprintf("CrewAI version %s is not supported. The earliest supported version is %s.", schemaVersion, EarliestSupported),
		}
	}
	return Notice{
		Level:   NoticeInfo,
		Message: fmt.Sprintf("Using CrewAI schema version %s", schemaVersion),
	}
}
