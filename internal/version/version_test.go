// Package version_test tests version comparison, normalization, and compatibility notices.
// Related: internal/version/version.go, internal/version/compat.go
// Tags: version, compare, normalize, compatibility
package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b string
		want int
	}{
		"equal":                 {a: "0.102.0", b: "0.102.0", want: 0},
		"minor numeric":         {a: "0.9.0", b: "0.102.0", want: -1},
		"major":                 {a: "1.0.0", b: "0.999.999", want: 1},
		"patch":                 {a: "0.102.1", b: "0.102.0", want: 1},
		"missing patch is zero": {a: "0.102", b: "0.102.0", want: 0},
		"extra component":       {a: "0.102.0.1", b: "0.102.0", want: 1},
		"v prefix":              {a: "v0.103.0", b: "0.102.0", want: 1},
		"non numeric is zero":   {a: "0.x.0", b: "0.0.0", want: 0},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, Compare(tt.b, tt.a), "antisymmetric")
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"patch dropped":   {input: "0.102.5", want: "0.102.0"},
		"already minor":   {input: "0.102.0", want: "0.102.0"},
		"two components":  {input: "1.2", want: "1.2.0"},
		"one component":   {input: "1", want: "1"},
		"four components": {input: "0.102.3.1", want: "0.102.0"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestCheckCompatibility(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		version string
		want    Notice
	}{
		"earliest supported": {
			version: "0.102.0",
			want:    Notice{},
		},
		"older": {
			version: "0.95.0",
			want: Notice{
				Level:   NoticeWarning,
				Message: "CrewAI version 0.95.0 is not supported. The earliest supported version is 0.102.0.",
			},
		},
		"one minor below": {
			version: "0.101.0",
			want: Notice{
				Level:   NoticeWarning,
				Message: "CrewAI version 0.101.0 is not supported. The earliest supported version is 0.102.0.",
			},
		},
		"one minor above": {
			version: "0.103.0",
			want: Notice{
				Level:   NoticeInfo,
				Message: "Using CrewAI schema version 0.103.0",
			},
		},
		"newer": {
			version: "0.108.0",
			want: Notice{
				Level:   NoticeInfo,
				Message: "Using CrewAI schema version 0.108.0",
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := CheckCompatibility(tt.version)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Level == NoticeNone, got.Empty())
		})
	}
}
