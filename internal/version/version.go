// Package version selects the CrewAI schema version for a project.
//
// The package includes:
//   - Dot-separated version parsing and comparison (version.go)
//   - Manifest scanning of requirements.txt, pyproject.toml and poetry.lock (detect.go, manifest.go)
//   - The compatibility notice shown for the selected schema (compat.go)
package version

import (
	"strconv"
	"strings"
)

// Compare compares two version strings component-wise. Components beyond the
// patch level are compared too, with missing trailing components treated as 0.
func Compare(a, b string) int {
	ap := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bp := strings.Split(strings.TrimPrefix(b, "v"), ".")
	n := len(ap)
	if len(bp) > n {
		n = len(bp)
	}
	for i := 0; i < n; i++ {
		if c := compareInts(component(ap, i), component(bp, i)); c != 0 {
			return c
		}
	}
	return 0
}

// Normalize truncates a version to MAJOR.MINOR.0. Schemas are versioned at minor
// granularity, so the patch level never selects a schema.
func Normalize(v string) string {
	parts := strings.Split(v, ".")
	if len(parts) >= 2 {
		return parts[0] + "." + parts[1] + ".0"
	}
	return v
}

func component(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return n
}

// compareInts compares two integers and returns -1, 0, or 1.
func compareInts(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
