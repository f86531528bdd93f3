// Package testutil_test tests crew fixture creation.
// Related: internal/testutil/fs_helpers.go
// Tags: testutil, helpers, fixtures, filesystem

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateTempCrew(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts       []CrewOption
		wantAgents string
		wantTasks  string
		wantExtra  string
	}{
		"defaults": {
			wantAgents: ValidAgents,
			wantTasks:  ValidTasks,
		},
		"custom tasks": {
			opts:       []CrewOption{WithTasks("t:\n  description: d\n")},
			wantAgents: ValidAgents,
			wantTasks:  "t:\n  description: d\n",
		},
		"tasks only": {
			opts:      []CrewOption{WithoutAgents()},
			wantTasks: ValidTasks,
		},
		"agents only with manifest": {
			opts:       []CrewOption{WithoutTasks(), WithFile("requirements.txt", "crewai==0.102.0\n")},
			wantAgents: ValidAgents,
			wantExtra:  "crewai==0.102.0\n",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := CreateTempCrew(t, tc.opts...)
			checkFile(t, filepath.Join(dir, "agents.yaml"), tc.wantAgents)
			checkFile(t, filepath.Join(dir, "tasks.yaml"), tc.wantTasks)
			checkFile(t, filepath.Join(dir, "requirements.txt"), tc.wantExtra)
		})
	}
}

func TestWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "agents.yaml")
	WriteFile(t, path, "x: 1\n")
	checkFile(t, path, "x: 1\n")
}

// checkFile asserts path holds want, or does not exist when want is empty.
func checkFile(t *testing.T, path, want string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if want == "" {
		if !os.IsNotExist(err) {
			t.Errorf("expected %s to be absent, got err=%v", path, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(content) != want {
		t.Errorf("%s = %q, want %q", path, content, want)
	}
}
