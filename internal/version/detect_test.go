// Package version_test tests CrewAI version detection from project manifests.
// Related: internal/version/detect.go, internal/version/manifest.go
// Tags: version, detection, requirements, pyproject, poetry, toml
package version

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/crewlint/crewlint/internal/testutil"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		files map[string]string
		want  string
	}{
		"no manifests": {
			files: nil,
			want:  Latest,
		},
		"requirements pinned": {
			files: map[string]string{"requirements.txt": "requests==2.31.0\ncrewai==0.102.5\n"},
			want:  "0.102.0",
		},
		"requirements with extras and lower bound": {
			files: map[string]string{"requirements.txt": "crewai[tools]>=0.108.2\n"},
			want:  "0.108.0",
		},
		"requirements without crewai": {
			files: map[string]string{"requirements.txt": "crewai-tools==0.4.0\nflask\n"},
			want:  Latest,
		},
		"requirements unpinned": {
			files: map[string]string{"requirements.txt": "crewai\n"},
			want:  Latest,
		},
		"pyproject poetry dependency": {
			files: map[string]string{"pyproject.toml": `
[tool.poetry.dependencies]
python = ">=3.10,<3.13"
crewai = "^0.105.0"
`},
			want: "0.105.0",
		},
		"pyproject poetry table dependency": {
			files: map[string]string{"pyproject.toml": `
[tool.poetry.dependencies]
crewai = { version = "0.106.1", extras = ["tools"] }
`},
			want: "0.106.0",
		},
		"pyproject poetry group": {
			files: map[string]string{"pyproject.toml": `
[tool.poetry.group.dev.dependencies]
crewai = "0.107.0"
`},
			want: "0.107.0",
		},
		"pyproject pep 621": {
			files: map[string]string{"pyproject.toml": `
[project]
name = "research_crew"
dependencies = ["crewai[tools]>=0.114.0,<1.0.0"]
`},
			want: "0.114.0",
		},
		"pyproject optional dependencies": {
			files: map[string]string{"pyproject.toml": `
[project]
name = "research_crew"

[project.optional-dependencies]
agents = ["crewai==0.120.1"]
`},
			want: "0.120.0",
		},
		"pyproject that does not decode falls back to pattern": {
			files: map[string]string{"pyproject.toml": "[tool.poetry.dependencies\ncrewai = \"0.103.0\"\n"},
			want:  "0.103.0",
		},
		"poetry lock": {
			files: map[string]string{"poetry.lock": `
[[package]]
name = "appdirs"
version = "1.4.4"

[[package]]
name = "crewai"
version = "0.119.0"
`},
			want: "0.119.0",
		},
		"requirements wins over pyproject": {
			files: map[string]string{
				"requirements.txt": "crewai==0.102.0\n",
				"pyproject.toml":   "[project]\ndependencies = [\"crewai==0.130.0\"]\n",
			},
			want: "0.102.0",
		},
		"pyproject without crewai falls through to poetry lock": {
			files: map[string]string{
				"pyproject.toml": "[project]\ndependencies = [\"requests\"]\n",
				"poetry.lock":    "[[package]]\nname = \"crewai\"\nversion = \"0.110.3\"\n",
			},
			want: "0.110.0",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := testutil.WriteFiles(t, tt.files)
			got := NewDetector(nil).Detect(context.Background(), dir)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_ReadErrorLogsAndReturnsLatest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A directory where a file is expected makes ReadFile fail with a non-NotExist error.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "requirements.txt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\ndependencies = [\"crewai==0.130.0\"]\n"), 0o644))

	core, logs := observer.New(zap.WarnLevel)
	got := NewDetector(zap.New(core)).Detect(context.Background(), dir)

	assert.Equal(t, Latest, got)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "error detecting CrewAI version", logs.All()[0].Message)
}

func TestDetect_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"requirements.txt": "crewai==0.105.0\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, Latest, NewDetector(nil).Detect(ctx, dir))
}
