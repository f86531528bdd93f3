// Package lint_test tests directory watching and re-linting on change.
// Related: internal/lint/watch.go
// Tags: lint, watch, fsnotify, debounce
package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tasksWithWriter = "research_task:\n  description: d\n  expected_output: o\n  agent: writer\n"

func TestWatcher_LintPathsOrdersAgentsFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	agentsPath := filepath.Join(dir, AgentsFileName)
	tasksPath := filepath.Join(dir, TasksFileName)
	require.NoError(t, os.WriteFile(agentsPath, []byte(validAgents), 0o644))
	require.NoError(t, os.WriteFile(tasksPath, []byte(tasksWithWriter), 0o644))

	var linted []string
	w := NewWatcher(newTestLinter(t), OnLint(func(doc Document, _ []Diagnostic) {
		linted = append(linted, doc.Path)
	}))
	w.lintPaths([]string{tasksPath, agentsPath, filepath.Join(dir, "missing", TasksFileName)})

	assert.Equal(t, []string{agentsPath, tasksPath}, linted)
	diags, ok := w.linter.Diagnostics().Get(tasksPath)
	require.True(t, ok)
	require.Len(t, diags, 1, "reference resolves against the agents linted in the same pass")
	assert.Contains(t, diags[0].Message, "Agent 'writer'")
}

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	agentsPath := filepath.Join(dir, AgentsFileName)
	tasksPath := filepath.Join(dir, TasksFileName)
	require.NoError(t, os.WriteFile(agentsPath, []byte(validAgents), 0o644))

	type lintEvent struct {
		path  string
		diags []Diagnostic
	}
	lints := make(chan lintEvent, 16)
	removed := make(chan string, 4)

	l := newTestLinter(t)
	w := NewWatcher(l,
		WithDebounce(10*time.Millisecond),
		OnLint(func(doc Document, diags []Diagnostic) { lints <- lintEvent{doc.Path, diags} }),
		OnRemove(func(path string) { removed <- path }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, dir) }()

	// waitFor returns the first lint of path whose diagnostics satisfy match.
	// Saves can be observed half-written, so earlier lints are skipped.
	waitFor := func(path string, match func([]Diagnostic) bool) lintEvent {
		t.Helper()
		timeout := time.After(5 * time.Second)
		for {
			select {
			case ev := <-lints:
				if ev.path == path && match(ev.diags) {
					return ev
				}
			case <-timeout:
				t.Fatalf("timed out waiting for lint of %s", path)
			}
		}
	}

	waitFor(agentsPath, func(diags []Diagnostic) bool { return len(diags) == 0 })

	require.NoError(t, os.WriteFile(tasksPath, []byte(tasksWithWriter), 0o644))
	ev := waitFor(tasksPath, func(diags []Diagnostic) bool { return len(diags) == 1 })
	assert.Contains(t, ev.diags[0].Message, "Agent 'writer'")

	require.NoError(t, os.Remove(tasksPath))
	select {
	case path := <-removed:
		assert.Equal(t, tasksPath, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for removal")
	}
	_, ok := l.Diagnostics().Get(tasksPath)
	assert.False(t, ok)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_RunMissingDirectory(t *testing.T) {
	t.Parallel()

	w := NewWatcher(newTestLinter(t))
	err := w.Run(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}
