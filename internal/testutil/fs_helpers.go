// Package testutil provides test fixtures for crewlint tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ValidAgents is an agents.yaml defining a single complete "researcher" agent.
const ValidAgents = `researcher:
  role: Senior Researcher
  goal: Find facts
  backstory: Curious by nature
`

// ValidTasks is a tasks.yaml whose only task is assigned to "researcher".
const ValidTasks = `research_task:
  description: Research the topic
  expected_output: A short report
  agent: researcher
`

type crewConfig struct {
	agents *string
	tasks  *string
	extra  map[string]string
}

// CrewOption customizes the crew created by CreateTempCrew.
type CrewOption func(*crewConfig)

// WithAgents replaces the agents.yaml content.
func WithAgents(content string) CrewOption {
	return func(c *crewConfig) {
		c.agents = &content
	}
}

// WithTasks replaces the tasks.yaml content.
func WithTasks(content string) CrewOption {
	return func(c *crewConfig) {
		c.tasks = &content
	}
}

// WithoutAgents omits agents.yaml.
func WithoutAgents() CrewOption {
	return func(c *crewConfig) {
		c.agents = nil
	}
}

// WithoutTasks omits tasks.yaml.
func WithoutTasks() CrewOption {
	return func(c *crewConfig) {
		c.tasks = nil
	}
}

// WithFile adds another file, relative to the crew directory.
func WithFile(name, content string) CrewOption {
	return func(c *crewConfig) {
		c.extra[name] = content
	}
}

// CreateTempCrew creates a temp directory holding agents.yaml and tasks.yaml
// (ValidAgents and ValidTasks unless overridden) and returns its path.
func CreateTempCrew(t *testing.T, opts ...CrewOption) string {
	t.Helper()

	agents, tasks := ValidAgents, ValidTasks
	config := &crewConfig{agents: &agents, tasks: &tasks, extra: make(map[string]string)}
	for _, opt := range opts {
		opt(config)
	}

	dir := t.TempDir()
	if config.agents != nil {
		WriteFile(t, filepath.Join(dir, "agents.yaml"), *config.agents)
	}
	if config.tasks != nil {
		WriteFile(t, filepath.Join(dir, "tasks.yaml"), *config.tasks)
	}
	for name, content := range config.extra {
		WriteFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

// WriteFiles writes files (name to content) into a new temp directory and
// returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
