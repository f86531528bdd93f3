// Package cli provides the Cobra-based command line interface of crewlint. It
// defines the lint and watch commands that publish diagnostics for CrewAI
// agents.yaml and tasks.yaml files, and the schema utilities (hover, schema,
// versions, detect) built on the same registry.
package cli

import (
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output
const (
	GroupLinting = "linting"
	GroupSchema  = "schema"
	GroupInfo    = "info"
)

var rootCmd = &cobra.Command{
	Use:   "crewlint",
	Short: "Lint CrewAI agents.yaml and tasks.yaml files",
	Long: `crewlint validates CrewAI agent and task configuration files against the
schema of the CrewAI release used by the project, and reports every problem with
its line and column.

The schema version is detected from requirements.txt, pyproject.toml or
poetry.lock unless --schema-version or the schema_version setting selects one.`,
	Example: `  # Lint the agents.yaml and tasks.yaml of a crew
  crewlint lint src/my_crew/config

  # Lint specific files, in order (agents first to check task references)
  crewlint lint config/agents.yaml config/tasks.yaml

  # Re-lint on every save
  crewlint watch src/my_crew/config

  # Show what a field means
  crewlint hover config/agents.yaml 3 5`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupLinting, Title: "Linting:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupSchema, Title: "Schema:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupInfo, Title: "Information:"})

	rootCmd.SetHelpCommandGroupID(GroupInfo)
	rootCmd.SetCompletionCommandGroupID(GroupInfo)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", ".crewlint.json", "Path to config file")
	rootCmd.PersistentFlags().String("schema-version", "", "CrewAI schema version to validate against (default: detect)")
	rootCmd.PersistentFlags().String("format", "", "Output format: text or json (default from config)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}
