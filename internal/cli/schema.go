package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewlint/crewlint/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <agent|task>",
	Short: "Print the fields of the agent or task schema",
	Long: `Print every field of the agent or task record schema of the selected CrewAI
version with its type, whether it is required and its description.`,
	Example: `  crewlint schema agent
  crewlint schema task --schema-version 0.102.0`,
	Args:          cobra.ExactArgs(1),
	ValidArgs:     []string{"agent", "task"},
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(optionsFromFlags(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close()

		a.selectVersion(cmd.Context(), "")
		vs, ok := a.registry.CurrentSchema()
		if !ok {
			fmt.Fprintln(a.errOut, "Error: no schema available")
			return NewExitError(ExitConfigError)
		}
		if err := printSchema(args[0], vs, a.out); err != nil {
			fmt.Fprintf(a.errOut, "Error: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}
		return nil
	},
}

func init() {
	schemaCmd.GroupID = GroupSchema
	rootCmd.AddCommand(schemaCmd)
}

// printSchema prints the record schema named by recordKind ("agent" or "task").
func printSchema(recordKind string, vs *schema.VersionedSchema, out io.Writer) error {
	var rs schema.RecordSchema
	switch recordKind {
	case "agent":
		rs = vs.Agent
	case "task":
		rs = vs.Task
	default:
		return fmt.Errorf("unknown record kind %q (must be agent or task)", recordKind)
	}

	fmt.Fprintf(out, "Schema for %s records (CrewAI %s)\n", recordKind, vs.Version)
	fmt.Fprintf(out, "%s\n\n", strings.Repeat("=", 40))

	fmt.Fprintf(out, "Fields:\n")
	fmt.Fprintf(out, "%s\n", strings.Repeat("-", 40))

	for _, name := range rs.RequiredFields {
		if _, declared := rs.Field(name); !declared {
			fmt.Fprintf(out, "%s (required)\n", name)
		}
	}
	for _, field := range rs.OptionalFields {
		printSchemaField(field, rs.IsRequired(field.Name), out)
	}
	return nil
}

func printSchemaField(field schema.FieldDefinition, required bool, out io.Writer) {
	suffix := ""
	if required {
		suffix = " (required)"
	}
	fmt.Fprintf(out, "%s: %s%s\n", field.Name, field.Type.Display(), suffix)
	if field.Description != "" {
		fmt.Fprintf(out, "  # %s\n", field.Description)
	}
}
