package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crewlint/crewlint/internal/lint"
	"github.com/crewlint/crewlint/internal/schema"
)

var hoverCmd = &cobra.Command{
	Use:   "hover <file> <line> <column>",
	Short: "Describe the schema field at a position",
	Long: `Print the schema documentation of the key at the given 1-based line and column
of an agents.yaml or tasks.yaml file: whether it is required, what it means and
which types it accepts.`,
	Example: `  crewlint hover config/agents.yaml 3 5`,
	Args:          cobra.ExactArgs(3),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(optionsFromFlags(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close()

		line, lineErr := strconv.Atoi(args[1])
		col, colErr := strconv.Atoi(args[2])
		if lineErr != nil || colErr != nil || line < 1 || col < 1 {
			fmt.Fprintf(a.errOut, "Error: line and column must be positive integers\n")
			return NewExitError(ExitInvalidArguments)
		}

		a.selectVersion(cmd.Context(), "")
		vs, ok := a.registry.CurrentSchema()
		if !ok {
			fmt.Fprintln(a.errOut, "Error: no schema available")
			return NewExitError(ExitConfigError)
		}
		return runHover(args[0], lint.Position{Line: line - 1, Character: col - 1}, vs, a.out, a.errOut)
	},
}

func init() {
	hoverCmd.GroupID = GroupSchema
	rootCmd.AddCommand(hoverCmd)
}

func runHover(path string, pos lint.Position, vs *schema.VersionedSchema, out, errOut io.Writer) error {
	kind, ok := lint.KindOf(path)
	if !ok {
		fmt.Fprintf(errOut, "Error: %s is not an %s or %s file\n", path, lint.AgentsFileName, lint.TasksFileName)
		return NewExitError(ExitInvalidArguments)
	}
	doc, err := readDocument(path)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return NewExitError(ExitInvalidArguments)
	}

	info, ok := lint.HoverAt(doc.Text, kind, pos, vs)
	if !ok {
		fmt.Fprintf(out, "No schema field at %d:%d\n", pos.Line+1, pos.Character+1)
		return nil
	}
	fmt.Fprintln(out, info.Markdown())
	return nil
}
