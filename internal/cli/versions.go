package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crewlint/crewlint/internal/schema"
)

var versionsCmd = &cobra.Command{
	Use:           "versions",
	Short:         "List the CrewAI schema versions crewlint knows",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(optionsFromFlags(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close()
		printVersions(a.registry, a.out)
		return nil
	},
}

func init() {
	versionsCmd.GroupID = GroupSchema
	rootCmd.AddCommand(versionsCmd)
}

func printVersions(r *schema.Registry, out io.Writer) {
	latest, hasLatest := r.Latest()
	for _, v := range r.AvailableVersions() {
		if hasLatest && v == latest.Version {
			fmt.Fprintf(out, "%s (%s)\n", v, schema.LatestAlias)
			continue
		}
		fmt.Fprintln(out, v)
	}
}
