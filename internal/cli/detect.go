package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewlint/crewlint/internal/version"
)

var detectCmd = &cobra.Command{
	Use:   "detect [dir]",
	Short: "Show the CrewAI version declared by a project",
	Long: `Detect the CrewAI version declared in requirements.txt, pyproject.toml or
poetry.lock (checked in that order) and print it truncated to MAJOR.MINOR.0.
Prints "latest" when no manifest declares crewai.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(optionsFromFlags(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close()

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		detected := version.NewDetector(a.logger).Detect(cmd.Context(), dir)
		fmt.Fprintln(a.out, detected)

		if detected != version.Latest {
			if notice := version.CheckCompatibility(detected); notice.Level == version.NoticeWarning {
				fmt.Fprintln(a.errOut, notice.Message)
			}
		}
		return nil
	},
}

func init() {
	detectCmd.GroupID = GroupSchema
	rootCmd.AddCommand(detectCmd)
}
