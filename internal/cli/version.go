package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/crewlint/crewlint/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for crewlint",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.GroupID = GroupInfo
	rootCmd.AddCommand(versionCmd)
}

func printVersion(out io.Writer) {
	version := build.Version
	if build.IsDevBuild() {
		version += " (development build)"
	}
	fmt.Fprintf(out, "crewlint version %s\n", version)
	fmt.Fprintf(out, "Built from commit: %s\n", build.Commit)
	fmt.Fprintf(out, "Build date: %s\n", build.BuildDate)
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
}
