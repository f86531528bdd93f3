package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crewlint/crewlint/internal/lint"
)

var watchProjectRoot string

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-lint agents.yaml and tasks.yaml whenever they change",
	Long: `Watch a crew configuration directory and re-lint agents.yaml and tasks.yaml
every time one of them is saved. Rapid saves are coalesced using the
watch_debounce_ms setting. Stop with Ctrl+C.`,
	Example: `  crewlint watch
  crewlint watch src/research_crew/config`,
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
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, a, dir)
	},
}

func init() {
	watchCmd.GroupID = GroupLinting
	watchCmd.Flags().StringVar(&watchProjectRoot, "project-root", "", "Directory holding requirements.txt/pyproject.toml/poetry.lock (default: current directory)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, a *app, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		fmt.Fprintf(a.errOut, "Error: resolving %s: %v\n", dir, err)
		return NewExitError(ExitInvalidArguments)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		fmt.Fprintf(a.errOut, "Error: not a directory: %s\n", dir)
		return NewExitError(ExitInvalidArguments)
	}

	a.selectVersion(ctx, watchProjectRoot)

	w := lint.NewWatcher(a.linter,
		lint.WithDebounce(time.Duration(a.cfg.WatchDebounceMs)*time.Millisecond),
		lint.WatchLogger(a.logger),
		lint.OnLint(func(doc lint.Document, diags []lint.Diagnostic) {
			if err := writeResults(a.out, a.cfg.Format, []fileResult{{Path: doc.Path, Diagnostics: diags}}); err != nil {
				fmt.Fprintf(a.errOut, "Error: %v\n", err)
			}
		}),
		lint.OnRemove(func(path string) {
			fmt.Fprintf(a.out, "removed %s\n", path)
		}),
	)

	if err := w.Run(ctx, abs); err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
		return err
	}
	return nil
}
