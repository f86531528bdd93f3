package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crewlint/crewlint/internal/lint"
)

var lintProjectRoot string

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint agents.yaml and tasks.yaml files",
	Long: `Lint CrewAI agents.yaml and tasks.yaml files against the selected schema.

Each path may be a directory or a file. A directory contributes its agents.yaml
followed by its tasks.yaml. Files are linted in the order given; a tasks.yaml is
checked for undefined agent references only when the agents.yaml of the same
directory was linted before it.

With no paths, the current directory is linted.

Exit codes:
  0 - No problems
  1 - Errors found (or warnings with fail_on_warning)
  3 - Invalid arguments (missing or unrecognized files)
  4 - Configuration error`,
	Example: `  crewlint lint
  crewlint lint src/research_crew/config
  crewlint lint --format json config/agents.yaml config/tasks.yaml`,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(optionsFromFlags(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close()
		return runLint(cmd, a, args)
	},
}

func init() {
	lintCmd.GroupID = GroupLinting
	lintCmd.Flags().StringVar(&lintProjectRoot, "project-root", "", "Directory holding requirements.txt/pyproject.toml/poetry.lock (default: current directory)")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, a *app, args []string) error {
	paths, err := collectDocuments(args)
	if err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
		return NewExitError(ExitInvalidArguments)
	}

	a.selectVersion(cmd.Context(), lintProjectRoot)

	results, err := lintFiles(a.linter, paths)
	if err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
		return NewExitError(ExitInvalidArguments)
	}
	if err := writeResults(a.out, a.cfg.Format, results); err != nil {
		return err
	}
	return lintExit(summarize(results), a.cfg.FailOnWarning)
}

// lintFiles lints paths in order and returns one result per document.
func lintFiles(l *lint.Linter, paths []string) ([]fileResult, error) {
	results := make([]fileResult, 0, len(paths))
	for _, path := range paths {
		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		diags, _ := l.Lint(doc)
		results = append(results, fileResult{Path: path, Diagnostics: diags})
	}
	return results, nil
}

func lintExit(s summary, failOnWarning bool) error {
	if s.Errors > 0 || (failOnWarning && s.Warnings > 0) {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// collectDocuments expands args into absolute document paths. Directories yield
// their agents.yaml then tasks.yaml; files must be named one of the two.
func collectDocuments(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var paths []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("path not found: %s", arg)
			}
			return nil, fmt.Errorf("checking %s: %w", arg, err)
		}

		if !info.IsDir() {
			if _, ok := lint.KindOf(abs); !ok {
				return nil, fmt.Errorf("%s is not an %s or %s file", arg, lint.AgentsFileName, lint.TasksFileName)
			}
			paths = append(paths, abs)
			continue
		}

		found := dirDocuments(abs)
		if len(found) == 0 {
			return nil, fmt.Errorf("no %s or %s in %s", lint.AgentsFileName, lint.TasksFileName, arg)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func dirDocuments(dir string) []string {
	var found []string
	for _, name := range []string{lint.AgentsFileName, lint.TasksFileName} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			found = append(found, path)
		}
	}
	return found
}
