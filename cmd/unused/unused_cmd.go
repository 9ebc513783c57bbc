package unused

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/analysis"
	"github.com/depscope/depscope/cmd/analyze"
)

type unusedOptions struct {
	rootPath    string
	moduleBase  string
	excludeDirs []string
}

// Cmd represents the unused command.
var Cmd = NewCommand()

// NewCommand returns a new unused command instance.
func NewCommand() *cobra.Command {
	opts := &unusedOptions{}

	cmd := &cobra.Command{
		Use:   "unused <entry-point>",
		Short: "List files not required by an entry point",
		Long: `Compute the files transitively required by an entry point and list
the remaining, potentially unused files.

Examples:
  depscope unused main.py -r ./myproject
  depscope unused src/app.py -r ./myproject -m mypackage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnused(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.rootPath, "root", "r", ".", "Project root directory")
	cmd.Flags().StringVarP(&opts.moduleBase, "module-base", "m", "", "Root package name qualifying absolute imports")
	cmd.Flags().StringSliceVar(&opts.excludeDirs, "exclude", nil, "Additional directory names to exclude (comma-separated)")

	return cmd
}

func runUnused(cmd *cobra.Command, opts *unusedOptions, entryArg string) error {
	session, _, err := analyze.BuildSession(cmd.Context(), opts.rootPath, opts.moduleBase, opts.excludeDirs)
	if err != nil {
		return err
	}

	entryPath, err := analyze.ResolveInputPath(session.Root, entryArg)
	if err != nil {
		return fmt.Errorf("failed to resolve entry point %q: %w", entryArg, err)
	}

	classification, err := analysis.Classify(session.Graph, entryPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total Python files: %d\n", session.Graph.Order())
	fmt.Fprintf(out, "Total dependencies: %d\n", session.Graph.Size())
	fmt.Fprintf(out, "Required by %s: %d files\n", filepath.Base(entryPath), len(classification.Required))
	fmt.Fprintf(out, "Not required by %s: %d files\n", filepath.Base(entryPath), len(classification.Unused))

	if len(classification.Unused) > 0 {
		fmt.Fprintln(out, "\nPotentially unused files:")
		unusedPaths := make([]string, 0, len(classification.Unused))
		for path := range classification.Unused {
			unusedPaths = append(unusedPaths, path)
		}
		sort.Strings(unusedPaths)
		for _, path := range unusedPaths {
			if rel, err := filepath.Rel(session.Root, path); err == nil {
				path = rel
			}
			fmt.Fprintf(out, "  - %s\n", path)
		}
	}

	return nil
}
