package focus

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/analysis"
	"github.com/depscope/depscope/cmd/analyze"
	"github.com/depscope/depscope/formatters"
)

type focusOptions struct {
	rootPath     string
	moduleBase   string
	excludeDirs  []string
	depth        int
	outputFormat string
}

// Cmd represents the focus command.
var Cmd = NewCommand()

// NewCommand returns a new focus command instance.
func NewCommand() *cobra.Command {
	opts := &focusOptions{
		depth:        1,
		outputFormat: "json",
	}

	cmd := &cobra.Command{
		Use:   "focus <file>",
		Short: "Show the neighborhood subgraph around a file",
		Long: `Extract the induced subgraph of all files within a given number of
hops of the focus file, following import edges in either direction.

Examples:
  depscope focus src/api.py -r ./myproject
  depscope focus src/api.py -r ./myproject -d 2 -f dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFocus(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.rootPath, "root", "r", ".", "Project root directory")
	cmd.Flags().StringVarP(&opts.moduleBase, "module-base", "m", "", "Root package name qualifying absolute imports")
	cmd.Flags().StringSliceVar(&opts.excludeDirs, "exclude", nil, "Additional directory names to exclude (comma-separated)")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, "Neighborhood depth in hops (0 = focus file alone)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat, "Output format (json, dot)")

	return cmd
}

func runFocus(cmd *cobra.Command, opts *focusOptions, focusArg string) error {
	formatter, err := formatters.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	session, _, err := analyze.BuildSession(cmd.Context(), opts.rootPath, opts.moduleBase, opts.excludeDirs)
	if err != nil {
		return err
	}

	focusPath, err := analyze.ResolveInputPath(session.Root, focusArg)
	if err != nil {
		return fmt.Errorf("failed to resolve focus file %q: %w", focusArg, err)
	}

	subgraph, err := analysis.Neighborhood(session.Graph, focusPath, opts.depth)
	if err != nil {
		return err
	}

	output, err := formatter.Format(subgraph, formatters.FormatOptions{
		Label: fmt.Sprintf("%s • depth %d", focusArg, opts.depth),
	})
	if err != nil {
		return fmt.Errorf("failed to format neighborhood: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
