package analyze

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/analysis"
	"github.com/depscope/depscope/config"
	"github.com/depscope/depscope/depgraph"
	"github.com/depscope/depscope/discover"
	"github.com/depscope/depscope/formatters"
)

type analyzeOptions struct {
	rootPath     string
	moduleBase   string
	entryPoint   string
	excludeDirs  []string
	outputFormat string
}

// Cmd represents the analyze command.
var Cmd = NewCommand()

// NewCommand returns a new analyze command instance.
func NewCommand() *cobra.Command {
	opts := &analyzeOptions{
		outputFormat: "json",
	}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build the import dependency graph for a Python project",
		Long: `Build the import dependency graph for a Python project and print it
in a machine-readable format. With an entry point, nodes are classified as
entrypoint, required, or unused.

Examples:
  depscope analyze -r ./myproject
  depscope analyze -r ./myproject -e main.py -f dot
  depscope analyze -r ./myproject -m mypackage`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	addSessionFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat, "Output format (json, dot)")

	return cmd
}

func addSessionFlags(cmd *cobra.Command, opts *analyzeOptions) {
	cmd.Flags().StringVarP(&opts.rootPath, "root", "r", ".", "Project root directory")
	cmd.Flags().StringVarP(&opts.moduleBase, "module-base", "m", "", "Root package name qualifying absolute imports")
	cmd.Flags().StringVarP(&opts.entryPoint, "entry-point", "e", "", "Entry point file for reachability classification")
	cmd.Flags().StringSliceVar(&opts.excludeDirs, "exclude", nil, "Additional directory names to exclude (comma-separated)")
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	formatter, err := formatters.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	session, cfg, err := BuildSession(cmd.Context(), opts.rootPath, opts.moduleBase, opts.excludeDirs)
	if err != nil {
		return err
	}

	formatOpts := formatters.FormatOptions{
		Label:   fmt.Sprintf("%s • %d files", filepath.Base(session.Root), session.Report.FileCount),
		Skipped: session.Report.Skipped,
	}

	entryPoint := opts.entryPoint
	if entryPoint == "" {
		entryPoint = cfg.EntryPoint
	}
	if entryPoint != "" {
		entryPath, err := ResolveInputPath(session.Root, entryPoint)
		if err != nil {
			return fmt.Errorf("failed to resolve entry point %q: %w", entryPoint, err)
		}
		classification, err := analysis.Classify(session.Graph, entryPath)
		if err != nil {
			return err
		}
		formatOpts.Classification = &classification
	}

	output, err := formatter.Format(session.Graph, formatOpts)
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)

	if skipped := len(session.Report.Skipped); skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d file(s) skipped during analysis\n", skipped)
		for _, skip := range session.Report.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s: %s\n", skip.Path, skip.Reason)
		}
	}

	return nil
}

// BuildSession loads the project config under rootPath, merges flag
// overrides, and builds a fresh analysis session.
func BuildSession(ctx context.Context, rootPath, moduleBase string, excludeDirs []string) (*analysis.Session, config.Config, error) {
	if rootPath == "" {
		rootPath = "."
	}

	cfg, err := config.Load(rootPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg = cfg.Merge(moduleBase, "", excludeDirs)

	session, err := analysis.NewSession(ctx, depgraph.Options{
		Root:        rootPath,
		ModuleBase:  cfg.ModuleBase,
		ExcludeDirs: cfg.ExcludeDirs,
	})
	if err != nil {
		return nil, config.Config{}, err
	}
	return session, cfg, nil
}

// ResolveInputPath canonicalizes a user-supplied file path, interpreting
// relative paths against the project root.
func ResolveInputPath(root, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return discover.CanonicalPath(path)
}
