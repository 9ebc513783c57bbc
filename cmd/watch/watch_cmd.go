package watch

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/analysis"
	"github.com/depscope/depscope/cmd/analyze"
	"github.com/depscope/depscope/discover"
	"github.com/depscope/depscope/formatters"
)

type watchOptions struct {
	rootPath    string
	moduleBase  string
	entryPoint  string
	excludeDirs []string
	port        int
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		port: 4900,
	}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a project and serve a live-updating dependency graph",
		Long: `Watch a Python project directory for changes, rebuild the dependency
graph after each change, and serve the JSON graph payload over HTTP.
Consumers fetch /graph for a snapshot or subscribe to /events for pushes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.rootPath, "root", "r", ".", "Project root directory")
	cmd.Flags().StringVarP(&opts.moduleBase, "module-base", "m", "", "Root package name qualifying absolute imports")
	cmd.Flags().StringVarP(&opts.entryPoint, "entry-point", "e", "", "Entry point file for reachability classification")
	cmd.Flags().StringSliceVar(&opts.excludeDirs, "exclude", nil, "Additional directory names to exclude (comma-separated)")
	cmd.Flags().IntVarP(&opts.port, "port", "P", opts.port, "HTTP server port")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	root, err := discover.CanonicalPath(opts.rootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	b := newBroker()
	srv := newServer(b, opts.port)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", opts.port, err)
	}

	go srv.Serve(ln)

	payload, _, err := buildPayload(ctx, root, opts)
	if err != nil {
		srv.Close()
		return fmt.Errorf("initial graph build failed: %w", err)
	}
	b.publish(payload)

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", root)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving at http://localhost:%d\n", opts.port)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	err = watchAndRebuild(ctx, root, opts, b, skipDirFunc(opts.excludeDirs))

	srv.Close()
	return err
}

// buildPayload runs a fresh analysis session and serializes the JSON graph
// payload. Each rebuild produces a new session; the old one is discarded.
func buildPayload(ctx context.Context, root string, opts *watchOptions) (string, *analysis.Session, error) {
	session, cfg, err := analyze.BuildSession(ctx, root, opts.moduleBase, opts.excludeDirs)
	if err != nil {
		return "", nil, err
	}

	formatOpts := formatters.FormatOptions{
		Label:   filepath.Base(session.Root),
		Skipped: session.Report.Skipped,
	}

	entryPoint := opts.entryPoint
	if entryPoint == "" {
		entryPoint = cfg.EntryPoint
	}
	if entryPoint != "" {
		entryPath, err := analyze.ResolveInputPath(session.Root, entryPoint)
		if err == nil {
			if classification, err := analysis.Classify(session.Graph, entryPath); err == nil {
				formatOpts.Classification = &classification
			}
		}
	}

	formatter := &formatters.JSONFormatter{}
	payload, err := formatter.Format(session.Graph, formatOpts)
	if err != nil {
		return "", nil, err
	}
	return payload, session, nil
}

// skipDirFunc combines the default discovery exclusions with extras.
func skipDirFunc(extra []string) func(string) bool {
	skipped := make(map[string]bool, len(discover.DefaultExcludedDirs)+len(extra))
	for _, name := range discover.DefaultExcludedDirs {
		skipped[name] = true
	}
	for _, name := range extra {
		if name != "" {
			skipped[name] = true
		}
	}
	return func(name string) bool {
		return skipped[name] || strings.HasSuffix(name, ".egg-info")
	}
}
