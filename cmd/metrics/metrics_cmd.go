package metrics

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/cmd/analyze"
)

type metricsOptions struct {
	rootPath    string
	moduleBase  string
	excludeDirs []string
}

// Cmd represents the metrics command.
var Cmd = NewCommand()

// NewCommand returns a new metrics command instance.
func NewCommand() *cobra.Command {
	opts := &metricsOptions{}

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print per-file degree metrics for the dependency graph",
		Long: `Compute in-degree, out-degree and total degree for every file in the
dependency graph, sorted by total connections.

Example:
  depscope metrics -r ./myproject`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.rootPath, "root", "r", ".", "Project root directory")
	cmd.Flags().StringVarP(&opts.moduleBase, "module-base", "m", "", "Root package name qualifying absolute imports")
	cmd.Flags().StringSliceVar(&opts.excludeDirs, "exclude", nil, "Additional directory names to exclude (comma-separated)")

	return cmd
}

type metricsRow struct {
	Path       string `json:"path"`
	Module     string `json:"module"`
	Imports    int    `json:"imports"`
	ImportedBy int    `json:"importedBy"`
	Total      int    `json:"total"`
}

func runMetrics(cmd *cobra.Command, opts *metricsOptions) error {
	session, _, err := analyze.BuildSession(cmd.Context(), opts.rootPath, opts.moduleBase, opts.excludeDirs)
	if err != nil {
		return err
	}

	nodeMetrics := session.Metrics()

	rows := make([]metricsRow, 0, len(nodeMetrics))
	for _, file := range session.Graph.Files() {
		m := nodeMetrics[file.Path]
		rows = append(rows, metricsRow{
			Path:       file.Path,
			Module:     file.Module,
			Imports:    m.OutDegree,
			ImportedBy: m.InDegree,
			Total:      m.Total,
		})
	}

	// Busiest files first; path as tie-break keeps output stable.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Path < rows[j].Path
	})

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
