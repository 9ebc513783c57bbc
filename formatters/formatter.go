// Package formatters serializes dependency graphs for the external
// rendering layer. The core hands over plain structured values: nodes with
// module names and classification, the edge list, degree metrics, and
// skipped-file diagnostics.
package formatters

import (
	"fmt"

	"github.com/depscope/depscope/analysis"
	"github.com/depscope/depscope/depgraph"
)

// FormatOptions contains optional parameters for formatting dependency graphs.
type FormatOptions struct {
	// Label is an optional title for the output.
	Label string
	// Classification colors nodes relative to an entry point when set.
	Classification *analysis.Reachability
	// Skipped lists files excluded from edge extraction during the build.
	Skipped []depgraph.SkippedFile
}

// Formatter converts a dependency graph to a string representation.
type Formatter interface {
	Format(g *depgraph.DependencyGraph, opts FormatOptions) (string, error)
}

// NewFormatter creates a Formatter for the specified format type.
// Supported formats: "json", "dot".
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "json":
		return &JSONFormatter{}, nil
	case "dot":
		return &DOTFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: json, dot)", format)
	}
}

const (
	classEntryPoint = "entrypoint"
	classRequired   = "required"
	classUnused     = "unused"
)

// classify returns the entry-point classification for a node, or "" when no
// classification was requested.
func classify(opts FormatOptions, path string) string {
	c := opts.Classification
	if c == nil {
		return ""
	}
	switch {
	case path == c.EntryPoint:
		return classEntryPoint
	case c.Required[path]:
		return classRequired
	default:
		return classUnused
	}
}
