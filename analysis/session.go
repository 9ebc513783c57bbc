// Package analysis provides read-only queries over a built dependency
// graph: entry-point reachability, depth-bounded neighborhood expansion,
// and per-node degree metrics.
package analysis

import (
	"context"

	"github.com/google/uuid"

	"github.com/depscope/depscope/depgraph"
)

// Session is one completed analysis: the built graph plus the configuration
// that produced it. Sessions are immutable; a new analysis request builds a
// new Session rather than mutating an existing one, so queries against an
// old session stay valid while a replacement is built.
type Session struct {
	ID         string
	Root       string
	ModuleBase string
	Graph      *depgraph.DependencyGraph
	Report     depgraph.Report
}

// NewSession builds a dependency graph for the given options and wraps it
// in a Session.
func NewSession(ctx context.Context, opts depgraph.Options) (*Session, error) {
	graph, report, err := depgraph.Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:         uuid.NewString(),
		Root:       report.Root,
		ModuleBase: report.ModuleBase,
		Graph:      graph,
		Report:     report,
	}, nil
}

// RequiredFiles returns the files transitively required by entryPoint.
func (s *Session) RequiredFiles(entryPoint string) (map[string]bool, error) {
	return RequiredFiles(s.Graph, entryPoint)
}

// UnusedFiles returns the files not required by entryPoint.
func (s *Session) UnusedFiles(entryPoint string) (map[string]bool, error) {
	return UnusedFiles(s.Graph, entryPoint)
}

// Neighborhood returns the induced subgraph within depth hops of focus.
func (s *Session) Neighborhood(focus string, depth int) (*depgraph.DependencyGraph, error) {
	return Neighborhood(s.Graph, focus, depth)
}

// Metrics returns per-node degree metrics for the session's graph.
func (s *Session) Metrics() map[string]NodeMetrics {
	return Metrics(s.Graph)
}
