package analysis

import (
	"fmt"

	"github.com/depscope/depscope/depgraph"
)

// NodeNotFoundError indicates the requested focus node is not in the graph.
type NodeNotFoundError struct {
	Path string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node not found in dependency graph: %s", e.Path)
}

// Neighborhood returns the induced subgraph of all nodes within depth hops
// of focus, following edges in either direction (import or imported-by).
// Depth 0 returns the focus node alone. The input graph is never mutated.
func Neighborhood(g *depgraph.DependencyGraph, focus string, depth int) (*depgraph.DependencyGraph, error) {
	if depth < 0 {
		return nil, fmt.Errorf("depth must be non-negative, got %d", depth)
	}
	if !g.Contains(focus) {
		return nil, &NodeNotFoundError{Path: focus}
	}

	forward := g.AdjacencyList()
	reverse := g.PredecessorList()

	within := map[string]bool{focus: true}
	frontier := []string{focus}

	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []string
		for _, current := range frontier {
			for _, neighbor := range forward[current] {
				if !within[neighbor] {
					within[neighbor] = true
					next = append(next, neighbor)
				}
			}
			for _, neighbor := range reverse[current] {
				if !within[neighbor] {
					within[neighbor] = true
					next = append(next, neighbor)
				}
			}
		}
		frontier = next
	}

	return inducedSubgraph(g, within), nil
}

// inducedSubgraph copies the kept nodes plus only the edges between them.
func inducedSubgraph(g *depgraph.DependencyGraph, keep map[string]bool) *depgraph.DependencyGraph {
	sub := depgraph.NewDependencyGraph()

	for _, node := range g.Nodes() {
		if !keep[node] {
			continue
		}
		if f, ok := g.File(node); ok {
			sub.AddFile(f)
		} else {
			sub.AddFile(depgraph.SourceFile{Path: node})
		}
	}

	adjacency := g.AdjacencyList()
	for _, from := range g.Nodes() {
		if !keep[from] {
			continue
		}
		for _, to := range adjacency[from] {
			if keep[to] {
				// Both endpoints exist in sub; AddDependency cannot fail here.
				_ = sub.AddDependency(from, to)
			}
		}
	}

	return sub
}
