package analysis

import (
	"fmt"

	"github.com/depscope/depscope/depgraph"
)

// EntryPointNotFoundError indicates the requested entry point is not a node
// in the graph. The graph itself remains valid for other queries.
type EntryPointNotFoundError struct {
	Path string
}

func (e *EntryPointNotFoundError) Error() string {
	return fmt.Sprintf("entry point not found in dependency graph: %s", e.Path)
}

// Reachability partitions the graph's nodes relative to an entry point.
// Required and Unused are disjoint and, together with the entry point,
// cover the node set exactly.
type Reachability struct {
	EntryPoint string
	Required   map[string]bool
	Unused     map[string]bool
}

// RequiredFiles returns all files transitively reachable from entryPoint
// following importer -> imported edges, excluding the entry point itself.
// This answers "what does the entry point depend on", not "who can reach it".
func RequiredFiles(g *depgraph.DependencyGraph, entryPoint string) (map[string]bool, error) {
	if !g.Contains(entryPoint) {
		return nil, &EntryPointNotFoundError{Path: entryPoint}
	}

	required := bfs(g.AdjacencyList(), entryPoint)
	delete(required, entryPoint)
	return required, nil
}

// UnusedFiles returns all graph nodes that are neither the entry point nor
// required by it.
func UnusedFiles(g *depgraph.DependencyGraph, entryPoint string) (map[string]bool, error) {
	required, err := RequiredFiles(g, entryPoint)
	if err != nil {
		return nil, err
	}

	unused := make(map[string]bool)
	for _, node := range g.Nodes() {
		if node != entryPoint && !required[node] {
			unused[node] = true
		}
	}
	return unused, nil
}

// Classify computes both partitions in one traversal.
func Classify(g *depgraph.DependencyGraph, entryPoint string) (Reachability, error) {
	required, err := RequiredFiles(g, entryPoint)
	if err != nil {
		return Reachability{}, err
	}

	unused := make(map[string]bool)
	for _, node := range g.Nodes() {
		if node != entryPoint && !required[node] {
			unused[node] = true
		}
	}

	return Reachability{
		EntryPoint: entryPoint,
		Required:   required,
		Unused:     unused,
	}, nil
}

// bfs returns all nodes reachable from source, including source. Visited
// tracking guarantees termination on cyclic graphs.
func bfs(adjacency map[string][]string, source string) map[string]bool {
	reachable := map[string]bool{source: true}
	queue := []string{source}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range adjacency[current] {
			if !reachable[neighbor] {
				reachable[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return reachable
}
