package analysis

import "github.com/depscope/depscope/depgraph"

// NodeMetrics holds per-node degree counts derived from the edge set.
type NodeMetrics struct {
	InDegree  int
	OutDegree int
	Total     int
}

// Metrics computes in-degree, out-degree and total degree for every node.
// Purely derived from the graph; recompute after any rebuild.
func Metrics(g *depgraph.DependencyGraph) map[string]NodeMetrics {
	forward := g.AdjacencyList()
	reverse := g.PredecessorList()

	metrics := make(map[string]NodeMetrics, g.Order())
	for _, node := range g.Nodes() {
		in := len(reverse[node])
		out := len(forward[node])
		metrics[node] = NodeMetrics{
			InDegree:  in,
			OutDegree: out,
			Total:     in + out,
		}
	}
	return metrics
}
