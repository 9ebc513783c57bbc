package depgraph

import (
	"errors"
	"path/filepath"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// SourceFile is one graph node: a project file identified by its canonical
// absolute path, with its derived dotted module name and containing directory.
type SourceFile struct {
	Path   string
	Module string
	Dir    string
}

// Edge is a directed dependency from an importer to an imported file.
type Edge struct {
	From string
	To   string
}

// DependencyGraph is a directed graph of intra-project file dependencies.
// Nodes are canonical paths; edges are deduplicated and cycles are permitted.
// The graph is mutated only during construction and is safe for concurrent
// reads afterwards.
type DependencyGraph struct {
	g     graphlib.Graph[string, string]
	files map[string]SourceFile
}

// NewDependencyGraph creates an empty dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		g:     graphlib.New(graphlib.StringHash, graphlib.Directed()),
		files: make(map[string]SourceFile),
	}
}

// AddFile adds a node for the given file. Adding the same canonical path
// twice is a no-op.
func (dg *DependencyGraph) AddFile(f SourceFile) {
	if f.Dir == "" {
		f.Dir = filepath.Dir(f.Path)
	}
	if err := dg.g.AddVertex(f.Path); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return
	}
	if _, ok := dg.files[f.Path]; !ok {
		dg.files[f.Path] = f
	}
}

// AddDependency adds a deduplicated edge from importer to imported. Both
// endpoints must already be nodes. Self-dependencies are ignored.
func (dg *DependencyGraph) AddDependency(importer, imported string) error {
	if importer == imported {
		return nil
	}
	err := dg.g.AddEdge(importer, imported)
	if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return err
	}
	return nil
}

// Contains reports whether path is a node in the graph.
func (dg *DependencyGraph) Contains(path string) bool {
	_, err := dg.g.Vertex(path)
	return err == nil
}

// File returns the SourceFile metadata for a node.
func (dg *DependencyGraph) File(path string) (SourceFile, bool) {
	f, ok := dg.files[path]
	return f, ok
}

// Nodes returns all node paths in sorted order.
func (dg *DependencyGraph) Nodes() []string {
	nodes := make([]string, 0, len(dg.files))
	for path := range dg.files {
		nodes = append(nodes, path)
	}
	sort.Strings(nodes)
	return nodes
}

// Files returns all node metadata sorted by path.
func (dg *DependencyGraph) Files() []SourceFile {
	files := make([]SourceFile, 0, len(dg.files))
	for _, path := range dg.Nodes() {
		files = append(files, dg.files[path])
	}
	return files
}

// Edges returns all edges sorted by (From, To).
func (dg *DependencyGraph) Edges() []Edge {
	adjacency := dg.AdjacencyList()
	var edges []Edge
	for _, from := range dg.Nodes() {
		for _, to := range adjacency[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// Order returns the number of nodes.
func (dg *DependencyGraph) Order() int {
	return len(dg.files)
}

// Size returns the number of edges.
func (dg *DependencyGraph) Size() int {
	size, err := dg.g.Size()
	if err != nil {
		return 0
	}
	return size
}

// AdjacencyList returns importer -> sorted imported paths for every node.
func (dg *DependencyGraph) AdjacencyList() map[string][]string {
	return flatten(dg.g.AdjacencyMap())
}

// PredecessorList returns imported -> sorted importer paths for every node.
func (dg *DependencyGraph) PredecessorList() map[string][]string {
	return flatten(dg.g.PredecessorMap())
}

func flatten(m map[string]map[string]graphlib.Edge[string], err error) map[string][]string {
	result := make(map[string][]string, len(m))
	if err != nil {
		return result
	}
	for node, neighbors := range m {
		targets := make([]string, 0, len(neighbors))
		for target := range neighbors {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		result[node] = targets
	}
	return result
}
