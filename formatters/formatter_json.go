package formatters

import (
	"encoding/json"

	"github.com/depscope/depscope/analysis"
	"github.com/depscope/depscope/depgraph"
)

// JSONFormatter emits the graph payload consumed by the rendering layer.
type JSONFormatter struct{}

type jsonOutput struct {
	Label   string     `json:"label,omitempty"`
	Nodes   []jsonNode `json:"nodes"`
	Edges   []jsonEdge `json:"edges"`
	Skipped []jsonSkip `json:"skipped,omitempty"`
}

type jsonNode struct {
	Path       string `json:"path"`
	Module     string `json:"module"`
	Directory  string `json:"directory"`
	Class      string `json:"class,omitempty"`
	Imports    int    `json:"imports"`
	ImportedBy int    `json:"importedBy"`
	Total      int    `json:"total"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type jsonSkip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Format converts the dependency graph to indented JSON. Nodes and edges are
// sorted by path so output is stable across runs.
func (f *JSONFormatter) Format(g *depgraph.DependencyGraph, opts FormatOptions) (string, error) {
	metrics := analysis.Metrics(g)

	out := jsonOutput{
		Label: opts.Label,
		Nodes: make([]jsonNode, 0, g.Order()),
		Edges: make([]jsonEdge, 0, g.Size()),
	}

	for _, file := range g.Files() {
		m := metrics[file.Path]
		out.Nodes = append(out.Nodes, jsonNode{
			Path:       file.Path,
			Module:     file.Module,
			Directory:  file.Dir,
			Class:      classify(opts, file.Path),
			Imports:    m.OutDegree,
			ImportedBy: m.InDegree,
			Total:      m.Total,
		})
	}

	for _, edge := range g.Edges() {
		out.Edges = append(out.Edges, jsonEdge{From: edge.From, To: edge.To})
	}

	for _, skip := range opts.Skipped {
		out.Skipped = append(out.Skipped, jsonSkip{Path: skip.Path, Reason: skip.Reason})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
