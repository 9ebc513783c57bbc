package formatters

import (
	"fmt"
	"strings"

	"github.com/depscope/depscope/depgraph"
)

// DOTFormatter formats dependency graphs as Graphviz DOT.
type DOTFormatter struct{}

// Border colors match the classification scheme used by the rendering layer:
// red for the entry point, green for required files, orange for unused ones.
const (
	colorEntryPoint = "#d62728"
	colorRequired   = "#2ca02c"
	colorUnused     = "#ff7f0e"
)

// Format converts the dependency graph to Graphviz DOT format. When a
// classification is supplied, node borders are colored accordingly.
func (f *DOTFormatter) Format(g *depgraph.DependencyGraph, opts FormatOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
	}
	sb.WriteString("\n")

	for _, file := range g.Files() {
		attrs := fmt.Sprintf("label=%q", file.Module)
		switch classify(opts, file.Path) {
		case classEntryPoint:
			attrs += fmt.Sprintf(", color=%q, penwidth=3", colorEntryPoint)
		case classRequired:
			attrs += fmt.Sprintf(", color=%q, penwidth=2", colorRequired)
		case classUnused:
			attrs += fmt.Sprintf(", color=%q, penwidth=2", colorUnused)
		}
		sb.WriteString(fmt.Sprintf("  %q [%s];\n", file.Path, attrs))
	}
	sb.WriteString("\n")

	for _, edge := range g.Edges() {
		sb.WriteString(fmt.Sprintf("  %q -> %q;\n", edge.From, edge.To))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}
