package formatters_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/analysis"
	"github.com/depscope/depscope/depgraph"
	"github.com/depscope/depscope/formatters"
)

// demoGraph: main imports helper; unused stands alone. Fixed paths keep the
// golden files stable.
func demoGraph(t *testing.T) *depgraph.DependencyGraph {
	t.Helper()
	g := depgraph.NewDependencyGraph()
	g.AddFile(depgraph.SourceFile{Path: "/project/main.py", Module: "main", Dir: "/project"})
	g.AddFile(depgraph.SourceFile{Path: "/project/helper.py", Module: "helper", Dir: "/project"})
	g.AddFile(depgraph.SourceFile{Path: "/project/unused.py", Module: "unused", Dir: "/project"})
	require.NoError(t, g.AddDependency("/project/main.py", "/project/helper.py"))
	return g
}

func demoClassification() *analysis.Reachability {
	return &analysis.Reachability{
		EntryPoint: "/project/main.py",
		Required:   map[string]bool{"/project/helper.py": true},
		Unused:     map[string]bool{"/project/unused.py": true},
	}
}

func TestNewFormatter(t *testing.T) {
	jsonFormatter, err := formatters.NewFormatter("json")
	require.NoError(t, err)
	assert.IsType(t, &formatters.JSONFormatter{}, jsonFormatter)

	dotFormatter, err := formatters.NewFormatter("dot")
	require.NoError(t, err)
	assert.IsType(t, &formatters.DOTFormatter{}, dotFormatter)
}

func TestNewFormatter_UnknownFormat(t *testing.T) {
	_, err := formatters.NewFormatter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestJSONFormatter(t *testing.T) {
	formatter := &formatters.JSONFormatter{}

	output, err := formatter.Format(demoGraph(t), formatters.FormatOptions{Label: "demo"})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "json_basic", []byte(output))
}

func TestJSONFormatter_ClassifiedWithSkipped(t *testing.T) {
	formatter := &formatters.JSONFormatter{}

	output, err := formatter.Format(demoGraph(t), formatters.FormatOptions{
		Classification: demoClassification(),
		Skipped: []depgraph.SkippedFile{
			{Path: "/project/broken.py", Reason: "failed to parse /project/broken.py: syntax error"},
		},
	})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "json_classified", []byte(output))
}

func TestDOTFormatter(t *testing.T) {
	formatter := &formatters.DOTFormatter{}

	output, err := formatter.Format(demoGraph(t), formatters.FormatOptions{})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "dot_basic", []byte(output))
}

func TestDOTFormatter_Classified(t *testing.T) {
	formatter := &formatters.DOTFormatter{}

	output, err := formatter.Format(demoGraph(t), formatters.FormatOptions{
		Label:          "demo",
		Classification: demoClassification(),
	})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "dot_classified", []byte(output))
}

func TestJSONFormatter_EmptyGraph(t *testing.T) {
	formatter := &formatters.JSONFormatter{}

	output, err := formatter.Format(depgraph.NewDependencyGraph(), formatters.FormatOptions{})
	require.NoError(t, err)

	assert.JSONEq(t, `{"nodes": [], "edges": []}`, output)
}
