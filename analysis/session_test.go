package analysis_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/analysis"
	"github.com/depscope/depscope/depgraph"
	"github.com/depscope/depscope/discover"
)

func TestNewSession(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"main.py":   "import helper\n",
		"helper.py": "",
		"unused.py": "",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}

	session, err := analysis.NewSession(context.Background(), depgraph.Options{Root: root})
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 3, session.Graph.Order())
	assert.Equal(t, 3, session.Report.FileCount)

	entryPoint, err := discover.CanonicalPath(filepath.Join(root, "main.py"))
	require.NoError(t, err)
	helper, err := discover.CanonicalPath(filepath.Join(root, "helper.py"))
	require.NoError(t, err)
	unused, err := discover.CanonicalPath(filepath.Join(root, "unused.py"))
	require.NoError(t, err)

	required, err := session.RequiredFiles(entryPoint)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{helper: true}, required)

	unusedSet, err := session.UnusedFiles(entryPoint)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{unused: true}, unusedSet)

	metrics := session.Metrics()
	assert.Equal(t, 1, metrics[helper].InDegree)
}

func TestNewSession_DistinctIDs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), nil, 0644))

	first, err := analysis.NewSession(context.Background(), depgraph.Options{Root: root})
	require.NoError(t, err)
	second, err := analysis.NewSession(context.Background(), depgraph.Options{Root: root})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
