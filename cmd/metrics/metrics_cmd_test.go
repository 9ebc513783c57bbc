package metrics_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/cmd/metrics"
)

func TestMetricsCommand(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"main.py":   "import helper\nimport utils\n",
		"helper.py": "import utils\n",
		"utils.py":  "",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}

	cmd := metrics.NewCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"-r", root})
	require.NoError(t, cmd.Execute())

	var rows []struct {
		Module     string `json:"module"`
		Imports    int    `json:"imports"`
		ImportedBy int    `json:"importedBy"`
		Total      int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rows))

	require.Len(t, rows, 3)
	for _, row := range rows {
		switch row.Module {
		case "main":
			assert.Equal(t, 2, row.Imports)
			assert.Equal(t, 0, row.ImportedBy)
		case "helper":
			assert.Equal(t, 1, row.Imports)
			assert.Equal(t, 1, row.ImportedBy)
		case "utils":
			assert.Equal(t, 0, row.Imports)
			assert.Equal(t, 2, row.ImportedBy)
		}
		assert.Equal(t, row.Imports+row.ImportedBy, row.Total)
	}

	// Sorted by total descending.
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Total, rows[i].Total)
	}
}
