package unused_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/cmd/unused"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := unused.NewCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestUnusedCommand(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.py":       "import helper\n",
		"helper.py":     "from utils import thing\n",
		"utils.py":      "",
		"old_report.py": "import utils\n",
		"scratch.py":    "",
	})

	stdout, err := runCommand(t, "main.py", "-r", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Total Python files: 5")
	assert.Contains(t, stdout, "Required by main.py: 2 files")
	assert.Contains(t, stdout, "Not required by main.py: 2 files")
	assert.Contains(t, stdout, "Potentially unused files:")
	assert.Contains(t, stdout, "  - old_report.py")
	assert.Contains(t, stdout, "  - scratch.py")
	assert.NotContains(t, stdout, "  - helper.py")
}

func TestUnusedCommand_NothingUnused(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.py":   "import helper\n",
		"helper.py": "",
	})

	stdout, err := runCommand(t, "main.py", "-r", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Not required by main.py: 0 files")
	assert.NotContains(t, stdout, "Potentially unused files:")
}

func TestUnusedCommand_EntryPointNotFound(t *testing.T) {
	root := writeProject(t, map[string]string{"main.py": ""})

	_, err := runCommand(t, "missing.py", "-r", root)
	require.Error(t, err)
}

func TestUnusedCommand_RequiresEntryArgument(t *testing.T) {
	_, err := runCommand(t)
	require.Error(t, err)
}
