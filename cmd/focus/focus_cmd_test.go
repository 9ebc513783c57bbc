package focus_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/cmd/focus"
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
	cmd := focus.NewCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

// Chain: a -> b -> c -> d.
func chainProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"a.py": "import b\n",
		"b.py": "import c\n",
		"c.py": "import d\n",
		"d.py": "",
	})
}

func focusModules(t *testing.T, stdout string) []string {
	t.Helper()
	var payload struct {
		Nodes []struct {
			Module string `json:"module"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	modules := make([]string, 0, len(payload.Nodes))
	for _, n := range payload.Nodes {
		modules = append(modules, n.Module)
	}
	return modules
}

func TestFocusCommand_DefaultDepth(t *testing.T) {
	root := chainProject(t)

	stdout, err := runCommand(t, "b.py", "-r", root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, focusModules(t, stdout))
}

func TestFocusCommand_DepthZero(t *testing.T) {
	root := chainProject(t)

	stdout, err := runCommand(t, "b.py", "-r", root, "-d", "0")
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, focusModules(t, stdout))
}

func TestFocusCommand_DepthTwo(t *testing.T) {
	root := chainProject(t)

	stdout, err := runCommand(t, "b.py", "-r", root, "-d", "2")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, focusModules(t, stdout))
}

func TestFocusCommand_DOTOutput(t *testing.T) {
	root := chainProject(t)

	stdout, err := runCommand(t, "b.py", "-r", root, "-f", "dot")
	require.NoError(t, err)

	assert.Contains(t, stdout, "digraph dependencies {")
	assert.Contains(t, stdout, `label="b.py • depth 1"`)
}

func TestFocusCommand_FileNotFound(t *testing.T) {
	root := chainProject(t)

	_, err := runCommand(t, "missing.py", "-r", root)
	require.Error(t, err)
}

func TestFocusCommand_NegativeDepth(t *testing.T) {
	root := chainProject(t)

	_, err := runCommand(t, "b.py", "-r", root, "--depth=-1")
	require.Error(t, err)
}
