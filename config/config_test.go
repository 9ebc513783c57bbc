package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/config"
)

func TestLoad(t *testing.T) {
	root := t.TempDir()
	content := `module_base: myapp
entry_point: main.py
exclude_dirs:
  - generated
  - migrations
`
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(content), 0644))

	cfg, err := config.Load(root)
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		ModuleBase:  "myapp",
		EntryPoint:  "main.py",
		ExcludeDirs: []string{"generated", "migrations"},
	}, cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, config.Config{}, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("module_base: [unclosed\n"), 0644))

	_, err := config.Load(root)
	require.Error(t, err)
}

func TestMerge_FlagsOverrideFile(t *testing.T) {
	cfg := config.Config{
		ModuleBase:  "filebase",
		EntryPoint:  "file_entry.py",
		ExcludeDirs: []string{"generated"},
	}

	merged := cfg.Merge("flagbase", "flag_entry.py", []string{"migrations"})

	assert.Equal(t, "flagbase", merged.ModuleBase)
	assert.Equal(t, "flag_entry.py", merged.EntryPoint)
	assert.Equal(t, []string{"generated", "migrations"}, merged.ExcludeDirs)
}

func TestMerge_EmptyOverridesKeepFileValues(t *testing.T) {
	cfg := config.Config{ModuleBase: "filebase", EntryPoint: "file_entry.py"}

	merged := cfg.Merge("", "", nil)

	assert.Equal(t, cfg, merged)
}
