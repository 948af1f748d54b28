package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvstool/uvs/internal/models"
)

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uvs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("python: \">=3.11\"\nformat: json\nexclude:\n  - build\n"), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, ">=3.11", f.Python)
	assert.Equal(t, "json", f.Format)
	assert.Equal(t, []string{"build"}, f.Exclude)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "ghost.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uvs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("python: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

// noFlags simulates a run where no flag was passed on the command line
func noFlags(string) bool { return false }

func TestApplyFileFillsDefaults(t *testing.T) {
	cfg := models.DefaultConfig()

	f := &File{Python: ">=3.11", Format: "json", Interpreter: "python3.11", Exclude: []string{"build"}}
	f.Apply(cfg, noFlags)

	assert.Equal(t, ">=3.11", cfg.PythonSpec)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "python3.11", cfg.Interpreter)
	assert.Contains(t, cfg.ExcludeDirs, "build")
	assert.Contains(t, cfg.ExcludeDirs, "__pycache__")
}

// Flags passed on the command line win over file values
func TestApplyFlagsWin(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.PythonSpec = ">=3.13"
	cfg.OutputFormat = "json"

	passed := map[string]bool{"python": true, "format": true}
	f := &File{Python: ">=3.8", Format: "terminal", Interpreter: "python3.8"}
	f.Apply(cfg, func(name string) bool { return passed[name] })

	assert.Equal(t, ">=3.13", cfg.PythonSpec)
	assert.Equal(t, "json", cfg.OutputFormat)
	// Flags that were not passed still take file values
	assert.Equal(t, "python3.8", cfg.Interpreter)
}

// An explicit flag wins even when its value coincides with the default
func TestApplyExplicitFlagAtDefaultValue(t *testing.T) {
	cfg := models.DefaultConfig() // PythonSpec left at its default

	f := &File{Python: ">=3.8"}
	f.Apply(cfg, func(name string) bool { return name == "python" })

	assert.Equal(t, models.DefaultConfig().PythonSpec, cfg.PythonSpec)
}

func TestApplyNilFile(t *testing.T) {
	cfg := models.DefaultConfig()
	var f *File
	f.Apply(cfg, noFlags)

	assert.Equal(t, models.DefaultConfig().PythonSpec, cfg.PythonSpec)
}
