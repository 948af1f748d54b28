package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvstool/uvs/internal/models"
	"github.com/uvstool/uvs/internal/pystdlib"
)

// testOracle returns a fake stdlib oracle with a fixed name set, so
// tests do not depend on the bundled listing
func testOracle() pystdlib.Oracle {
	return pystdlib.NewSetOracle([]string{"os", "sys", "json"}, "test")
}

func records(roots ...string) []models.ImportRecord {
	out := make([]models.ImportRecord, 0, len(roots))
	for _, r := range roots {
		out = append(out, models.ImportRecord{Root: r})
	}
	return out
}

func TestClassifyPartition(t *testing.T) {
	c := New(testOracle())

	a := c.Classify(records("httpx", "os", "rich"), t.TempDir())

	assert.Equal(t, []string{"os"}, a.Stdlib)
	assert.Empty(t, a.Local)
	assert.Equal(t, []string{"httpx", "rich"}, a.ThirdParty)
}

func TestClassifySortsLexicographically(t *testing.T) {
	c := New(testOracle())

	a := c.Classify(records("zoneparse", "aiohttp", "httpx"), t.TempDir())

	assert.Equal(t, []string{"aiohttp", "httpx", "zoneparse"}, a.ThirdParty)
}

func TestClassifyLocalModuleFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "utils.py"), []byte("x = 1\n"), 0644))

	c := New(testOracle())
	a := c.Classify(records("utils"), dir)

	assert.Equal(t, []string{"utils"}, a.Local)
	assert.Empty(t, a.ThirdParty)
}

func TestClassifyLocalPackageDir(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "helpers")
	require.NoError(t, os.MkdirAll(pkg, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "__init__.py"), nil, 0644))

	c := New(testOracle())
	a := c.Classify(records("helpers"), dir)

	assert.Equal(t, []string{"helpers"}, a.Local)
}

// A directory without an __init__.py marker is not a local package
func TestClassifyBareDirIsNotLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0755))

	c := New(testOracle())
	a := c.Classify(records("data"), dir)

	assert.Equal(t, []string{"data"}, a.ThirdParty)
}

// Stdlib beats a same-named local file: deliberate precedence
func TestClassifyStdlibShadowsLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "json.py"), []byte("x = 1\n"), 0644))

	c := New(testOracle())
	a := c.Classify(records("json"), dir)

	assert.Equal(t, []string{"json"}, a.Stdlib)
	assert.Empty(t, a.Local)
}

// Relative imports bypass classification entirely, including the
// filesystem check
func TestClassifyDropsRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "utils.py"), []byte("x = 1\n"), 0644))

	c := New(testOracle())
	a := c.Classify([]models.ImportRecord{{IsRelative: true}}, dir)

	assert.Empty(t, a.Stdlib)
	assert.Empty(t, a.Local)
	assert.Empty(t, a.ThirdParty)
	assert.Zero(t, a.Total())
}

func TestClassifyNoRecords(t *testing.T) {
	c := New(testOracle())
	a := c.Classify(nil, t.TempDir())

	assert.Zero(t, a.Total())
}
