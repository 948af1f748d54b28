package classifier

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/uvstool/uvs/internal/models"
	"github.com/uvstool/uvs/internal/pystdlib"
)

// Classifier partitions import roots into stdlib, local and third-party.
// Classification depends only on the module name, the script's directory
// and the injected oracle; no network, no installed-package introspection.
type Classifier struct {
	oracle pystdlib.Oracle
}

// New creates a Classifier backed by the given oracle
func New(oracle pystdlib.Oracle) *Classifier {
	return &Classifier{oracle: oracle}
}

// Classify assigns every non-relative record to exactly one category.
// Relative imports are dropped entirely. Priority: stdlib, then local,
// then third-party — a stdlib name shadowed by a same-named local file
// still classifies stdlib.
func (c *Classifier) Classify(records []models.ImportRecord, scriptDir string) models.Analysis {
	var a models.Analysis

	for _, rec := range records {
		if rec.IsRelative {
			continue
		}
		switch {
		case c.oracle.IsStdlib(rec.Root):
			a.Stdlib = append(a.Stdlib, rec.Root)
		case isLocal(rec.Root, scriptDir):
			a.Local = append(a.Local, rec.Root)
		default:
			a.ThirdParty = append(a.ThirdParty, rec.Root)
		}
	}

	sort.Strings(a.Stdlib)
	sort.Strings(a.Local)
	sort.Strings(a.ThirdParty)
	return a
}

// isLocal checks for a sibling module file or package directory
func isLocal(root, scriptDir string) bool {
	if scriptDir == "" {
		return false
	}
	if fileExists(filepath.Join(scriptDir, root+".py")) {
		return true
	}
	return fileExists(filepath.Join(scriptDir, root, "__init__.py"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
