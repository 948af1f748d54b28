package processor

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/uvstool/uvs/internal/cache"
	"github.com/uvstool/uvs/internal/classifier"
	"github.com/uvstool/uvs/internal/extractor"
	"github.com/uvstool/uvs/internal/header"
	"github.com/uvstool/uvs/internal/models"
	"github.com/uvstool/uvs/internal/pystdlib"
)

// Processor runs the per-file pipeline: read, extract imports, classify,
// merge the metadata block, write back (or preview). Files are fully
// independent; one file's failure never aborts its siblings.
type Processor struct {
	config     *models.Config
	classifier *classifier.Classifier

	// OracleSource reports which stdlib name set is in use
	OracleSource string

	// Warnings collects non-fatal setup problems (e.g. a failed
	// interpreter probe) for the caller to surface
	Warnings []string
}

// New creates a Processor. When an interpreter is configured its
// standard-library names are probed (and cached); a failed probe
// degrades to the bundled name set instead of aborting.
func New(cfg *models.Config) *Processor {
	p := &Processor{config: cfg}

	var oracle pystdlib.Oracle = pystdlib.Embedded()
	if cfg.Interpreter != "" {
		c, err := cache.New("uvs", cache.DefaultTTL)
		if err != nil {
			c = nil // Non-fatal: probe without cache
		}
		probed, err := pystdlib.Probe(cfg.Interpreter, c)
		if err != nil {
			p.Warnings = append(p.Warnings, fmt.Sprintf("stdlib probe failed, using bundled list: %v", err))
		} else {
			oracle = probed
		}
	}

	p.classifier = classifier.New(oracle)
	p.OracleSource = oracle.Source()
	return p
}

// Run processes every configured path and returns one Result per file
func (p *Processor) Run() []models.Result {
	var results []models.Result

	for _, path := range p.config.Paths {
		info, err := os.Stat(path)
		if err != nil {
			results = append(results, models.Result{
				Path:    path,
				Outcome: models.OutcomeSkipped,
				Reason:  "file not found",
			})
			continue
		}

		if info.IsDir() {
			for _, script := range p.discoverScripts(path) {
				results = append(results, p.ProcessFile(script))
			}
			continue
		}

		if filepath.Ext(path) != ".py" {
			results = append(results, models.Result{
				Path:    path,
				Outcome: models.OutcomeSkipped,
				Reason:  "not a .py file",
			})
			continue
		}

		results = append(results, p.ProcessFile(path))
	}

	return results
}

// discoverScripts walks a directory for Python scripts, skipping
// the configured non-source directories
func (p *Processor) discoverScripts(root string) []string {
	var scripts []string

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && (slices.Contains(p.config.ExcludeDirs, d.Name()) || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".py" {
			scripts = append(scripts, path)
		}
		return nil
	})

	return scripts
}

// ProcessFile runs the full pipeline for a single script
func (p *Processor) ProcessFile(path string) models.Result {
	result := models.Result{Path: path, RequiresPython: p.config.PythonSpec}

	info, err := os.Stat(path)
	if err != nil {
		return fail(result, &models.FilesystemError{Path: path, Op: "read", Err: err})
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fail(result, &models.FilesystemError{Path: path, Op: "read", Err: err})
	}

	records, err := extractor.Extract(source)
	if err != nil {
		return fail(result, &models.ParseError{Path: path, Err: err})
	}

	result.Analysis = p.classifier.Classify(records, filepath.Dir(path))

	// An existing block's requires-python always survives the merge;
	// report the effective value
	md, found, err := header.Parse(source)
	if err != nil {
		return fail(result, &models.ParseError{Path: path, Err: err})
	}
	if found && md.RequiresPython != "" {
		result.RequiresPython = md.RequiresPython
	}

	merged, err := header.Inject(source, result.Analysis.ThirdParty, p.config.PythonSpec)
	if err != nil {
		return fail(result, &models.ParseError{Path: path, Err: err})
	}

	if bytes.Equal(source, merged) {
		result.Outcome = models.OutcomeUnchanged
		return result
	}

	if p.config.DryRun {
		result.Outcome = models.OutcomePreview
		return result
	}

	if err := os.WriteFile(path, merged, info.Mode().Perm()); err != nil {
		return fail(result, &models.FilesystemError{Path: path, Op: "write", Err: err})
	}

	result.Outcome = models.OutcomeWritten
	return result
}

func fail(result models.Result, err error) models.Result {
	result.Outcome = models.OutcomeFailed
	result.Err = err
	return result
}
