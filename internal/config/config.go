package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/uvstool/uvs/internal/models"
)

// File holds per-project defaults loaded from uvs.yaml. Every field is
// optional; command-line flags take precedence over file values.
type File struct {
	Python      string   `yaml:"python"`      // requires-python specifier
	Format      string   `yaml:"format"`      // "terminal" or "json"
	Interpreter string   `yaml:"interpreter"` // Python executable to probe
	Exclude     []string `yaml:"exclude"`     // Extra directory names to skip
}

// candidates are the file names searched in the working directory
var candidates = []string{"uvs.yaml", ".uvs.yaml"}

// Load reads a config file. With an explicit path the file must exist;
// with an empty path the working directory is searched and a missing
// file is not an error.
func Load(path string) (*File, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working dir: %w", err)
		}
		for _, name := range candidates {
			p := filepath.Join(wd, name)
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies file values onto cfg, skipping fields the user set
// explicitly on the command line. flagSet reports whether the named
// flag was passed (cobra's Flags().Changed). Safe to call on a nil
// receiver.
func (f *File) Apply(cfg *models.Config, flagSet func(name string) bool) {
	if f == nil {
		return
	}
	if f.Python != "" && !flagSet("python") {
		cfg.PythonSpec = f.Python
	}
	if f.Format != "" && !flagSet("format") {
		cfg.OutputFormat = f.Format
	}
	if f.Interpreter != "" && !flagSet("interpreter") {
		cfg.Interpreter = f.Interpreter
	}
	cfg.ExcludeDirs = append(cfg.ExcludeDirs, f.Exclude...)
}
