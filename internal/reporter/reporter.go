package reporter

import "github.com/uvstool/uvs/internal/models"

// Reporter is the interface for output formatters
type Reporter interface {
	// Report generates output for the given per-file results
	Report(results []models.Result) ([]byte, error)
}

// Get returns a reporter for the configured format
func Get(cfg *models.Config) Reporter {
	switch cfg.OutputFormat {
	case "json":
		return &JSONReporter{}
	default:
		return &TerminalReporter{Verbose: cfg.Verbose, NoColor: cfg.NoColor}
	}
}
