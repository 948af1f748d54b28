package reporter

import (
	"encoding/json"

	"github.com/uvstool/uvs/internal/models"
)

// JSONReporter outputs results in JSON format
type JSONReporter struct{}

// jsonOutput represents the JSON output structure
type jsonOutput struct {
	Summary jsonSummary `json:"summary"`
	Files   []jsonFile  `json:"files"`
}

type jsonSummary struct {
	Processed int `json:"processed"`
	Written   int `json:"written"`
	Unchanged int `json:"unchanged"`
	Preview   int `json:"preview"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type jsonFile struct {
	Path           string   `json:"path"`
	Outcome        string   `json:"outcome"`
	RequiresPython string   `json:"requires_python,omitempty"`
	Stdlib         []string `json:"stdlib,omitempty"`
	Local          []string `json:"local,omitempty"`
	ThirdParty     []string `json:"third_party"`
	Error          string   `json:"error,omitempty"`
	Reason         string   `json:"reason,omitempty"`
}

// Report generates JSON output for the given results
func (r *JSONReporter) Report(results []models.Result) ([]byte, error) {
	output := jsonOutput{Files: make([]jsonFile, 0, len(results))}

	for _, res := range results {
		output.Summary.Processed++
		switch res.Outcome {
		case models.OutcomeWritten:
			output.Summary.Written++
		case models.OutcomeUnchanged:
			output.Summary.Unchanged++
		case models.OutcomePreview:
			output.Summary.Preview++
		case models.OutcomeSkipped:
			output.Summary.Skipped++
		case models.OutcomeFailed:
			output.Summary.Failed++
		}

		jf := jsonFile{
			Path:           res.Path,
			Outcome:        string(res.Outcome),
			RequiresPython: res.RequiresPython,
			Stdlib:         res.Analysis.Stdlib,
			Local:          res.Analysis.Local,
			ThirdParty:     res.Analysis.ThirdParty,
			Reason:         res.Reason,
		}
		if jf.ThirdParty == nil {
			jf.ThirdParty = []string{}
		}
		if res.Err != nil {
			jf.Error = res.Err.Error()
		}
		output.Files = append(output.Files, jf)
	}

	return json.MarshalIndent(output, "", "  ")
}
