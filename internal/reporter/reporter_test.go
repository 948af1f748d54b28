package reporter

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvstool/uvs/internal/models"
)

func sampleResults() []models.Result {
	return []models.Result{
		{
			Path: "tool.py",
			Analysis: models.Analysis{
				Stdlib:     []string{"os"},
				ThirdParty: []string{"httpx", "rich"},
			},
			RequiresPython: ">=3.12",
			Outcome:        models.OutcomeWritten,
		},
		{
			Path:           "clean.py",
			RequiresPython: ">=3.12",
			Outcome:        models.OutcomeUnchanged,
		},
		{
			Path:    "notes.txt",
			Outcome: models.OutcomeSkipped,
			Reason:  "not a .py file",
		},
		{
			Path:    "broken.py",
			Outcome: models.OutcomeFailed,
			Err:     errors.New("line 3: expected 'import' in from-statement"),
		},
	}
}

func TestGetSelectsFormat(t *testing.T) {
	cfg := models.DefaultConfig()
	assert.IsType(t, &TerminalReporter{}, Get(cfg))

	cfg.OutputFormat = "json"
	assert.IsType(t, &JSONReporter{}, Get(cfg))
}

func TestTerminalReport(t *testing.T) {
	r := &TerminalReporter{NoColor: true}
	out, err := r.Report(sampleResults())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "tool.py")
	assert.Contains(t, text, "httpx, rich")
	assert.Contains(t, text, "metadata block written")
	assert.Contains(t, text, "already up-to-date")
	assert.Contains(t, text, "not a .py file")
	assert.Contains(t, text, "expected 'import'")
	assert.Contains(t, text, "1 updated")
	assert.Contains(t, text, "1 failed")

	// Stdlib modules only show in verbose mode
	assert.NotContains(t, text, "stdlib")
}

func TestTerminalReportVerbose(t *testing.T) {
	r := &TerminalReporter{NoColor: true, Verbose: true}
	out, err := r.Report(sampleResults())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "stdlib")
	assert.Contains(t, text, "os")
	assert.Contains(t, text, ">=3.12")
}

func TestJSONReport(t *testing.T) {
	r := &JSONReporter{}
	out, err := r.Report(sampleResults())
	require.NoError(t, err)

	var decoded struct {
		Summary struct {
			Processed int `json:"processed"`
			Written   int `json:"written"`
			Unchanged int `json:"unchanged"`
			Skipped   int `json:"skipped"`
			Failed    int `json:"failed"`
		} `json:"summary"`
		Files []struct {
			Path       string   `json:"path"`
			Outcome    string   `json:"outcome"`
			ThirdParty []string `json:"third_party"`
			Error      string   `json:"error"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, 4, decoded.Summary.Processed)
	assert.Equal(t, 1, decoded.Summary.Written)
	assert.Equal(t, 1, decoded.Summary.Unchanged)
	assert.Equal(t, 1, decoded.Summary.Skipped)
	assert.Equal(t, 1, decoded.Summary.Failed)

	require.Len(t, decoded.Files, 4)
	assert.Equal(t, []string{"httpx", "rich"}, decoded.Files[0].ThirdParty)
	// Empty sets serialize as [], never null
	assert.NotNil(t, decoded.Files[1].ThirdParty)
	assert.Contains(t, decoded.Files[3].Error, "expected 'import'")
}
