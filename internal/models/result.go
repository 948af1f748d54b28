package models

// Outcome is the terminal state of a single file's pipeline
type Outcome string

const (
	OutcomeWritten   Outcome = "written"   // File bytes changed on disk
	OutcomeUnchanged Outcome = "unchanged" // Merge produced identical bytes
	OutcomePreview   Outcome = "preview"   // Dry run; file would change
	OutcomeSkipped   Outcome = "skipped"   // Not a processable Python script
	OutcomeFailed    Outcome = "failed"    // Parse or filesystem error
)

// Result represents the processing outcome for a single file
type Result struct {
	Path           string
	Analysis       Analysis
	RequiresPython string // Effective requires-python specifier for the file
	Outcome        Outcome
	Err            error  // Set when Outcome is OutcomeFailed
	Reason         string // Human-readable note for OutcomeSkipped
}

// Failed returns true if the file's pipeline ended in an error
func (r Result) Failed() bool {
	return r.Outcome == OutcomeFailed
}
