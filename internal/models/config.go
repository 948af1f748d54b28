package models

// Config holds configuration for a processing run
type Config struct {
	// Paths to Python scripts or directories to process
	Paths []string

	// PythonSpec is the requires-python specifier used when a script has
	// no existing metadata block
	PythonSpec string

	// Behavior settings
	DryRun  bool // Analyze and report without writing files
	Verbose bool // Also report stdlib and local modules

	// Output settings
	OutputFormat string // "terminal", "json"
	OutputFile   string // Optional output file path
	NoColor      bool   // Disable terminal styling

	// Interpreter is an optional Python executable to probe for its
	// standard-library module names instead of the bundled list
	Interpreter string

	// ExcludeDirs are directory names skipped during directory walks
	ExcludeDirs []string
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		PythonSpec:   ">=3.12",
		OutputFormat: "terminal",
		ExcludeDirs:  []string{".git", "__pycache__", ".venv", "venv", "node_modules"},
	}
}
