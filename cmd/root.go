package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uvstool/uvs/internal/config"
	"github.com/uvstool/uvs/internal/models"
	"github.com/uvstool/uvs/internal/processor"
	"github.com/uvstool/uvs/internal/reporter"
)

const version = "0.2.0"

var (
	flagPython      string
	flagDryRun      bool
	flagVerbose     bool
	flagFormat      string
	flagOutput      string
	flagInterpreter string
	flagNoColor     bool
	flagConfig      string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "uvs [script.py...]",
	Short: "Inject PEP 723 inline dependencies into Python scripts",
	Long: `uvs converts plain Python scripts into PEP 723-compliant inline
dependency scripts for the uv package manager.

It statically extracts the script's imports, classifies each module as
standard-library, local, or third-party, and injects (or updates) a
"# /// script" metadata block declaring the third-party dependencies.
Existing block fields such as requires-python and [tool.*] tables are
preserved; only the dependencies list is rewritten.

Examples:
  # Inject / update dependencies
  uvs script.py

  # Batch process files and directories
  uvs a.py b.py ./scripts

  # Preview without writing
  uvs --dry-run script.py

  # Set the minimum Python version for new blocks
  uvs --python ">=3.11" script.py

  # Classify against a specific interpreter's stdlib
  uvs --interpreter python3.9 script.py

  # Machine-readable output
  uvs --format json script.py

After conversion run your script with:
  uv run script.py`,
	Version: version,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runInject,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagPython, "python", ">=3.12", "requires-python specifier for new blocks")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Analyze and report without modifying files")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Also show stdlib and local modules")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "terminal", "Output format: terminal, json")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&flagInterpreter, "interpreter", "", "Python executable to probe for stdlib module names")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable terminal styling")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default: ./uvs.yaml)")
}

func runInject(cmd *cobra.Command, args []string) error {
	cfg := models.DefaultConfig()
	cfg.Paths = args
	cfg.PythonSpec = flagPython
	cfg.DryRun = flagDryRun
	cfg.Verbose = flagVerbose
	cfg.OutputFormat = flagFormat
	cfg.OutputFile = flagOutput
	cfg.Interpreter = flagInterpreter
	cfg.NoColor = flagNoColor

	fileCfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	fileCfg.Apply(cfg, cmd.Flags().Changed)

	proc := processor.New(cfg)
	for _, warning := range proc.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	results := proc.Run()

	rep := reporter.Get(cfg)
	output, err := rep.Report(results)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, output, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", cfg.OutputFile)
	} else {
		fmt.Print(string(output))
	}

	for _, res := range results {
		if res.Failed() {
			os.Exit(1)
		}
	}
	return nil
}
