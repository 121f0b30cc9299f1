package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract"
)

var extractJSONFlag bool

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the imported libraries of a single source file",
	Long: `Extract parses one source file and prints the libraries it imports,
grouped into standard-library, third-party and first-party modules.

The language is detected from the file extension. First-party detection
uses the file's own directory as the project root.

Examples:
  # Extract a Python file
  eil extract main.py

  # Machine-readable output
  eil extract src/app.ts --json
`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractJSONFlag, "json", false, "Emit JSON instead of text")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	extractor, err := extract.New()
	if err != nil {
		return err
	}

	libs, err := extractor.ExtractFile(context.Background(), path)
	if err != nil {
		return err
	}

	if extractJSONFlag {
		return writeJSON(os.Stdout, libs)
	}
	writeLibraries(os.Stdout, libs)
	return nil
}
