package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evamaxfield/extract-imported-libraries/internal/config"
	"github.com/evamaxfield/extract-imported-libraries/internal/extract"
)

var (
	scanRecursiveFlag  bool
	scanLanguagesFlag  []string
	scanIgnoreDirsFlag []string
	scanNoIgnoreFlag   bool
	scanWorkersFlag    int
	scanCacheFlag      bool
	scanQuietFlag      bool
	scanJSONFlag       bool
	scanSummaryFlag    bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Extract the imported libraries of every source file in a directory",
	Long: `Scan walks a directory, extracts the imports of every supported source
file and reports per-file results plus the modules seen under vendored
directories.

Files under vendored directories (vendor, node_modules, third_party,
external, deps, .git by default) are not reported themselves, but any
module they define or import is treated as third-party everywhere else
in the scan.

Scan settings can also come from an .eil.yaml file in the scanned
directory; flags win over the file.

Examples:
  # Scan the current directory
  eil scan

  # Scan a project, Python and R files only
  eil scan ~/code/analysis --language python --language r

  # Flat scan of one directory, no descent
  eil scan src --recursive=false

  # Treat nothing as vendored
  eil scan --no-ignore

  # Machine-readable output
  eil scan --json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanRecursiveFlag, "recursive", "r", true, "Descend into subdirectories")
	scanCmd.Flags().StringSliceVarP(&scanLanguagesFlag, "language", "l", nil, "Restrict the scan to these languages (repeatable)")
	scanCmd.Flags().StringSliceVar(&scanIgnoreDirsFlag, "ignore-dirs", nil, "Directory-name patterns treated as vendored code")
	scanCmd.Flags().BoolVar(&scanNoIgnoreFlag, "no-ignore", false, "Disable the vendored-directory policy entirely")
	scanCmd.Flags().IntVarP(&scanWorkersFlag, "workers", "w", 0, "Worker pool size (0 = number of CPUs)")
	scanCmd.Flags().BoolVar(&scanCacheFlag, "cache", false, "Reuse per-file results across scans")
	scanCmd.Flags().BoolVarP(&scanQuietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	scanCmd.Flags().BoolVar(&scanJSONFlag, "json", false, "Emit JSON instead of text")
	scanCmd.Flags().BoolVar(&scanSummaryFlag, "summary", false, "Print only the aggregated module sets")
}

func runScan(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling scan...")
		cancel()
	}()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	cfg, err := config.NewLoader(root).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	opts, err := scanOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.Progress = NewCLIProgressReporter(scanQuietFlag || scanJSONFlag)

	extractor, err := extract.New()
	if err != nil {
		return err
	}
	scanner, err := extract.NewScanner(extractor, opts)
	if err != nil {
		return err
	}

	result, err := scanner.Scan(ctx, root)
	if err != nil {
		return err
	}

	if verbose {
		for path, msg := range result.Failed {
			log.Printf("failed %s: %s", path, msg)
		}
	}

	if scanJSONFlag {
		if scanSummaryFlag {
			return writeJSON(os.Stdout, result.Summary())
		}
		return writeJSON(os.Stdout, result)
	}
	if scanSummaryFlag {
		writeLibraries(os.Stdout, result.Summary())
		return nil
	}
	writeDirectoryResult(os.Stdout, result)
	return nil
}

// scanOptions merges the loaded configuration with the command-line flags.
// Flags that were explicitly set win over the config file.
func scanOptions(cmd *cobra.Command, cfg *config.Config) (extract.ScanOptions, error) {
	if cmd.Flags().Changed("recursive") {
		cfg.Scan.Recursive = scanRecursiveFlag
	}
	if cmd.Flags().Changed("language") {
		cfg.Scan.Languages = scanLanguagesFlag
	}
	if cmd.Flags().Changed("ignore-dirs") {
		cfg.Scan.IgnoreDirs = scanIgnoreDirsFlag
	}
	if scanNoIgnoreFlag {
		cfg.Scan.IgnoreDirs = nil
	}
	if cmd.Flags().Changed("workers") {
		cfg.Scan.Workers = scanWorkersFlag
	}
	if cmd.Flags().Changed("cache") {
		cfg.Scan.Cache = scanCacheFlag
	}

	if err := config.Validate(cfg); err != nil {
		return extract.ScanOptions{}, err
	}
	return cfg.ScanOptions(), nil
}
