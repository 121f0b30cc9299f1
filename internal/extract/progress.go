package extract

import "time"

// ScanStats summarizes a completed directory scan.
type ScanStats struct {
	FilesProcessed int
	FilesFailed    int
	Duration       time.Duration
}

// ProgressReporter receives scan progress callbacks. A side channel only:
// implementations can draw progress bars, log, or stay silent, and nothing
// here influences classification output.
type ProgressReporter interface {
	// OnScanStart is called once with the number of files to be processed.
	OnScanStart(totalFiles int)

	// OnFileProcessed is called after each file completes (success or
	// failure), possibly from multiple goroutines.
	OnFileProcessed(path string)

	// OnScanComplete is called when the scan finishes.
	OnScanComplete(stats ScanStats)
}

// NoOpProgressReporter is the default reporter; it does nothing.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnScanStart(totalFiles int)     {}
func (NoOpProgressReporter) OnFileProcessed(path string)    {}
func (NoOpProgressReporter) OnScanComplete(stats ScanStats) {}
