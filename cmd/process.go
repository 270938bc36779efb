// =============================================================================
// Cart Parser - Process Command
// =============================================================================
//
// This file defines the 'process' command, which ingests every cart file in
// the input directory.
//
// COMMAND USAGE:
//   cartparser process [flags]
//
// FLAGS:
//   --dry-run : Parse and render reports without writing or archiving
//   --file    : Process only this file
//
// PROCESSING PIPELINE:
//   1. Create the configured directories
//   2. Discover *.csv files in the input directory
//   3. For each file (concurrently, up to max_concurrency):
//      a. Parse and validate the cart
//      b. Render and write the report
//      c. Archive the cart and the report
//   4. Write an error log for failed carts
//   5. Write a processing summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/config"
	"github.com/ginjaninja78/cart-parser/internal/converter"
	"github.com/ginjaninja78/cart-parser/internal/logging"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun simulates processing without writing output files.
var dryRun bool

// filePath is the path to a specific file to process.
var filePath string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process every cart file in the input directory",
	Long: `The process command scans the input directory for cart files and processes
them concurrently. Each file is processed independently, and errors in one
file do not affect the processing of others.

On successful processing:
  - A report is placed in the output directory
  - The cart is moved to the input archive
  - The report is copied to the output archive

On error:
  - An error log is created in the output directory
  - The cart remains in the input directory
  - Processing continues for other files unless continue_on_error is false`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and render reports without writing or archiving anything",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Process only this file instead of scanning the input directory",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess discovers carts and processes them.
func runProcess() error {
	if err := appConfig.EnsureDirectories(); err != nil {
		return err
	}

	files := utils.NewFileManager(
		appConfig.InputDir,
		appConfig.OutputDir,
		appConfig.InputArchiveDir,
		appConfig.OutputArchiveDir,
	)

	var inputFiles []string
	if filePath != "" {
		inputFiles = []string{filePath}
	} else {
		discovered, err := files.DiscoverInputFiles("")
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
		inputFiles = discovered
	}

	if len(inputFiles) == 0 {
		fmt.Println("No cart files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d cart file(s) to process\n", len(inputFiles))

	summary := processFiles(inputFiles, appConfig, logger, converter.Options{DryRun: dryRun})
	printSummary(summary)

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, appConfig.OutputDir)
		if err != nil {
			logger.Warn("write summary failed", "error", err)
		} else {
			fmt.Printf("Summary written to %s\n", summaryPath)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d cart(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// processFiles runs a Converter per file on a bounded pool of goroutines and
// folds the results into a summary. Failed carts get an error log unless
// the run is a dry run.
func processFiles(inputFiles []string, cfg *config.MainConfig, log logging.Logger, options converter.Options) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		StartTime:  time.Now(),
		TotalFiles: len(inputFiles),
	}

	results := make(chan converter.Result, len(inputFiles))
	semaphore := make(chan struct{}, cfg.MaxConcurrency)
	stop := make(chan struct{})
	var stopOnce sync.Once
	var wg sync.WaitGroup

schedule:
	for _, file := range inputFiles {
		select {
		case <-stop:
			break schedule
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			result := converter.New(path, cfg, log, options).Run()
			if !result.Success && !cfg.ShouldContinueOnError() {
				stopOnce.Do(func() { close(stop) })
			}
			results <- result
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var errorEntries []utils.ErrorLogEntry
	for result := range results {
		name := filepath.Base(result.FilePath)
		summary.ValidationErrors += result.Stats.ValidationErrors

		if result.Success {
			summary.SuccessfulFiles++
			summary.TotalLineItems += result.Stats.LineItems
			summary.GrandTotal += result.Cart.Total
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   result.FilePath,
				OutputFile:  result.OutputFile,
				ArchivePath: result.ArchivePath,
				LineItems:   result.Stats.LineItems,
				Total:       result.Cart.Total,
				ProcessTime: result.Stats.ProcessingTime,
			})
			fmt.Printf("  ✓ %s -> %s (total %s)\n", name, displayOutput(result), formatFloat(result.Cart.Total))
			continue
		}

		summary.FailedFiles++
		entries := utils.ErrorLogEntries(name, result.Error)
		errorEntries = append(errorEntries, entries...)
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    result.FilePath,
			ErrorMessage: result.Error.Error(),
			ErrorType:    entries[0].ErrorType,
		})
		fmt.Printf("  ✗ %s: %v\n", name, result.Error)
	}

	// Files never scheduled after a stop count as skipped, not failed.
	summary.TotalFiles = summary.SuccessfulFiles + summary.FailedFiles
	summary.EndTime = time.Now()

	if len(errorEntries) > 0 && !options.DryRun {
		logPath, err := utils.WriteErrorLog(errorEntries, cfg.OutputDir)
		if err != nil {
			log.Warn("write error log failed", "error", err)
		} else {
			fmt.Printf("Errors have been logged to %s\n", logPath)
		}
	}

	return summary
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func displayOutput(result converter.Result) string {
	if result.OutputFile == "" {
		return "(dry run)"
	}
	return filepath.Base(result.OutputFile)
}

func printSummary(summary utils.ProcessingSummary) {
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", summary.TotalFiles)
	fmt.Printf("Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Printf("Errors:          %d\n", summary.FailedFiles)
	fmt.Printf("Line items:      %d\n", summary.TotalLineItems)
	fmt.Printf("Grand total:     %.2f\n", summary.GrandTotal)
	fmt.Printf("Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))
}
