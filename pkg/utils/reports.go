// =============================================================================
// Cart Parser - Run Reports
// =============================================================================
//
// Plain-text files written next to the reports at the end of a batch:
//
//   error_log_<timestamp>_<id>.txt      one line per violation or failure
//   processing_summary_<timestamp>.txt  totals and one line per cart
//
// Both are tab-aligned tables meant for humans and grep.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

const (
	fileStampLayout = "20060102_150405"
	lineStampLayout = "2006-01-02 15:04:05"
)

// =============================================================================
// ERROR LOG
// =============================================================================

// ErrorLogEntry is one line of an error log. RowNumber and ColumnNumber are
// -1 when they do not apply.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	ErrorType    string
	ErrorMessage string
	RowNumber    int
	ColumnNumber int
}

// Error types used for failures that are not cart violations.
const (
	ErrorTypeIO         = "io"
	ErrorTypeProcessing = "processing"
)

// ErrorLogEntries expands a failed cart into log entries: one per violation
// for types.ValidationErrors, a single entry otherwise.
func ErrorLogEntries(fileName string, err error) []ErrorLogEntry {
	now := time.Now()

	var verrs types.ValidationErrors
	if errors.As(err, &verrs) {
		entries := make([]ErrorLogEntry, 0, len(verrs))
		for _, ve := range verrs {
			entries = append(entries, ErrorLogEntry{
				Timestamp:    now,
				FileName:     fileName,
				ErrorType:    string(ve.Type),
				ErrorMessage: ve.Message,
				RowNumber:    ve.Row,
				ColumnNumber: ve.Column,
			})
		}
		return entries
	}

	kind := ErrorTypeProcessing
	var ioErr *types.IOError
	if errors.As(err, &ioErr) {
		kind = ErrorTypeIO
	}

	return []ErrorLogEntry{{
		Timestamp:    now,
		FileName:     fileName,
		ErrorType:    kind,
		ErrorMessage: err.Error(),
		RowNumber:    -1,
		ColumnNumber: -1,
	}}
}

// WriteErrorLog writes entries to a new log in outputDir and returns its
// path. An empty list writes nothing and returns "".
func WriteErrorLog(entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	name := fmt.Sprintf("error_log_%s_%s.txt", time.Now().Format(fileStampLayout), uuid.New().String()[:8])
	path := filepath.Join(outputDir, name)

	err := writeReport(path, func(w *bufio.Writer) {
		fmt.Fprintf(w, "Cart Parser error log\nGenerated %s, %d error(s)\n\n",
			time.Now().Format(lineStampLayout), len(entries))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tFILE\tTYPE\tROW\tCOLUMN\tMESSAGE")
		for _, entry := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				entry.Timestamp.Format(lineStampLayout),
				entry.FileName,
				entry.ErrorType,
				position(entry.RowNumber),
				position(entry.ColumnNumber),
				entry.ErrorMessage,
			)
		}
		tw.Flush()
	})
	if err != nil {
		return "", errors.Wrap(err, "write error log")
	}
	return path, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary aggregates one batch run.
type ProcessingSummary struct {
	StartTime        time.Time
	EndTime          time.Time
	TotalFiles       int
	SuccessfulFiles  int
	FailedFiles      int
	TotalLineItems   int
	GrandTotal       float64
	ValidationErrors int
	ProcessedFiles   []ProcessedFileInfo
	FailedFilesList  []FailedFileInfo
}

// ProcessedFileInfo describes a cart that produced a report.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	ArchivePath string
	LineItems   int
	Total       float64
	ProcessTime time.Duration
}

// FailedFileInfo describes a cart that was rejected.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
	ErrorType    string
}

// WriteSummaryLog writes the summary of a run to outputDir and returns the
// file's path.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	path := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", time.Now().Format(fileStampLayout)))

	err := writeReport(path, func(w *bufio.Writer) {
		fmt.Fprintf(w, "Cart Parser processing summary\n\n")

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Started\t%s\n", summary.StartTime.Format(lineStampLayout))
		fmt.Fprintf(tw, "Finished\t%s\n", summary.EndTime.Format(lineStampLayout))
		fmt.Fprintf(tw, "Duration\t%s\n", summary.EndTime.Sub(summary.StartTime))
		fmt.Fprintf(tw, "Files\t%d\n", summary.TotalFiles)
		fmt.Fprintf(tw, "Successful\t%d\n", summary.SuccessfulFiles)
		fmt.Fprintf(tw, "Failed\t%d\n", summary.FailedFiles)
		fmt.Fprintf(tw, "Line items\t%d\n", summary.TotalLineItems)
		fmt.Fprintf(tw, "Grand total\t%s\n", formatAmount(summary.GrandTotal))
		fmt.Fprintf(tw, "Violations\t%d\n", summary.ValidationErrors)
		tw.Flush()

		if len(summary.ProcessedFiles) > 0 {
			fmt.Fprintf(w, "\nProcessed\n")
			tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CART\tREPORT\tITEMS\tTOTAL\tTIME")
			for _, pf := range summary.ProcessedFiles {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
					pf.InputFile, pf.OutputFile, pf.LineItems, formatAmount(pf.Total), pf.ProcessTime)
			}
			tw.Flush()
		}

		if len(summary.FailedFilesList) > 0 {
			fmt.Fprintf(w, "\nFailed\n")
			tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CART\tTYPE\tERROR")
			for _, ff := range summary.FailedFilesList {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", ff.InputFile, ff.ErrorType, ff.ErrorMessage)
			}
			tw.Flush()
		}
	})
	if err != nil {
		return "", errors.Wrap(err, "write summary")
	}
	return path, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// writeReport creates path and hands a buffered writer to fill.
func writeReport(path string, fill func(w *bufio.Writer)) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	fill(w)
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func position(n int) string {
	if n < 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func formatAmount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}
