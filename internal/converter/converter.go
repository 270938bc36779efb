// =============================================================================
// Cart Parser - Converter Module
// =============================================================================
//
// This module runs the batch pipeline for a single cart file, from parsing to
// archival. It is used by the process and watch commands.
//
// CONVERSION PIPELINE:
//   1. Parse and validate the cart (cart.Parser)
//   2. Render the report (json, xml or xlsx)
//   3. Write the report to the output directory
//   4. Archive the cart and the report
//
// CONCURRENCY:
//   A Converter handles exactly one file and shares no mutable state with
//   other Converters, so the process command runs them in parallel.
//
// =============================================================================

package converter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"

	"github.com/ginjaninja78/cart-parser/internal/cart"
	"github.com/ginjaninja78/cart-parser/internal/config"
	"github.com/ginjaninja78/cart-parser/internal/logging"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/xlsxwriter"
	"github.com/ginjaninja78/cart-parser/internal/xmlwriter"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single cart file.
type Result struct {
	// FilePath is the path to the cart file that was processed.
	FilePath string

	// OutputFile is the path to the generated report.
	// This is empty if processing failed or in dry-run mode.
	OutputFile string

	// ArchivePath is where the cart file was moved to, if it was archived.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Cart is the parsed cart on success.
	Cart *types.ParseResult

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// LineItems is the number of parsed line items.
	LineItems int

	// ValidationErrors is the number of violations found in the cart.
	ValidationErrors int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options adjusts a single run.
type Options struct {
	// DryRun parses and renders the report without writing or archiving.
	DryRun bool
}

// Converter handles the processing of a single cart file.
type Converter struct {
	cartPath   string
	mainConfig *config.MainConfig
	files      *utils.FileManager
	parser     *cart.Parser
	options    Options
	logger     logging.Logger
}

// New creates a new Converter instance.
func New(cartPath string, mainConfig *config.MainConfig, logger logging.Logger, options Options) *Converter {
	if logger == nil {
		logger = logging.Discard()
	}

	files := utils.NewFileManager(
		mainConfig.InputDir,
		mainConfig.OutputDir,
		mainConfig.InputArchiveDir,
		mainConfig.OutputArchiveDir,
	)
	files.ArchiveOnSuccess = mainConfig.ShouldArchive() && !options.DryRun
	files.DatedArchives = mainConfig.DatedArchives

	return &Converter{
		cartPath:   cartPath,
		mainConfig: mainConfig,
		files:      files,
		parser:     cart.New(logger),
		options:    options,
		logger:     logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the file. Failures are reported in the
// Result, never as a panic or a partial report.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.cartPath,
		Success:  false,
	}

	c.logger.Info("processing cart", "file", c.cartPath)

	// =========================================================================
	// STEP 1: PARSE AND VALIDATE
	// =========================================================================

	parsed, err := c.parser.Parse(c.cartPath)
	if err != nil {
		var verrs types.ValidationErrors
		if errors.As(err, &verrs) {
			result.Stats.ValidationErrors = len(verrs)
		}
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	result.Cart = parsed
	result.Stats.LineItems = len(parsed.Items)

	// =========================================================================
	// STEP 2: RENDER REPORT
	// =========================================================================

	report, err := Render(parsed, c.mainConfig.OutputFormat, filepath.Base(c.cartPath))
	if err != nil {
		result.Error = errors.Wrap(err, "render report")
		return result
	}

	if c.options.DryRun {
		c.logger.Info("dry run, report not written", "file", c.cartPath, "bytes", len(report))
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 3: WRITE REPORT
	// =========================================================================

	outputPath, err := c.writeOutput(report)
	if err != nil {
		result.Error = errors.Wrap(err, "write report")
		return result
	}

	result.OutputFile = outputPath
	c.logger.Info("wrote report", "file", c.cartPath, "report", outputPath, "total", parsed.Total)

	// =========================================================================
	// STEP 4: ARCHIVE FILES
	// =========================================================================

	archivePath, err := c.archiveFiles(outputPath)
	if err != nil {
		// The report exists; archival problems do not fail the cart.
		c.logger.Warn("archive failed", "file", c.cartPath, "error", err)
	}
	result.ArchivePath = archivePath

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// REPORT RENDERING
// =============================================================================

// Render encodes a parsed cart in the given output format.
func Render(parsed *types.ParseResult, format, source string) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshal JSON")
		}
		return append(data, '\n'), nil
	case config.FormatXML:
		options := xmlwriter.DefaultGenerateOptions()
		options.Source = source
		return xmlwriter.GenerateWithOptions(parsed, options)
	case config.FormatXLSX:
		return xlsxwriter.Generate(parsed)
	default:
		return nil, errors.Errorf("unsupported output format %q", format)
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeOutput writes the report to the output directory.
func (c *Converter) writeOutput(report []byte) (string, error) {
	fileName := utils.GenerateOutputFileName(c.mainConfig.OutputNameFormat, c.cartPath, c.mainConfig.OutputFormat)
	outputPath := filepath.Join(c.mainConfig.OutputDir, fileName)

	if err := os.MkdirAll(c.mainConfig.OutputDir, 0755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}
	if err := os.WriteFile(outputPath, report, 0644); err != nil {
		return "", errors.Wrap(err, "write file")
	}

	return outputPath, nil
}

// archiveFiles moves the cart to the input archive and copies the report to
// the output archive. It returns the cart's archived path.
func (c *Converter) archiveFiles(outputPath string) (string, error) {
	if !c.files.ArchiveOnSuccess {
		return "", nil
	}

	archivePath, err := c.files.ArchiveInputFile(c.cartPath)
	if err != nil {
		return "", errors.Wrap(err, "archive input file")
	}

	if _, err := c.files.ArchiveOutputFile(outputPath); err != nil {
		return archivePath, errors.Wrap(err, "archive output file")
	}

	return archivePath, nil
}
