// =============================================================================
// Cart Parser - Parse Command
// =============================================================================
//
// This file defines the 'parse' command, which parses one cart file and
// prints its items and total.
//
// COMMAND USAGE:
//   cartparser parse FILE [flags]
//
// FLAGS:
//   --format : Output format: text, json, xml or xlsx (default text)
//   --output : Write the report to a file instead of stdout (required for xlsx)
//
// =============================================================================

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/cart"
	"github.com/ginjaninja78/cart-parser/internal/config"
	"github.com/ginjaninja78/cart-parser/internal/converter"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/validation"
)

const formatText = "text"

// parseFormat selects the output format of the parse command.
var parseFormat string

// parseOutput is the optional report destination.
var parseOutput string

// parseCmd represents the 'parse' command.
var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a cart file and print its items and total",
	Long: `Parse reads a cart file, validates it and prints every line item together
with the cart total.

If the file cannot be read or does not pass validation, nothing is printed on
stdout; every violation is listed on stderr and the command exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(
		&parseFormat,
		"format",
		formatText,
		"Output format: text, json, xml or xlsx",
	)

	parseCmd.Flags().StringVarP(
		&parseOutput,
		"output",
		"o",
		"",
		"Write the report to this file instead of stdout",
	)
}

// runParse parses filePath and writes the report.
func runParse(filePath string, stdout, stderr io.Writer) error {
	if parseFormat == config.FormatXLSX && parseOutput == "" {
		return fmt.Errorf("--output is required for the xlsx format")
	}

	result, err := cart.New(logger).Parse(filePath)
	if err != nil {
		return reportParseError(filePath, err, stderr)
	}

	var report []byte
	if parseFormat == formatText {
		report = renderText(result)
	} else {
		report, err = converter.Render(result, parseFormat, filepath.Base(filePath))
		if err != nil {
			return err
		}
	}

	if parseOutput != "" {
		if err := os.WriteFile(parseOutput, report, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("wrote report", "file", filePath, "report", parseOutput)
		return nil
	}

	_, err = stdout.Write(report)
	return err
}

// reportParseError prints a failed parse and returns the command error.
func reportParseError(filePath string, err error, stderr io.Writer) error {
	var verrs types.ValidationErrors
	if errors.As(err, &verrs) {
		fmt.Fprintf(stderr, "%s:\n%s", filePath, validation.FormatErrors(verrs))
		return fmt.Errorf("%s is not a valid cart (%d error(s))", filePath, len(verrs))
	}
	return err
}

// renderText renders a cart as an aligned table.
func renderText(result *types.ParseResult) []byte {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tPRODUCT\tPRICE\tQUANTITY")
	for _, item := range result.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Name, formatFloat(item.Price), formatFloat(item.Quantity))
	}
	w.Flush()

	fmt.Fprintf(&buf, "\nItems: %d\nTotal: %s\n", len(result.Items), formatFloat(result.Total))
	return buf.Bytes()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
