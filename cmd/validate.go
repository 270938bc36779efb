// =============================================================================
// Cart Parser - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks one cart file and
// lists every violation without parsing items.
//
// COMMAND USAGE:
//   cartparser validate FILE [--json]
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/validation"
)

// validateJSON prints violations as a JSON array.
var validateJSON bool

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a cart file and list every violation",
	Long: `Validate checks a cart file against the cart schema:

  - the header must be exactly "Product name,Price,Quantity"
  - every row must have 3 columns
  - the product name must be a nonempty string
  - price and quantity must be positive numbers

Blank lines are ignored. The command exits non-zero when the file cannot be
read or has at least one violation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&validateJSON,
		"json",
		false,
		"Print violations as JSON",
	)
}

// runValidate validates filePath and prints the outcome.
func runValidate(filePath string, stdout io.Writer) error {
	content, err := csvparser.ReadFile(filePath)
	if err != nil {
		return err
	}

	errs := validation.NewValidator().Validate(content)
	logger.Debug("validated cart", "file", filePath, "errors", len(errs))

	if validateJSON {
		if errs == nil {
			errs = []*types.ValidationError{}
		}
		data, err := json.MarshalIndent(errs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
	} else if len(errs) == 0 {
		fmt.Fprintf(stdout, "%s: valid\n", filePath)
	} else {
		fmt.Fprintf(stdout, "%s:\n%s", filePath, validation.FormatErrors(errs))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s is not a valid cart (%d error(s))", filePath, len(errs))
	}
	return nil
}
