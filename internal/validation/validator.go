// =============================================================================
// Cart Parser - Validation Engine
// =============================================================================
//
// This module checks raw cart content against the fixed cart schema:
//   - Header row must be exactly "Product name,Price,Quantity"
//   - Every data row must have exactly 3 columns
//   - Product name must be a nonempty string
//   - Price and quantity must be positive numbers
//
// VALIDATION STRATEGY:
//   Validation is performed at two levels:
//   1. Header-level: one error for any mismatch against the schema
//   2. Row-level: one error per column-count mismatch, otherwise one error
//      per failing field
//
// ERROR HANDLING:
//   - Errors are collected, not returned on the first failure
//   - A header error does not stop row validation
//   - A column-count error skips the per-field checks of that row
//   - Blank lines are never validated or reported
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
	"github.com/ginjaninja78/cart-parser/internal/types"
)

// =============================================================================
// FIELD RULES
// =============================================================================

// Field rule tags evaluated by the validator engine.
const (
	ruleNonEmpty = "required"
	rulePositive = "gt=0"
)

// columnLabels are the human names used in field error messages.
var columnLabels = map[int]string{
	types.ColumnName:     "Product name",
	types.ColumnPrice:    "Price",
	types.ColumnQuantity: "Quantity",
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator validates cart content.
// It is safe for concurrent use.
type Validator struct {
	fields *validator.Validate
}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{
		fields: validator.New(),
	}
}

// defaultValidator backs the package-level Validate function.
var defaultValidator = NewValidator()

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks content against the cart schema and returns every
// violation in encounter order. It never fails; an empty result means the
// content is valid.
func Validate(content string) []*types.ValidationError {
	return defaultValidator.Validate(content)
}

// Validate checks content against the cart schema.
func (v *Validator) Validate(content string) []*types.ValidationError {
	var errors []*types.ValidationError

	lines := csvparser.SplitLines(content)
	if len(lines) == 0 {
		return errors
	}

	if err := v.ValidateHeader(lines[0]); err != nil {
		errors = append(errors, err)
	}

	for rowIndex, line := range lines[1:] {
		errors = append(errors, v.ValidateRow(rowIndex, line)...)
	}

	return errors
}

// ValidateHeader compares a header line with types.CartHeader.
// It returns at most one error whose Column is the first mismatching column.
func (v *Validator) ValidateHeader(line string) *types.ValidationError {
	headers := csvparser.SplitFields(line)

	mismatch := -1
	for i, expected := range types.CartHeader {
		if i >= len(headers) || headers[i] != expected {
			mismatch = i
			break
		}
	}
	if mismatch < 0 && len(headers) != len(types.CartHeader) {
		mismatch = len(types.CartHeader)
	}
	if mismatch < 0 {
		return nil
	}

	return &types.ValidationError{
		Type:   types.ErrorTypeHeader,
		Row:    -1,
		Column: mismatch,
		Message: fmt.Sprintf("Expected header %q, got %q",
			strings.Join(types.CartHeader, csvparser.Delimiter),
			strings.Join(headers, csvparser.Delimiter)),
	}
}

// ValidateRow validates one data row. rowIndex is the 0-based data row index.
func (v *Validator) ValidateRow(rowIndex int, line string) []*types.ValidationError {
	fields := csvparser.SplitFields(line)

	if len(fields) != len(types.CartHeader) {
		return []*types.ValidationError{{
			Type:    types.ErrorTypeRow,
			Row:     rowIndex,
			Column:  -1,
			Message: fmt.Sprintf("Expected %d columns, got %d", len(types.CartHeader), len(fields)),
		}}
	}

	var errors []*types.ValidationError

	if msg := v.validateName(fields[types.ColumnName]); msg != "" {
		errors = append(errors, rowError(rowIndex, types.ColumnName, msg))
	}
	for _, column := range []int{types.ColumnPrice, types.ColumnQuantity} {
		if msg := v.validatePositive(columnLabels[column], fields[column]); msg != "" {
			errors = append(errors, rowError(rowIndex, column, msg))
		}
	}

	return errors
}

// =============================================================================
// FIELD VALIDATORS
// =============================================================================
// Each returns an empty string when the value is valid, or an error message.

// validateName checks the product name column.
func (v *Validator) validateName(value string) string {
	if err := v.fields.Var(strings.TrimSpace(value), ruleNonEmpty); err != nil {
		return fmt.Sprintf("%s must be a nonempty string", columnLabels[types.ColumnName])
	}
	return ""
}

// validatePositive checks a price or quantity column.
func (v *Validator) validatePositive(label, value string) string {
	number, err := csvparser.ParseNumber(value)
	if err == nil {
		err = v.fields.Var(number, rulePositive)
	}
	if err != nil {
		return fmt.Sprintf("%s must be a positive number, got %q", label, value)
	}
	return ""
}

func rowError(rowIndex, column int, message string) *types.ValidationError {
	return &types.ValidationError{
		Type:    types.ErrorTypeRow,
		Row:     rowIndex,
		Column:  column,
		Message: message,
	}
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*types.ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
