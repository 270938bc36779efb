// =============================================================================
// Cart Parser - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser
//   - validation
//   - cart
//   - converter, xmlwriter, xlsxwriter
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// CART SCHEMA
// =============================================================================

// CartHeader is the fixed header row of a cart file.
// The comparison is case-sensitive and column order matters.
var CartHeader = []string{"Product name", "Price", "Quantity"}

// Column indexes within a cart row.
const (
	ColumnName     = 0
	ColumnPrice    = 1
	ColumnQuantity = 2
)

// =============================================================================
// LINE ITEM TYPES
// =============================================================================

// LineItem represents one parsed cart row.
type LineItem struct {
	// ID is generated at parse time and is never derived from the row content.
	ID string `json:"id" xml:"id,attr"`

	// Name is the product name.
	Name string `json:"name" xml:"name"`

	// Price is the unit price. Always positive for validated input.
	Price float64 `json:"price" xml:"price"`

	// Quantity may be fractional. Always positive for validated input.
	Quantity float64 `json:"quantity" xml:"quantity"`
}

// ParseResult is the outcome of parsing a whole cart file.
type ParseResult struct {
	// Items contains the line items in file order.
	Items []LineItem `json:"items"`

	// Total is the sum of Price * Quantity over Items.
	Total float64 `json:"total"`
}

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ErrorType categorizes a schema violation.
type ErrorType string

const (
	// ErrorTypeHeader marks a malformed column-header row.
	ErrorTypeHeader ErrorType = "header"

	// ErrorTypeRow marks a malformed data row.
	ErrorTypeRow ErrorType = "row"
)

// ValidationError represents a single schema violation.
type ValidationError struct {
	// Type is the violation category.
	Type ErrorType `json:"type"`

	// Row is the 0-based index of the data row (header excluded, blank lines
	// not counted). It is -1 for header errors.
	Row int `json:"row"`

	// Column is the index of the offending column, or -1 when the whole row
	// is at fault.
	Column int `json:"column"`

	// Message is a human-readable description of the violation.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Type == ErrorTypeHeader {
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
	if e.Column < 0 {
		return fmt.Sprintf("[%s] row %d: %s", e.Type, e.Row, e.Message)
	}
	return fmt.Sprintf("[%s] row %d, column %d: %s", e.Type, e.Row, e.Column, e.Message)
}

// ValidationErrors is the aggregate failure returned when a cart file does
// not pass validation. It always carries the full list of violations.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e[0].Error()
	}

	messages := make([]string, len(e))
	for i, ve := range e {
		messages[i] = ve.Error()
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e), strings.Join(messages, "; "))
}

// =============================================================================
// I/O ERROR TYPE
// =============================================================================

// IOError is returned when a cart file does not exist or cannot be read.
type IOError struct {
	// Path is the file that could not be read.
	Path string

	// Err is the underlying filesystem error.
	Err error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("read cart file %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}
