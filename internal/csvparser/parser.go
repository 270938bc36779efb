// =============================================================================
// Cart Parser - CSV Parser Module
// =============================================================================
//
// This module holds the file-facing half of the cart pipeline:
//   - Reading a cart file into memory (the only I/O in the pipeline)
//   - Splitting content into non-empty lines
//   - Splitting a line into fields
//   - Converting one validated line into a LineItem
//
// FORMAT:
//   Cart files are plain comma-separated text. There is no quoting or
//   escaping support, so a product name can never contain a comma. Lines
//   that are empty after trimming are ignored everywhere.
//
// =============================================================================

package csvparser

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

// Delimiter separates fields within a cart line.
const Delimiter = ","

// =============================================================================
// READER
// =============================================================================

// ReadFile returns the full text content of a cart file.
//
// RETURNS:
//   - The file content.
//   - A *types.IOError if the file does not exist or cannot be read.
//
// The file handle is closed before ReadFile returns.
func ReadFile(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", &types.IOError{Path: filePath, Err: errors.Wrap(err, "open")}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", &types.IOError{Path: filePath, Err: errors.Wrap(err, "read")}
	}

	return string(data), nil
}

// =============================================================================
// LINE AND FIELD SPLITTING
// =============================================================================

// SplitLines splits content on line terminators and returns the lines that
// are non-empty after trimming. Returned lines are trimmed, which also drops
// the '\r' of CRLF files.
func SplitLines(content string) []string {
	rawLines := strings.Split(content, "\n")
	lines := make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// SplitFields splits a line on the delimiter and trims every field.
func SplitFields(line string) []string {
	fields := strings.Split(line, Delimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// ParseNumber parses a decimal literal. Infinities and NaN are rejected
// because they are never meaningful prices or quantities.
func ParseNumber(value string) (float64, error) {
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %q", value)
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, errors.Errorf("parse %q: not a finite number", value)
	}
	return number, nil
}

// =============================================================================
// LINE PARSER
// =============================================================================

// ParseLine converts one data line into a LineItem with a fresh ID.
//
// The line is assumed to have passed validation already. Nothing is
// re-checked here: a missing field becomes empty and an unparsable number
// becomes 0.
func ParseLine(line string) types.LineItem {
	fields := SplitFields(line)

	item := types.LineItem{
		ID: uuid.New().String(),
	}

	if len(fields) > types.ColumnName {
		item.Name = fields[types.ColumnName]
	}
	if len(fields) > types.ColumnPrice {
		item.Price, _ = ParseNumber(fields[types.ColumnPrice])
	}
	if len(fields) > types.ColumnQuantity {
		item.Quantity, _ = ParseNumber(fields[types.ColumnQuantity])
	}

	return item
}

// ParseLines runs ParseLine over every line, preserving order.
func ParseLines(lines []string) []types.LineItem {
	items := make([]types.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, ParseLine(line))
	}
	return items
}
