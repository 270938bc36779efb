// =============================================================================
// Cart Parser - XLSX Writer Module
// =============================================================================
//
// This module renders a parsed cart as an XLSX workbook for spreadsheet users.
//
// SHEET LAYOUT ("Cart"):
//
//   | A            | B     | C        | D        | E  |
//   |--------------|-------|----------|----------|----|
//   | Product name | Price | Quantity | Subtotal | ID |
//   | Apple        | 2.5   | 4        | 10       | …  |
//   | Total        |       |          | 10       |    |
//
// The header row is bold. The total row is written as a value, not a
// formula, so readers that do not evaluate formulas still see it.
//
// =============================================================================

package xlsxwriter

import (
	"bytes"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

// SheetName is the name of the worksheet holding the cart.
const SheetName = "Cart"

// Headers is the header row of the cart sheet.
var Headers = []string{"Product name", "Price", "Quantity", "Subtotal", "ID"}

// Generate renders result as an XLSX workbook and returns its bytes.
func Generate(result *types.ParseResult) ([]byte, error) {
	f, err := build(result)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

// WriteFile renders result and saves the workbook to filePath.
func WriteFile(result *types.ParseResult, filePath string) error {
	f, err := build(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filePath); err != nil {
		return errors.Wrapf(err, "save workbook %s", filePath)
	}
	return nil
}

// ReadTotal reads the total back from a workbook produced by Generate.
// It is used to verify archived reports.
func ReadTotal(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return "", errors.Wrap(err, "read rows")
	}
	if len(rows) == 0 {
		return "", errors.New("workbook has no rows")
	}

	last := rows[len(rows)-1]
	if len(last) < 4 || last[0] != "Total" {
		return "", errors.New("workbook has no total row")
	}
	return last[3], nil
}

// build lays out the cart sheet.
func build(result *types.ParseResult) (*excelize.File, error) {
	if result == nil {
		return nil, errors.New("nil parse result")
	}

	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "rename sheet")
	}

	if err := writeRows(f, result); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, result *types.ParseResult) error {
	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "create header style")
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(Headers), 1)
	if err != nil {
		return errors.Wrap(err, "resolve header range")
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeaderCell, bold); err != nil {
		return errors.Wrap(err, "style header")
	}

	for i, item := range result.Items {
		subtotal := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromFloat(item.Quantity))
		row := []interface{}{
			item.Name,
			item.Price,
			item.Quantity,
			subtotal.InexactFloat64(),
			item.ID,
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	totalRow := []interface{}{"Total", nil, nil, result.Total}
	return setRow(f, len(result.Items)+2, totalRow)
}

func setRow(f *excelize.File, rowNumber int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return errors.Wrapf(err, "resolve row %d", rowNumber)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return errors.Wrapf(err, "write row %d", rowNumber)
	}
	return nil
}
