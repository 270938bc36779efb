// =============================================================================
// Cart Parser - Cart Module
// =============================================================================
//
// This module ties the cart pipeline together for a single file.
//
// PIPELINE:
//   1. Read the file (csvparser.ReadFile)
//   2. Validate the content (validation.Validate); any violation aborts
//   3. Split into non-empty lines and drop the header
//   4. Parse every data line (csvparser.ParseLine)
//   5. Sum the items (CalcTotal)
//
// ERRORS:
//   - *types.IOError when the file cannot be read
//   - types.ValidationErrors carrying every violation
//   A failed parse never returns a partial result.
//
// =============================================================================

package cart

import (
	"time"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
	"github.com/ginjaninja78/cart-parser/internal/logging"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/validation"
)

// Parser parses cart files. The zero value is not usable; use New.
// A Parser holds no per-call state and is safe for concurrent use.
type Parser struct {
	validator *validation.Validator
	logger    logging.Logger
}

// New creates a Parser that logs pipeline stages to logger.
// A nil logger discards everything.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Parser{
		validator: validation.NewValidator(),
		logger:    logger,
	}
}

var defaultParser = New(nil)

// Parse reads, validates and parses the cart file at filePath.
func Parse(filePath string) (*types.ParseResult, error) {
	return defaultParser.Parse(filePath)
}

// Parse reads, validates and parses the cart file at filePath.
func (p *Parser) Parse(filePath string) (*types.ParseResult, error) {
	start := time.Now()

	content, err := csvparser.ReadFile(filePath)
	if err != nil {
		p.logger.Error("read cart", "file", filePath, "error", err)
		return nil, err
	}

	if errs := p.validator.Validate(content); len(errs) > 0 {
		p.logger.Warn("cart failed validation", "file", filePath, "errors", len(errs))
		for _, ve := range errs {
			p.logger.Debug("validation error", "file", filePath, "error", ve.Error())
		}
		return nil, types.ValidationErrors(errs)
	}

	lines := csvparser.SplitLines(content)
	var dataLines []string
	if len(lines) > 1 {
		dataLines = lines[1:]
	}

	items := csvparser.ParseLines(dataLines)
	result := &types.ParseResult{
		Items: items,
		Total: CalcTotal(items),
	}

	p.logger.Debug("parsed cart",
		"file", filePath,
		"items", len(result.Items),
		"total", result.Total,
		"elapsed", time.Since(start),
	)

	return result, nil
}
