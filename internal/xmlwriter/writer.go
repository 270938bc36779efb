// =============================================================================
// Cart Parser - XML Writer Module
// =============================================================================
//
// This module renders a parsed cart as an XML report.
//
// XML STRUCTURE:
//
//   <cart source="cart.csv">              <!-- Root element -->
//     <lineItem n="1" id="...">           <!-- One element per item, 1-indexed -->
//       <name>Apple</name>
//       <price>2.5</price>
//       <quantity>4</quantity>
//       <subtotal>10</subtotal>
//     </lineItem>
//     <itemCount>1</itemCount>
//     <total>10</total>
//   </cart>
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootElement is the name of the root element.
	// Default: "cart"
	RootElement string

	// LineItemElement is the name of each item element.
	// Default: "lineItem"
	LineItemElement string

	// IndexAttribute is the attribute carrying the 1-based item index.
	// Default: "n"
	IndexAttribute string

	// Source is written as the root "source" attribute when set.
	Source string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootElement:           "cart",
		LineItemElement:       "lineItem",
		IndexAttribute:        "n",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate renders result with the default options.
func Generate(result *types.ParseResult) ([]byte, error) {
	return GenerateWithOptions(result, DefaultGenerateOptions())
}

// GenerateWithOptions renders result with custom options.
func GenerateWithOptions(result *types.ParseResult, options GenerateOptions) ([]byte, error) {
	if result == nil {
		return nil, errors.New("nil parse result")
	}

	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	doc := buildDocument(result, options)

	xmlBytes, err := xml.MarshalIndent(doc, "", options.Indent)
	if err != nil {
		return nil, errors.Wrap(err, "marshal XML")
	}

	buffer.Write(xmlBytes)
	buffer.WriteByte('\n')

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr   `xml:",attr"`
	Value      string       `xml:",chardata"`
	Children   []XMLElement `xml:",any"`
}

// buildDocument builds the element tree for a cart.
func buildDocument(result *types.ParseResult, options GenerateOptions) XMLElement {
	root := XMLElement{XMLName: xml.Name{Local: options.RootElement}}
	if options.Source != "" {
		root.Attributes = append(root.Attributes, xml.Attr{Name: xml.Name{Local: "source"}, Value: options.Source})
	}

	for i, item := range result.Items {
		root.Children = append(root.Children, buildLineItemElement(i+1, item, options))
	}

	root.Children = append(root.Children,
		createSimpleElement("itemCount", strconv.Itoa(len(result.Items))),
		createSimpleElement("total", formatNumber(result.Total)),
	)

	return root
}

// buildLineItemElement builds the element for one item.
func buildLineItemElement(index int, item types.LineItem, options GenerateOptions) XMLElement {
	subtotal := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromFloat(item.Quantity))

	return XMLElement{
		XMLName: xml.Name{Local: options.LineItemElement},
		Attributes: []xml.Attr{
			{Name: xml.Name{Local: options.IndexAttribute}, Value: strconv.Itoa(index)},
			{Name: xml.Name{Local: "id"}, Value: item.ID},
		},
		Children: []XMLElement{
			createSimpleElement("name", item.Name),
			createSimpleElement("price", formatNumber(item.Price)),
			createSimpleElement("quantity", formatNumber(item.Quantity)),
			createSimpleElement("subtotal", subtotal.String()),
		},
	}
}

// createSimpleElement creates an element with text content only.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
