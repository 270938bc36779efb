package validation

import (
	"strings"
	"testing"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

const header = "Product name,Price,Quantity"

func hasMessage(errs []*types.ValidationError, substr string) bool {
	for _, err := range errs {
		if strings.Contains(err.Message, substr) {
			return true
		}
	}
	return false
}

func hasType(errs []*types.ValidationError, errType types.ErrorType) bool {
	for _, err := range errs {
		if err.Type == errType {
			return true
		}
	}
	return false
}

func TestValidateValidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "single row", content: header + "\nApple,2.5,2"},
		{name: "blank lines ignored", content: header + "\n\nOrange,2.5,1\n\n"},
		{name: "crlf", content: header + "\r\nApple,2.5,2\r\nPear,1,0.5\r\n"},
		{name: "header only", content: header},
		{name: "empty", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errs := Validate(tt.content); len(errs) != 0 {
				t.Fatalf("expected no errors, got %v", errs)
			}
		})
	}
}

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantColumn int
	}{
		{name: "renamed", header: "Product,Cost,Qty", wantColumn: 0},
		{name: "missing column", header: "Product name,Price", wantColumn: 2},
		{name: "extra column", header: "Product name,Price,Quantity,Tax", wantColumn: 3},
		{name: "wrong order", header: "Product name,Quantity,Price", wantColumn: 1},
		{name: "wrong case", header: "product name,Price,Quantity", wantColumn: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.header + "\nApple,2.5,2")
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if errs[0].Type != types.ErrorTypeHeader {
				t.Fatalf("expected header error, got %s", errs[0].Type)
			}
			if errs[0].Row != -1 || errs[0].Column != tt.wantColumn {
				t.Fatalf("unexpected position: row %d column %d", errs[0].Row, errs[0].Column)
			}
		})
	}
}

func TestValidateHeaderErrorDoesNotStopRows(t *testing.T) {
	errs := Validate("Product,Cost,Qty\nBanana,1.0,-3")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs[0].Type != types.ErrorTypeHeader || errs[1].Type != types.ErrorTypeRow {
		t.Fatalf("unexpected order: %v", errs)
	}
}

func TestValidateRowErrors(t *testing.T) {
	tests := []struct {
		name       string
		row        string
		wantMsg    string
		wantColumn int
	}{
		{name: "negative quantity", row: "Banana,1.0,-3", wantMsg: "positive number", wantColumn: 2},
		{name: "zero price", row: "Banana,0,3", wantMsg: "positive number", wantColumn: 1},
		{name: "non numeric price", row: "Orange,free,2", wantMsg: "positive number", wantColumn: 1},
		{name: "empty name", row: ",2.0,1", wantMsg: "nonempty string", wantColumn: 0},
		{name: "blank name", row: "   ,2.0,1", wantMsg: "nonempty string", wantColumn: 0},
		{name: "empty quantity", row: "Kiwi,2.0,", wantMsg: "positive number", wantColumn: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(header + "\n" + tt.row)
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if !hasMessage(errs, tt.wantMsg) {
				t.Fatalf("expected message containing %q, got %q", tt.wantMsg, errs[0].Message)
			}
			if errs[0].Type != types.ErrorTypeRow || errs[0].Row != 0 || errs[0].Column != tt.wantColumn {
				t.Fatalf("unexpected error: %+v", errs[0])
			}
		})
	}
}

func TestValidateColumnCount(t *testing.T) {
	errs := Validate(header + "\nOrange,2.5")
	if !hasType(errs, types.ErrorTypeRow) {
		t.Fatalf("expected row error, got %v", errs)
	}
	if !hasMessage(errs, "Expected 3 columns") {
		t.Fatalf("expected column count message, got %v", errs)
	}
	if errs[0].Column != -1 {
		t.Fatalf("expected column -1, got %d", errs[0].Column)
	}
}

func TestValidateColumnCountSkipsFieldChecks(t *testing.T) {
	errs := Validate(header + "\n,free,-1,extra")
	if len(errs) != 1 {
		t.Fatalf("expected only the column count error, got %v", errs)
	}
}

func TestValidateMultipleFieldErrorsInOneRow(t *testing.T) {
	errs := Validate(header + "\n,free,-1")
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	for i, want := range []int{0, 1, 2} {
		if errs[i].Column != want {
			t.Fatalf("error %d: expected column %d, got %d", i, want, errs[i].Column)
		}
	}
}

func TestValidateRowIndexSkipsBlankLines(t *testing.T) {
	errs := Validate(header + "\nApple,1,1\n\n\nPear,-1,1")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if errs[0].Row != 1 {
		t.Fatalf("expected row 1, got %d", errs[0].Row)
	}
}

func TestFormatErrors(t *testing.T) {
	if got := FormatErrors(nil); got != "No validation errors." {
		t.Fatalf("unexpected output: %q", got)
	}

	out := FormatErrors(Validate(header + "\nOrange,free,2"))
	if !strings.Contains(out, "1 error(s)") || !strings.Contains(out, "positive number") {
		t.Fatalf("unexpected output: %q", out)
	}
}
