package utils

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

func TestErrorLogEntries(t *testing.T) {
	verrs := types.ValidationErrors{
		{Type: types.ErrorTypeHeader, Row: -1, Column: 0, Message: "bad header"},
		{Type: types.ErrorTypeRow, Row: 2, Column: 1, Message: "Price must be a positive number"},
	}
	entries := ErrorLogEntries("cart.csv", verrs)
	if len(entries) != 2 || entries[1].ErrorType != "row" || entries[1].RowNumber != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	ioEntries := ErrorLogEntries("cart.csv", &types.IOError{Path: "cart.csv", Err: errors.New("denied")})
	if len(ioEntries) != 1 || ioEntries[0].ErrorType != ErrorTypeIO || ioEntries[0].RowNumber != -1 {
		t.Fatalf("unexpected entries: %+v", ioEntries)
	}

	other := ErrorLogEntries("cart.csv", errors.New("render failed"))
	if other[0].ErrorType != ErrorTypeProcessing {
		t.Fatalf("unexpected entries: %+v", other)
	}
}

func TestPosition(t *testing.T) {
	if position(-1) != "-" || position(0) != "0" || position(12) != "12" {
		t.Fatalf("unexpected positions")
	}
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteErrorLog(nil, dir)
	if err != nil || path != "" {
		t.Fatalf("expected no log for empty entries, got %q, %v", path, err)
	}

	entries := []ErrorLogEntry{{
		Timestamp:    time.Now(),
		FileName:     "cart.csv",
		ErrorType:    "row",
		ErrorMessage: "Quantity must be a positive number",
		RowNumber:    0,
		ColumnNumber: 2,
	}}
	path, err = WriteErrorLog(entries, dir)
	if err != nil {
		t.Fatalf("WriteErrorLog returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"1 error(s)", "cart.csv", "row", "Quantity must be a positive number"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryLog(t *testing.T) {
	start := time.Now()
	summary := ProcessingSummary{
		StartTime:       start,
		EndTime:         start.Add(time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		TotalLineItems:  3,
		GrandTotal:      12.5,
		ProcessedFiles:  []ProcessedFileInfo{{InputFile: "a.csv", OutputFile: "a.json", LineItems: 3, Total: 12.5}},
		FailedFilesList: []FailedFileInfo{{InputFile: "b.csv", ErrorType: "io", ErrorMessage: "missing"}},
	}

	path, err := WriteSummaryLog(summary, t.TempDir())
	if err != nil {
		t.Fatalf("WriteSummaryLog returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	out := string(data)
	for _, want := range []string{"Files", "12.50", "a.json", "b.csv", "missing"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
