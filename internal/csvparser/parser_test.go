package csvparser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

func TestParseLine(t *testing.T) {
	item := ParseLine("Apple,2.5,4")

	if item.Name != "Apple" {
		t.Fatalf("expected name Apple, got %q", item.Name)
	}
	if item.Price != 2.5 {
		t.Fatalf("expected price 2.5, got %v", item.Price)
	}
	if item.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %v", item.Quantity)
	}
	if item.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestParseLineTrimsFields(t *testing.T) {
	item := ParseLine("  Green tea , 3.75 ,0.5 ")
	if item.Name != "Green tea" || item.Price != 3.75 || item.Quantity != 0.5 {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestParseLineGeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		item := ParseLine("Apple,2.5,4")
		if seen[item.ID] {
			t.Fatalf("id %s reused", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestParseLineDoesNotValidate(t *testing.T) {
	item := ParseLine("Orange,free")
	if item.Name != "Orange" || item.Price != 0 || item.Quantity != 0 {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: []string{}},
		{name: "blank lines", content: "a\n\n  \nb\n\n", want: []string{"a", "b"}},
		{name: "crlf", content: "a,b\r\nc,d\r\n", want: []string{"a,b", "c,d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		value   string
		want    float64
		wantErr bool
	}{
		{value: "2.5", want: 2.5},
		{value: " 4 ", want: 4},
		{value: "-3", want: -3},
		{value: "free", wantErr: true},
		{value: "", wantErr: true},
		{value: "NaN", wantErr: true},
		{value: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseNumber(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.csv")
	content := "Product name,Price,Quantity\nApple,2.5,2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if got != content {
		t.Fatalf("expected %q, got %q", content, got)
	}
}

func TestReadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := ReadFile(path)
	var ioErr *types.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *types.IOError, got %T (%v)", err, err)
	}
	if ioErr.Path != path {
		t.Fatalf("expected path %s, got %s", path, ioErr.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain, got %v", err)
	}
}
