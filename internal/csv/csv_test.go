package csv

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_Empty(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Errorf("expected no records for empty input, got %d", len(got))
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	if got := Parse("a,b,c\n"); len(got) != 0 {
		t.Errorf("expected no records for header-only input, got %d", len(got))
	}
}

func TestParse_QuotedFields(t *testing.T) {
	records := Parse("a,\"b,c\"\"d\",e\n1,2,3")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	want := Record{"a": "1", `b,c"d`: "2", "e": "3"}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("expected %v, got %v", want, records[0])
	}
}

func TestParse_QuotedNewline(t *testing.T) {
	records := Parse("name,note\nalice,\"line one\nline two\"")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0]["note"]; got != "line one\nline two" {
		t.Errorf("expected embedded newline preserved, got %q", got)
	}
}

func TestParse_ShortRowPadding(t *testing.T) {
	records := Parse("a,b\n1")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0]["a"]; got != "1" {
		t.Errorf("expected a=1, got %q", got)
	}
	if got, ok := records[0]["b"]; !ok || got != "" {
		t.Errorf("expected b present and empty, got %q (present=%v)", got, ok)
	}
}

func TestParse_ExtraCellsDropped(t *testing.T) {
	records := Parse("a,b\n1,2,3,4")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if len(records[0]) != 2 {
		t.Errorf("expected record to keep the header's key set, got %v", records[0])
	}
}

func TestParse_BlankRowsDropped(t *testing.T) {
	records := Parse("a,b,c\n,,\n1,2,3\n , , \n")

	if len(records) != 1 {
		t.Fatalf("expected 1 record after dropping blank rows, got %d", len(records))
	}
	if got := records[0]["a"]; got != "1" {
		t.Errorf("expected surviving row a=1, got %q", got)
	}
}

func TestParse_LineEndings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"lf", "a,b\n1,2\n3,4"},
		{"crlf", "a,b\r\n1,2\r\n3,4"},
		{"cr", "a,b\r1,2\r3,4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Parse(tt.input)
			if len(records) != 2 {
				t.Fatalf("expected 2 records, got %d", len(records))
			}
			if records[1]["b"] != "4" {
				t.Errorf("expected b=4 in second record, got %q", records[1]["b"])
			}
		})
	}
}

func TestParse_BOMStrippedFromHeader(t *testing.T) {
	records := Parse("\ufeffkey,value\nk1,v1")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0]["key"]; got != "k1" {
		t.Errorf("expected BOM-free header key, got record %v", records[0])
	}
}

func TestParse_ValuesTrimmed(t *testing.T) {
	records := Parse(" name , org \n  alice  ,  acme  ")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["name"] != "alice" || records[0]["org"] != "acme" {
		t.Errorf("expected trimmed keys and values, got %v", records[0])
	}
}

func TestParse_UnterminatedQuote(t *testing.T) {
	// Human-edited data: an opening quote with no close consumes to EOF
	// rather than producing an error.
	records := Parse("a,b\n1,\"unclosed, still one cell")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0]["b"]; got != "unclosed, still one cell" {
		t.Errorf("expected quote to consume to end of input, got %q", got)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	header := []string{"id", "name", "track"}
	rows := [][]string{
		{"S-1", "opening talk", "hall A"},
		{"S-2", "breakout", "room 2"},
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}

	records := Parse(b.String())
	if len(records) != len(rows) {
		t.Fatalf("expected %d records, got %d", len(rows), len(records))
	}
	for i, row := range rows {
		for j, key := range header {
			if got := records[i][key]; got != row[j] {
				t.Errorf("row %d %s: expected %q, got %q", i, key, row[j], got)
			}
		}
	}
}
