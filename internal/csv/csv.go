// Package csv converts raw delimited text into ordered, header-keyed records.
//
// The sources this service consumes are human-edited spreadsheets exported
// from several different tools, so the parser is deliberately lenient: it
// tolerates byte order marks, bare \r record separators, quoted cells with
// embedded commas and newlines, unterminated quotes, and rows shorter than
// the header. Malformed input degrades instead of failing; Parse never
// returns an error.
package csv

import "strings"

// Record maps a header column name to the trimmed cell value for one row.
// Every record produced from the same input has exactly the header's key set.
type Record map[string]string

// Get returns the value for key, or def when the value is empty or absent.
func (r Record) Get(key, def string) string {
	if v := r[key]; v != "" {
		return v
	}
	return def
}

// Parse converts CSV text into records keyed by the header row.
//
// The first row is the header: each cell is BOM-stripped and trimmed, and
// the resulting names become the key set of every record. Data rows are
// zipped against the header by position; missing trailing cells become empty
// strings and extra cells are dropped. Rows whose cells are all empty after
// trimming are discarded. Empty input, or input with only a header, yields
// an empty result.
func Parse(text string) []Record {
	rows := scanRows(text)
	if len(rows) == 0 {
		return nil
	}

	header := rows[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.ReplaceAll(h, "\ufeff", ""))
	}

	var records []Record
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, key := range header {
			var v string
			if i < len(row) {
				v = row[i]
			}
			rec[key] = strings.TrimSpace(v)
		}
		records = append(records, rec)
	}
	return records
}

// scanRows splits raw CSV text into rows of unquoted, unescaped cells.
//
// A double quote toggles quoted mode; a doubled quote inside a quoted cell
// emits one literal quote. Commas and line breaks only delimit outside
// quotes. An unterminated quote consumes to end of input.
func scanRows(text string) [][]string {
	var (
		rows [][]string
		row  []string
		cell strings.Builder
		inQ  bool
	)

	pushCell := func() {
		row = append(row, cell.String())
		cell.Reset()
	}
	pushRow := func() {
		if len(row) > 0 {
			rows = append(rows, row)
		}
		row = nil
	}

	// Delimiters are all ASCII, so byte-wise scanning is UTF-8 safe.
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQ && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
				continue
			}
			inQ = !inQ
		case !inQ && c == ',':
			pushCell()
		case !inQ && (c == '\n' || c == '\r'):
			pushCell()
			pushRow()
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			cell.WriteByte(c)
		}
	}
	if cell.Len() > 0 || len(row) > 0 {
		pushCell()
		pushRow()
	}
	return rows
}

// isBlank reports whether every cell in the row trims to the empty string.
func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
