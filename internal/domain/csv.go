package domain

import "strings"

// Row is one retained data line of the spreadsheet export, with fields in
// header order.
type Row struct {
	fields []Field
}

// NewRow builds a Row from header/value pairs, converting each value the same
// way the CSV parser does. Used by sources that do not start from CSV text.
func NewRow(headers, values []string) Row {
	fields := make([]Field, 0, len(headers))
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		fields = append(fields, convertField(strings.TrimSpace(h), v))
	}
	return Row{fields: fields}
}

// Fields returns the row's fields in header order.
func (r Row) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Lookup returns the field for header. With duplicate headers the last
// column wins.
func (r Row) Lookup(header string) (Field, bool) {
	for i := len(r.fields) - 1; i >= 0; i-- {
		if r.fields[i].Header == header {
			return r.fields[i], true
		}
	}
	return Field{}, false
}

// Has reports whether the row has a column named header.
func (r Row) Has(header string) bool {
	_, ok := r.Lookup(header)
	return ok
}

// Text returns the cleaned text of a column, or "" when absent.
func (r Row) Text(header string) string {
	f, _ := r.Lookup(header)
	return f.Text
}

// Number returns the converted number of a column, or 0 when absent.
func (r Row) Number(header string) float64 {
	f, _ := r.Lookup(header)
	return f.Number
}

// ParseStats counts what happened to each line of a CSV export.
type ParseStats struct {
	DataLines int // lines after the header
	Blank     int // whitespace-only lines, skipped
	Malformed int // field count differs from the header, dropped
	Rows      int // retained rows
}

// ParseCSV parses a spreadsheet CSV export into rows. It never fails:
// blank and malformed lines are skipped.
func ParseCSV(text string) []Row {
	rows, _ := ParseCSVWithStats(text)
	return rows
}

// ParseCSVWithStats is ParseCSV that also reports skipped lines.
func ParseCSVWithStats(text string) ([]Row, ParseStats) {
	lines := strings.Split(text, "\n")
	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var stats ParseStats
	rows := make([]Row, 0, len(lines)-1)

	for _, line := range lines[1:] {
		stats.DataLines++
		if strings.TrimSpace(line) == "" {
			stats.Blank++
			continue
		}

		values := splitCSVLine(line, ',')
		if len(values) != len(headers) {
			stats.Malformed++
			continue
		}

		fields := make([]Field, len(headers))
		for i, h := range headers {
			fields[i] = convertField(h, values[i])
		}
		rows = append(rows, Row{fields: fields})
	}

	stats.Rows = len(rows)
	return rows, stats
}

// splitCSVLine tokenizes one line. A double quote toggles a quoted span in
// which the delimiter is literal; quotes themselves are dropped. There is no
// escaped-quote handling: "" toggles twice and nets to nothing.
func splitCSVLine(line string, delim rune) []string {
	var (
		result   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return append(result, current.String())
}
