package survey

import (
	"strconv"
	"strings"
)

// CellKind discriminates the value stored in a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a single spreadsheet value. Ambiguity between textual and numeric
// cells is resolved once at ingestion; downstream code switches on Kind
// instead of re-parsing strings.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// ParseCell builds a Cell from a raw spreadsheet string. Whitespace-only
// input becomes an empty cell; anything that parses as a float becomes a
// numeric cell.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Kind: CellEmpty}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Cell{Kind: CellNumber, Number: f, Text: trimmed}
	}
	return Cell{Kind: CellText, Text: trimmed}
}

// NumberCell builds a numeric Cell directly, for sources that already carry
// typed values (sample data, database rows).
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f, Text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// TextCell builds a textual Cell, keeping empty strings empty.
func TextCell(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Text: trimmed}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the stringified value, empty for empty cells.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return c.Text
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// Float returns the numeric value and whether the cell is numeric.
func (c Cell) Float() (float64, bool) {
	if c.Kind != CellNumber {
		return 0, false
	}
	return c.Number, true
}

// Int parses the cell as an integer, mirroring a lenient parseInt: numeric
// cells are truncated, textual cells must carry a leading integer.
func (c Cell) Int() (int, bool) {
	switch c.Kind {
	case CellNumber:
		return int(c.Number), true
	case CellText:
		if n, err := strconv.Atoi(leadingInt(c.Text)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// leadingInt strips everything after the first non-digit run so "5 - katılıyorum"
// still yields 5, the way parseInt behaves in the browser.
func leadingInt(s string) string {
	s = strings.TrimSpace(s)
	end := 0
	for i, r := range s {
		if i == 0 && (r == '-' || r == '+') {
			end = i + 1
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	return s[:end]
}

// RawRow maps a literal spreadsheet header to its cell value. Missing cells
// are represented as empty cells, never absent keys, so every row shares the
// header set of its sheet.
type RawRow map[string]Cell
