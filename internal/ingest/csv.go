// Package ingest turns uploaded spreadsheets into raw survey rows. All
// sources share one contract: every row carries every header, with blank
// cells as empty values, so the classifier sees a uniform table.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"anket-backend/internal/survey"
)

// Table is a parsed sheet ready for classification.
type Table struct {
	Headers []string
	Rows    []survey.RawRow
}

// ErrEmptyFile is returned when a sheet has no header or no data rows.
var ErrEmptyFile = errors.New("dosya boş veya okunamadı")

// ReadCSV parses CSV data into a Table. The reader is tolerant the way the
// upload path needs it to be: ragged rows are padded, malformed rows are
// skipped, and a semicolon-delimited file is detected from its header line.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	table, err := parseCSV(data, ',')
	if err != nil {
		return nil, err
	}
	// A semicolon-delimited export parses as a single wide column; retry.
	if len(table.Headers) == 1 && strings.Contains(table.Headers[0], ";") {
		return parseCSV(data, ';')
	}
	return table, nil
}

func parseCSV(data []byte, comma rune) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, ErrEmptyFile
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []survey.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, recordToRow(headers, record))
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// recordToRow maps a positional record onto the header set, padding missing
// trailing cells with empty values.
func recordToRow(headers []string, record []string) survey.RawRow {
	row := make(survey.RawRow, len(headers))
	for i, h := range headers {
		if i < len(record) {
			row[h] = survey.ParseCell(record[i])
		} else {
			row[h] = survey.Cell{}
		}
	}
	return row
}
