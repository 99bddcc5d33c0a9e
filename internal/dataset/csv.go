package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// CSV exchange format shared with the validation collaborator:
// semicolon-separated, UTF-8, first column is the row index.

// ReadCSV loads a semicolon-separated file into a table. A leading index
// column (empty header or a header named "INDEX") is dropped; row identity
// stays positional.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return NewTable(), nil
	}

	header := rows[0]
	skipIndex := len(header) > 0 && (header[0] == "" || header[0] == "INDEX")
	start := 0
	if skipIndex {
		start = 1
	}

	columns := make([][]string, len(header)-start)
	for i := range columns {
		columns[i] = make([]string, 0, len(rows)-1)
	}
	for _, row := range rows[1:] {
		for c := start; c < len(header); c++ {
			value := ""
			if c < len(row) {
				value = row[c]
			}
			columns[c-start] = append(columns[c-start], value)
		}
	}

	table := NewTable()
	for i, name := range header[start:] {
		if err := table.AddColumn(name, columns[i]); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return table, nil
}

// WriteCSV writes a table as a semicolon-separated file with a leading row
// index column, creating parent directories as needed.
func WriteCSV(table *Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	writer.Comma = ';'

	header := append([]string{""}, table.Columns()...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header of %s: %w", path, err)
	}
	for row := 0; row < table.Rows(); row++ {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(row))
		for _, name := range table.Columns() {
			record = append(record, table.Cell(row, name))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", row, path, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
